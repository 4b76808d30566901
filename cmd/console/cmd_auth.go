package main

import (
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var loginEmail string

// loginCmd authenticates against the backend and stores the token
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate and store a session token",
	RunE:  runLogin,
}

// logoutCmd clears the stored session token
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session token",
	RunE:  runLogout,
}

// whoamiCmd shows the current profile and advisory role
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user and role",
	RunE:  runWhoami,
}

func init() {
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "account email")
	_ = loginCmd.MarkFlagRequired("email")
}

func runLogin(cmd *cobra.Command, args []string) error {
	fmt.Fprint(os.Stderr, "Password: ")
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}

	if _, err := client.Login(cmd.Context(), loginEmail, string(password)); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	fmt.Printf("✅ Logged in as %s\n", loginEmail)
	if gate.IsAdmin() {
		fmt.Println("   Admin controls enabled")
	}
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	if err := client.Logout(cmd.Context()); err != nil {
		return err
	}
	fmt.Println("✅ Logged out")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	role := gate.Role()
	if role == "" {
		fmt.Println("Not logged in (or token unreadable)")
		return nil
	}

	if email := gate.Email(); email != "" {
		if profile, err := client.ProfileByEmail(cmd.Context(), email); err == nil {
			fmt.Printf("Name:  %s\nEmail: %s\n", profile.FullName, profile.Email)
		} else {
			fmt.Printf("Email: %s\n", email)
		}
	}
	fmt.Printf("Role:  %s\n", role)
	return nil
}
