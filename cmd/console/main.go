package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"bankerdir/internal/console/api"
	"bankerdir/internal/console/rolegate"
	"bankerdir/internal/console/session"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	serverURL   string
	sessionPath string

	store  session.Store
	client *api.Client
	gate   *rolegate.Gate
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "bankerdir",
	Short: "Admin console for the banker/lender directory",
	Long: `bankerdir is the command-line admin console for the banker/lender
directory backend.

Authenticated users browse, filter and paginate directory entries;
admins additionally create, edit, delete, bulk-upload and review them.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if sessionPath == "" {
			path, err := session.DefaultPath()
			if err != nil {
				return fmt.Errorf("resolve session path: %w", err)
			}
			sessionPath = path
		}
		store = session.NewFileStore(sessionPath)
		client = api.NewClient(serverURL, store)
		gate = rolegate.New(store)
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server",
		envOr("BANKERDIR_SERVER", "http://localhost:8080"), "backend base URL")
	rootCmd.PersistentFlags().StringVar(&sessionPath, "session", "",
		"session file path (default: user config dir)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(bankersCmd)
	rootCmd.AddCommand(lendersCmd)
	rootCmd.AddCommand(reviewsCmd)
	rootCmd.AddCommand(viewModeCmd)
}

var errAdminRequired = errors.New("admin role required; log in with an admin account")

// requireAdmin refuses an admin-only command up front when the stored
// token yields no ADMIN role. Missing or malformed tokens count as no
// role; the backend remains the actual authority.
func requireAdmin(cmd *cobra.Command, args []string) error {
	if !gate.IsAdmin() {
		return errAdminRequired
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// renderTable prints rows with aligned columns
func renderTable(header []string, rows [][]string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()
}

// renderCards prints one block per record, the grid view's text analogue
func renderCards(header []string, rows [][]string) {
	for _, row := range rows {
		for i, field := range row {
			if i < len(header) {
				fmt.Printf("%-15s %s\n", header[i]+":", field)
			}
		}
		fmt.Println(strings.Repeat("-", 40))
	}
}

// render picks the persisted view mode
func render(header []string, rows [][]string) {
	if store.GetViewMode() == session.ViewModeTable {
		renderTable(header, rows)
		return
	}
	renderCards(header, rows)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("❌ %v", err)
	}
}
