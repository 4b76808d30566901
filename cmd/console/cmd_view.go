package main

import (
	"fmt"

	"bankerdir/internal/console/session"

	"github.com/spf13/cobra"
)

// viewModeCmd reads or sets the persisted list rendering preference
var viewModeCmd = &cobra.Command{
	Use:   "view-mode [grid|table]",
	Short: "Show or set the list rendering preference",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			fmt.Println(store.GetViewMode())
			return nil
		}

		mode := session.ViewMode(args[0])
		if err := store.SetViewMode(mode); err != nil {
			return err
		}
		fmt.Printf("✅ View mode set to %s\n", mode)
		return nil
	},
}
