package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"

	"bankerdir/internal/console/api"
	"bankerdir/internal/console/dispatch"
	"bankerdir/internal/console/export"
	"bankerdir/internal/console/listctrl"
	"bankerdir/internal/pkg/pagination"

	"github.com/spf13/cobra"
)

var lenderListFlags struct {
	state string
	city  string
	name  string
	page  int
	limit int
}

var lenderCreateFlags struct {
	name        string
	state       string
	city        string
	managerName string
	rmName      string
	rmContact   string
	bankerName  string
}

var (
	lenderDeleteYes bool
	lenderExportOut string
)

// lendersCmd groups the lender directory commands
var lendersCmd = &cobra.Command{
	Use:   "lenders",
	Short: "Browse and manage the lender directory",
}

var lendersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List lenders matching the given criteria",
	RunE:  runLendersList,
}

var lendersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a lender entry (admin)",
	RunE:  runLendersCreate,
}

var lendersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a lender entry (admin)",
	Args:  cobra.ExactArgs(1),
	RunE:  runLendersDelete,
}

var lendersExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the current result page as CSV",
	RunE:  runLendersExport,
}

func init() {
	for _, cmd := range []*cobra.Command{lendersListCmd, lendersExportCmd} {
		cmd.Flags().StringVar(&lenderListFlags.state, "state", "", "state filter")
		cmd.Flags().StringVar(&lenderListFlags.city, "city", "", "city filter")
		cmd.Flags().StringVar(&lenderListFlags.name, "name", "", "name filter")
		cmd.Flags().IntVar(&lenderListFlags.page, "page", 1, "page number")
		cmd.Flags().IntVar(&lenderListFlags.limit, "limit", pagination.DefaultLimit, "items per page")
	}

	lendersCreateCmd.Flags().StringVar(&lenderCreateFlags.name, "name", "", "lender name")
	lendersCreateCmd.Flags().StringVar(&lenderCreateFlags.state, "state", "", "state")
	lendersCreateCmd.Flags().StringVar(&lenderCreateFlags.city, "city", "", "city")
	lendersCreateCmd.Flags().StringVar(&lenderCreateFlags.managerName, "manager", "", "manager name")
	lendersCreateCmd.Flags().StringVar(&lenderCreateFlags.rmName, "rm-name", "", "relationship manager name")
	lendersCreateCmd.Flags().StringVar(&lenderCreateFlags.rmContact, "rm-contact", "", "relationship manager contact")
	lendersCreateCmd.Flags().StringVar(&lenderCreateFlags.bankerName, "banker", "", "associated banker name")

	lendersDeleteCmd.Flags().BoolVarP(&lenderDeleteYes, "yes", "y", false, "skip the confirmation prompt")
	lendersExportCmd.Flags().StringVarP(&lenderExportOut, "out", "o", "", "output file (default: stdout)")

	for _, cmd := range []*cobra.Command{lendersCreateCmd, lendersDeleteCmd} {
		cmd.PreRunE = requireAdmin
	}

	lendersCmd.AddCommand(lendersListCmd, lendersCreateCmd, lendersDeleteCmd, lendersExportCmd)
}

var lenderTableHeader = []string{"ID", "Name", "State", "City", "Manager", "RM", "Banker"}

func lenderRows(lenders []api.Lender) [][]string {
	rows := make([][]string, 0, len(lenders))
	for _, l := range lenders {
		rows = append(rows, []string{
			strconv.FormatUint(uint64(l.ID), 10),
			l.Name,
			l.State,
			l.City,
			l.ManagerName,
			l.RMName,
			l.BankerName,
		})
	}
	return rows
}

func lenderFilterFromFlags() api.LenderFilter {
	return api.LenderFilter{
		State: lenderListFlags.state,
		City:  lenderListFlags.city,
		Name:  lenderListFlags.name,
	}
}

// newLenderController builds a lender list controller for the dispatcher
func newLenderController() *listctrl.Controller[api.Lender] {
	fetch := func(ctx context.Context, criteria map[string]string, page, limit int) ([]api.Lender, int64, error) {
		filter := api.LenderFilter{
			State: criteria["state"],
			City:  criteria["city"],
			Name:  criteria["name"],
		}
		result, err := client.ListLenders(ctx, filter, page, limit)
		if err != nil {
			return nil, 0, err
		}
		return result.Data, result.Total, nil
	}
	return listctrl.New(fetch)
}

func runLendersList(cmd *cobra.Command, args []string) error {
	result, err := client.ListLenders(cmd.Context(), lenderFilterFromFlags(),
		lenderListFlags.page, lenderListFlags.limit)
	if err != nil {
		return err
	}

	render(lenderTableHeader, lenderRows(result.Data))
	fmt.Printf("\nPage %d/%d (%d total)\n", result.Page, result.TotalPages, result.Total)
	return nil
}

func runLendersCreate(cmd *cobra.Command, args []string) error {
	dispatcher := dispatch.NewLenderDispatcher(client, newLenderController())

	lender, err := dispatcher.Create(cmd.Context(), &api.CreateLenderInput{
		Name:        lenderCreateFlags.name,
		State:       lenderCreateFlags.state,
		City:        lenderCreateFlags.city,
		ManagerName: lenderCreateFlags.managerName,
		RMName:      lenderCreateFlags.rmName,
		RMContact:   lenderCreateFlags.rmContact,
		BankerName:  lenderCreateFlags.bankerName,
	})
	if err != nil {
		return err
	}

	fmt.Printf("✅ Created lender %d: %s\n", lender.ID, lender.Name)
	return nil
}

func runLendersDelete(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return fmt.Errorf("invalid id %q", args[0])
	}

	confirmed := lenderDeleteYes
	if !confirmed {
		confirmed = confirm(bufio.NewScanner(os.Stdin), fmt.Sprintf("Delete lender %d?", id))
	}

	dispatcher := dispatch.NewLenderDispatcher(client, newLenderController())
	if err := dispatcher.Delete(cmd.Context(), uint(id), confirmed); err != nil {
		return err
	}

	fmt.Printf("✅ Deleted lender %d\n", id)
	return nil
}

func runLendersExport(cmd *cobra.Command, args []string) error {
	result, err := client.ListLenders(cmd.Context(), lenderFilterFromFlags(),
		lenderListFlags.page, lenderListFlags.limit)
	if err != nil {
		return err
	}

	csv := export.Lenders(result.Data)
	if lenderExportOut == "" {
		fmt.Print(csv)
		return nil
	}
	if err := os.WriteFile(lenderExportOut, []byte(csv), 0o644); err != nil {
		return err
	}
	fmt.Printf("✅ Exported %d records to %s\n", len(result.Data), lenderExportOut)
	return nil
}
