package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"bankerdir/internal/console/api"
	"bankerdir/internal/console/dispatch"
	"bankerdir/internal/console/export"
	"bankerdir/internal/console/listctrl"
	"bankerdir/internal/pkg/pagination"

	"github.com/spf13/cobra"
)

var bankerListFlags struct {
	location    string
	name        string
	affiliation string
	email       string
	page        int
	limit       int
}

var bankerCreateFlags struct {
	name          string
	affiliation   string
	locations     []string
	products      []string
	officialEmail string
	personalEmail string
	phone         string
}

var (
	bankerDeleteYes bool
	bankerExportOut string
)

// bankersCmd groups the banker directory commands
var bankersCmd = &cobra.Command{
	Use:   "bankers",
	Short: "Browse and manage the banker directory",
}

var bankersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List bankers matching the given criteria",
	RunE:  runBankersList,
}

var bankersBrowseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Interactively filter and page through the directory",
	Long: `Start an interactive session over the banker directory.

Commands:
  f <field> <text>   set a filter (location, name, affiliation, email)
  c <field>          clear one filter        ca      clear all filters
  p <n>              go to page n            l <n>   set page size
  show               print the current page  r       refresh
  del <id>           delete an entry (admin)
  export <path>      export the visible page as CSV
  q                  quit`,
	RunE: runBankersBrowse,
}

var bankersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a banker entry (admin)",
	RunE:  runBankersCreate,
}

var bankersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a banker entry (admin)",
	Args:  cobra.ExactArgs(1),
	RunE:  runBankersDelete,
}

var bankersUploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Bulk-upload bankers from a .csv/.xls/.xlsx file (admin)",
	Args:  cobra.ExactArgs(1),
	RunE:  runBankersUpload,
}

var bankersExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the current result page as CSV",
	RunE:  runBankersExport,
}

var bankersTemplateCmd = &cobra.Command{
	Use:   "template",
	Short: "Print the bulk-upload CSV template",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Print(export.BankerTemplate())
	},
}

func init() {
	for _, cmd := range []*cobra.Command{bankersListCmd, bankersExportCmd} {
		cmd.Flags().StringVar(&bankerListFlags.location, "location", "", "location tag filter")
		cmd.Flags().StringVar(&bankerListFlags.name, "name", "", "name filter")
		cmd.Flags().StringVar(&bankerListFlags.affiliation, "affiliation", "", "affiliation filter")
		cmd.Flags().StringVar(&bankerListFlags.email, "email", "", "official email filter")
		cmd.Flags().IntVar(&bankerListFlags.page, "page", 1, "page number")
		cmd.Flags().IntVar(&bankerListFlags.limit, "limit", pagination.DefaultLimit, "items per page")
	}

	bankersCreateCmd.Flags().StringVar(&bankerCreateFlags.name, "name", "", "display name")
	bankersCreateCmd.Flags().StringVar(&bankerCreateFlags.affiliation, "affiliation", "", "organizational affiliation")
	bankersCreateCmd.Flags().StringSliceVar(&bankerCreateFlags.locations, "location", nil, "location tag (repeatable)")
	bankersCreateCmd.Flags().StringSliceVar(&bankerCreateFlags.products, "product", nil, "product tag (repeatable)")
	bankersCreateCmd.Flags().StringVar(&bankerCreateFlags.officialEmail, "official-email", "", "official email")
	bankersCreateCmd.Flags().StringVar(&bankerCreateFlags.personalEmail, "personal-email", "", "personal email")
	bankersCreateCmd.Flags().StringVar(&bankerCreateFlags.phone, "phone", "", "phone contact")

	bankersDeleteCmd.Flags().BoolVarP(&bankerDeleteYes, "yes", "y", false, "skip the confirmation prompt")
	bankersExportCmd.Flags().StringVarP(&bankerExportOut, "out", "o", "", "output file (default: stdout)")

	for _, cmd := range []*cobra.Command{bankersCreateCmd, bankersDeleteCmd, bankersUploadCmd} {
		cmd.PreRunE = requireAdmin
	}

	bankersCmd.AddCommand(bankersListCmd, bankersBrowseCmd, bankersCreateCmd,
		bankersDeleteCmd, bankersUploadCmd, bankersExportCmd, bankersTemplateCmd)
}

func bankerFilterFromFlags() api.BankerFilter {
	return api.BankerFilter{
		Location:    bankerListFlags.location,
		Name:        bankerListFlags.name,
		Affiliation: bankerListFlags.affiliation,
		Email:       bankerListFlags.email,
	}
}

func bankerRows(bankers []api.Banker) [][]string {
	rows := make([][]string, 0, len(bankers))
	for _, b := range bankers {
		rows = append(rows, []string{
			strconv.FormatUint(uint64(b.ID), 10),
			b.Name,
			b.Affiliation,
			strings.Join(b.Locations, export.TagSeparator),
			strings.Join(b.Products, export.TagSeparator),
			b.OfficialEmail,
			b.Phone,
		})
	}
	return rows
}

var bankerTableHeader = []string{"ID", "Name", "Affiliation", "Locations", "Products", "Email", "Phone"}

func runBankersList(cmd *cobra.Command, args []string) error {
	result, err := client.ListBankers(cmd.Context(), bankerFilterFromFlags(),
		bankerListFlags.page, bankerListFlags.limit)
	if err != nil {
		return err
	}

	render(bankerTableHeader, bankerRows(result.Data))
	fmt.Printf("\nPage %d/%d (%d total)\n", result.Page, result.TotalPages, result.Total)
	return nil
}

// newBankerController builds the list controller used by browse mode
func newBankerController(delay time.Duration) *listctrl.Controller[api.Banker] {
	fetch := func(ctx context.Context, criteria map[string]string, page, limit int) ([]api.Banker, int64, error) {
		filter := api.BankerFilter{
			Location:    criteria["location"],
			Name:        criteria["name"],
			Affiliation: criteria["affiliation"],
			Email:       criteria["email"],
		}
		result, err := client.ListBankers(ctx, filter, page, limit)
		if err != nil {
			return nil, 0, err
		}
		return result.Data, result.Total, nil
	}

	return listctrl.New(fetch,
		listctrl.WithDelay[api.Banker](delay),
		listctrl.WithErrorHandler[api.Banker](func(err error) {
			fmt.Printf("⚠️ Fetch failed: %v (showing previous results)\n", err)
		}),
	)
}

// waitSettled polls until the controller leaves the loading state
func waitSettled[T any](ctrl *listctrl.Controller[T]) listctrl.Snapshot[T] {
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		snap := ctrl.Snapshot()
		if snap.State == listctrl.StateLoaded || snap.State == listctrl.StateError {
			return snap
		}
		time.Sleep(50 * time.Millisecond)
	}
	return ctrl.Snapshot()
}

func runBankersBrowse(cmd *cobra.Command, args []string) error {
	ctrl := newBankerController(200 * time.Millisecond)
	dispatcher := dispatch.NewBankerDispatcher(client, ctrl)
	admin := gate.IsAdmin()

	ctrl.Refresh()
	printBankerPage(waitSettled(ctrl))

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			fmt.Print("> ")
			continue
		}

		switch fields[0] {
		case "q", "quit":
			return nil
		case "f":
			if len(fields) >= 3 {
				ctrl.SetCriterion(fields[1], strings.Join(fields[2:], " "))
				printBankerPage(waitSettled(ctrl))
			}
		case "c":
			if len(fields) == 2 {
				ctrl.ClearCriterion(fields[1])
				printBankerPage(waitSettled(ctrl))
			}
		case "ca":
			ctrl.ClearAll()
			printBankerPage(waitSettled(ctrl))
		case "p":
			if len(fields) == 2 {
				if page, err := strconv.Atoi(fields[1]); err == nil {
					ctrl.SetPage(page)
					printBankerPage(waitSettled(ctrl))
				}
			}
		case "l":
			if len(fields) == 2 {
				if limit, err := strconv.Atoi(fields[1]); err == nil {
					ctrl.SetLimit(limit)
					printBankerPage(waitSettled(ctrl))
				}
			}
		case "r":
			ctrl.Refresh()
			printBankerPage(waitSettled(ctrl))
		case "show":
			printBankerPage(ctrl.Snapshot())
		case "del":
			if !admin {
				fmt.Println("⚠️ Admin role required")
				break
			}
			if len(fields) == 2 {
				if id, err := strconv.ParseUint(fields[1], 10, 32); err == nil {
					confirmed := confirm(scanner, fmt.Sprintf("Delete banker %d?", id))
					if err := dispatcher.Delete(cmd.Context(), uint(id), confirmed); err != nil {
						fmt.Printf("⚠️ %v\n", err)
					} else {
						printBankerPage(ctrl.Snapshot())
					}
				}
			}
		case "export":
			if len(fields) == 2 {
				snap := ctrl.Snapshot()
				if err := os.WriteFile(fields[1], []byte(export.Bankers(snap.Items)), 0o644); err != nil {
					fmt.Printf("⚠️ %v\n", err)
				} else {
					fmt.Printf("✅ Exported %d records to %s\n", len(snap.Items), fields[1])
				}
			}
		default:
			fmt.Println("Unknown command; see 'bankers browse --help'")
		}
		fmt.Print("> ")
	}
	return scanner.Err()
}

func printBankerPage(snap listctrl.Snapshot[api.Banker]) {
	render(bankerTableHeader, bankerRows(snap.Items))
	fmt.Printf("\nPage %d/%d (%d total)\n", snap.Page, snap.TotalPages, snap.Total)
}

func confirm(scanner *bufio.Scanner, prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}

func runBankersCreate(cmd *cobra.Command, args []string) error {
	ctrl := newBankerController(0)
	dispatcher := dispatch.NewBankerDispatcher(client, ctrl)

	banker, err := dispatcher.Create(cmd.Context(), &api.CreateBankerInput{
		Name:          bankerCreateFlags.name,
		Affiliation:   bankerCreateFlags.affiliation,
		Locations:     bankerCreateFlags.locations,
		Products:      bankerCreateFlags.products,
		OfficialEmail: bankerCreateFlags.officialEmail,
		PersonalEmail: bankerCreateFlags.personalEmail,
		Phone:         bankerCreateFlags.phone,
	})
	if err != nil {
		return err
	}

	fmt.Printf("✅ Created banker %d: %s\n", banker.ID, banker.Name)
	return nil
}

func runBankersDelete(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return fmt.Errorf("invalid id %q", args[0])
	}

	confirmed := bankerDeleteYes
	if !confirmed {
		confirmed = confirm(bufio.NewScanner(os.Stdin), fmt.Sprintf("Delete banker %d?", id))
	}

	ctrl := newBankerController(0)
	dispatcher := dispatch.NewBankerDispatcher(client, ctrl)
	if err := dispatcher.Delete(cmd.Context(), uint(id), confirmed); err != nil {
		return err
	}

	fmt.Printf("✅ Deleted banker %d\n", id)
	return nil
}

func runBankersUpload(cmd *cobra.Command, args []string) error {
	file, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer file.Close()

	ctrl := newBankerController(0)
	dispatcher := dispatch.NewBankerDispatcher(client, ctrl)

	result, err := dispatcher.Upload(cmd.Context(), args[0], file, func(pct int) {
		fmt.Printf("\rUploading... %3d%%", pct)
	})
	fmt.Println()
	if err != nil {
		return err
	}

	fmt.Printf("✅ Imported %d bankers, skipped %d rows\n", result.Imported, result.Skipped)
	for _, rowErr := range result.RowErrors {
		fmt.Printf("   %s\n", rowErr)
	}
	return nil
}

func runBankersExport(cmd *cobra.Command, args []string) error {
	result, err := client.ListBankers(cmd.Context(), bankerFilterFromFlags(),
		bankerListFlags.page, bankerListFlags.limit)
	if err != nil {
		return err
	}

	csv := export.Bankers(result.Data)
	if bankerExportOut == "" {
		fmt.Print(csv)
		return nil
	}
	if err := os.WriteFile(bankerExportOut, []byte(csv), 0o644); err != nil {
		return err
	}
	fmt.Printf("✅ Exported %d records to %s\n", len(result.Data), bankerExportOut)
	return nil
}
