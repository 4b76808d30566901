package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"bankerdir/internal/console/api"
	"bankerdir/internal/console/dispatch"
	"bankerdir/internal/console/export"
	"bankerdir/internal/console/listctrl"
	"bankerdir/internal/pkg/pagination"

	"github.com/spf13/cobra"
)

var reviewListFlags struct {
	status string
	page   int
	limit  int
}

var rejectReason string

// reviewsCmd groups the review queue commands
var reviewsCmd = &cobra.Command{
	Use:   "reviews",
	Short: "Browse and decide review submissions",
}

var reviewsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List review submissions",
	RunE:  runReviewsList,
}

var reviewsApproveCmd = &cobra.Command{
	Use:   "approve <id>",
	Short: "Approve a pending submission (admin)",
	Args:  cobra.ExactArgs(1),
	RunE:  runReviewsApprove,
}

var reviewsRejectCmd = &cobra.Command{
	Use:   "reject <id>",
	Short: "Reject a pending submission with a reason (admin)",
	Args:  cobra.ExactArgs(1),
	RunE:  runReviewsReject,
}

func init() {
	reviewsListCmd.Flags().StringVar(&reviewListFlags.status, "status", "", "status filter (PENDING, APPROVED, REJECTED)")
	reviewsListCmd.Flags().IntVar(&reviewListFlags.page, "page", 1, "page number")
	reviewsListCmd.Flags().IntVar(&reviewListFlags.limit, "limit", pagination.DefaultLimit, "items per page")

	reviewsRejectCmd.Flags().StringVar(&rejectReason, "reason", "", "rejection reason (required)")

	for _, cmd := range []*cobra.Command{reviewsApproveCmd, reviewsRejectCmd} {
		cmd.PreRunE = requireAdmin
	}

	reviewsCmd.AddCommand(reviewsListCmd, reviewsApproveCmd, reviewsRejectCmd)
}

var reviewTableHeader = []string{"ID", "Name", "Affiliation", "Products", "Status", "Reason"}

func reviewRows(subs []api.Submission) [][]string {
	rows := make([][]string, 0, len(subs))
	for _, s := range subs {
		rows = append(rows, []string{
			strconv.FormatUint(uint64(s.ID), 10),
			s.Name,
			s.Affiliation,
			strings.Join(s.Products, export.TagSeparator),
			s.Status,
			s.Reason,
		})
	}
	return rows
}

// newReviewController builds a review list controller for the dispatcher
func newReviewController() *listctrl.Controller[api.Submission] {
	fetch := func(ctx context.Context, criteria map[string]string, page, limit int) ([]api.Submission, int64, error) {
		result, err := client.ListSubmissions(ctx, criteria["status"], page, limit)
		if err != nil {
			return nil, 0, err
		}
		return result.Data, result.Total, nil
	}
	return listctrl.New(fetch)
}

func runReviewsList(cmd *cobra.Command, args []string) error {
	result, err := client.ListSubmissions(cmd.Context(), reviewListFlags.status,
		reviewListFlags.page, reviewListFlags.limit)
	if err != nil {
		return err
	}

	render(reviewTableHeader, reviewRows(result.Data))
	fmt.Printf("\nPage %d/%d (%d total)\n", result.Page, result.TotalPages, result.Total)
	return nil
}

func runReviewsApprove(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return fmt.Errorf("invalid id %q", args[0])
	}

	dispatcher := dispatch.NewReviewDispatcher(client, newReviewController())
	sub, err := dispatcher.Approve(cmd.Context(), uint(id))
	if err != nil {
		return err
	}

	fmt.Printf("✅ Approved submission %d (%s)\n", sub.ID, sub.Name)
	return nil
}

func runReviewsReject(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return fmt.Errorf("invalid id %q", args[0])
	}

	dispatcher := dispatch.NewReviewDispatcher(client, newReviewController())
	sub, err := dispatcher.Reject(cmd.Context(), uint(id), rejectReason)
	if err != nil {
		return err
	}

	fmt.Printf("✅ Rejected submission %d with reason: %s\n", sub.ID, sub.Reason)
	return nil
}
