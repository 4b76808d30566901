// Package dispatch reconciles mutations against the backend with the
// locally visible list state. Single-record mutations (update, delete,
// approve, reject) patch the visible set optimistically; mutations that
// can change result membership or ordering (create, bulk upload) reset
// the list to page 1 and refetch.
package dispatch

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"bankerdir/internal/console/api"
	"bankerdir/internal/console/listctrl"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrNotConfirmed means the user declined the confirmation step
	ErrNotConfirmed = errors.New("action not confirmed")
	// ErrReasonRequired means a reject was attempted without a reason;
	// no request is sent in that case
	ErrReasonRequired = errors.New("rejection reason is required")
	// ErrBadFileType means the selected upload file has a disallowed extension
	ErrBadFileType = errors.New("file type not allowed: use .csv, .xls or .xlsx")
)

// allowedUploadExts is the accepted bulk-upload extension set
var allowedUploadExts = map[string]bool{
	".csv":  true,
	".xls":  true,
	".xlsx": true,
}

// BankerDispatcher performs banker mutations and keeps the banker list
// controller's visible state consistent with the outcome
type BankerDispatcher struct {
	client   *api.Client
	list     *listctrl.Controller[api.Banker]
	validate *validator.Validate
}

// NewBankerDispatcher creates a dispatcher bound to a list controller
func NewBankerDispatcher(client *api.Client, list *listctrl.Controller[api.Banker]) *BankerDispatcher {
	return &BankerDispatcher{
		client:   client,
		list:     list,
		validate: validator.New(),
	}
}

// Create validates the input locally before any network call; on
// success the list resets to page 1 and refetches
func (d *BankerDispatcher) Create(ctx context.Context, input *api.CreateBankerInput) (*api.Banker, error) {
	if err := d.validate.Struct(input); err != nil {
		return nil, err
	}

	banker, err := d.client.CreateBanker(ctx, input)
	if err != nil {
		return nil, err
	}

	d.list.Reset()
	return banker, nil
}

// Update sends only the provided fields; on success the matching
// visible record is patched in place, no refetch
func (d *BankerDispatcher) Update(ctx context.Context, id uint, input *api.UpdateBankerInput) (*api.Banker, error) {
	updated, err := d.client.UpdateBanker(ctx, id, input)
	if err != nil {
		return nil, err
	}

	d.list.Patch(
		func(b *api.Banker) bool { return b.ID == id },
		func(b *api.Banker) { *b = *updated },
	)
	return updated, nil
}

// Delete dispatches only when confirmed; on success the record leaves
// the visible set and the total count drops by one
func (d *BankerDispatcher) Delete(ctx context.Context, id uint, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}

	if err := d.client.DeleteBanker(ctx, id); err != nil {
		return err
	}

	d.list.Remove(func(b *api.Banker) bool { return b.ID == id })
	return nil
}

// Upload streams one file of an allowed extension as multipart form
// data, reporting 0-100 progress; on success the list resets to page 1
func (d *BankerDispatcher) Upload(ctx context.Context, filename string, file io.Reader, progress func(int)) (*api.ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedUploadExts[ext] {
		return nil, ErrBadFileType
	}

	result, err := d.client.UploadBankers(ctx, filename, file, progress)
	if err != nil {
		return nil, err
	}

	d.list.Reset()
	return result, nil
}

// LenderDispatcher performs lender mutations against a lender list
type LenderDispatcher struct {
	client   *api.Client
	list     *listctrl.Controller[api.Lender]
	validate *validator.Validate
}

// NewLenderDispatcher creates a dispatcher bound to a lender list controller
func NewLenderDispatcher(client *api.Client, list *listctrl.Controller[api.Lender]) *LenderDispatcher {
	return &LenderDispatcher{
		client:   client,
		list:     list,
		validate: validator.New(),
	}
}

// Create validates locally (name, manager and at least one of
// state/city) before the request; success resets the list to page 1
func (d *LenderDispatcher) Create(ctx context.Context, input *api.CreateLenderInput) (*api.Lender, error) {
	if err := d.validate.Struct(input); err != nil {
		return nil, err
	}

	lender, err := d.client.CreateLender(ctx, input)
	if err != nil {
		return nil, err
	}

	d.list.Reset()
	return lender, nil
}

// Update patches the matching visible record on success
func (d *LenderDispatcher) Update(ctx context.Context, id uint, input *api.UpdateLenderInput) (*api.Lender, error) {
	updated, err := d.client.UpdateLender(ctx, id, input)
	if err != nil {
		return nil, err
	}

	d.list.Patch(
		func(l *api.Lender) bool { return l.ID == id },
		func(l *api.Lender) { *l = *updated },
	)
	return updated, nil
}

// Delete dispatches only when confirmed
func (d *LenderDispatcher) Delete(ctx context.Context, id uint, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}

	if err := d.client.DeleteLender(ctx, id); err != nil {
		return err
	}

	d.list.Remove(func(l *api.Lender) bool { return l.ID == id })
	return nil
}

// ReviewDispatcher performs review decisions against the review queue list
type ReviewDispatcher struct {
	client *api.Client
	list   *listctrl.Controller[api.Submission]
}

// NewReviewDispatcher creates a dispatcher bound to a review list controller
func NewReviewDispatcher(client *api.Client, list *listctrl.Controller[api.Submission]) *ReviewDispatcher {
	return &ReviewDispatcher{client: client, list: list}
}

// Approve transitions a pending submission in one step; the visible
// record's status is patched in place
func (d *ReviewDispatcher) Approve(ctx context.Context, id uint) (*api.Submission, error) {
	sub, err := d.client.ApproveSubmission(ctx, id)
	if err != nil {
		return nil, err
	}

	d.list.Patch(
		func(s *api.Submission) bool { return s.ID == id },
		func(s *api.Submission) { *s = *sub },
	)
	return sub, nil
}

// Reject requires a non-whitespace reason; an empty reason fails
// locally without any request being sent
func (d *ReviewDispatcher) Reject(ctx context.Context, id uint, reason string) (*api.Submission, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrReasonRequired
	}

	sub, err := d.client.RejectSubmission(ctx, id, reason)
	if err != nil {
		return nil, err
	}

	d.list.Patch(
		func(s *api.Submission) bool { return s.ID == id },
		func(s *api.Submission) { *s = *sub },
	)
	return sub, nil
}
