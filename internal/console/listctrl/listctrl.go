package listctrl

import (
	"context"
	"sync"
	"time"

	"bankerdir/internal/console/debounce"
	"bankerdir/internal/pkg/pagination"
)

// State is the controller lifecycle state
type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// DefaultDelay is the settle delay applied to text criteria
const DefaultDelay = 400 * time.Millisecond

// Fetcher loads one page of results for the given non-empty criteria.
// It must honor ctx cancellation; a superseded request's context is
// cancelled as soon as a newer snapshot triggers a fetch.
type Fetcher[T any] func(ctx context.Context, criteria map[string]string, page, limit int) ([]T, int64, error)

// Snapshot is a point-in-time copy of the controller's visible state
type Snapshot[T any] struct {
	State      State
	Items      []T
	Total      int64
	Page       int
	Limit      int
	TotalPages int
	Err        error
}

// Controller drives a debounced, multi-criteria, server-paginated list.
//
// Any criterion change settles through a per-field debouncer and resets
// the page to 1. Page changes fetch immediately. Each fetch supersedes
// any in-flight one: the older request's context is cancelled and its
// result, should it still arrive, is discarded. A failed fetch keeps
// the previously visible items and total.
type Controller[T any] struct {
	mu sync.Mutex

	fetch   Fetcher[T]
	delay   time.Duration
	onError func(error)

	criteria   map[string]string
	debouncers map[string]*debounce.Value

	state State
	items []T
	total int64
	page  int
	limit int
	err   error

	epoch  uint64
	cancel context.CancelFunc
}

// Option configures a Controller
type Option[T any] func(*Controller[T])

// WithDelay overrides the criterion settle delay
func WithDelay[T any](delay time.Duration) Option[T] {
	return func(c *Controller[T]) { c.delay = delay }
}

// WithLimit sets the initial page size
func WithLimit[T any](limit int) Option[T] {
	return func(c *Controller[T]) { c.limit = limit }
}

// WithErrorHandler registers a callback invoked on each fetch failure,
// for surfacing a transient notification
func WithErrorHandler[T any](fn func(error)) Option[T] {
	return func(c *Controller[T]) { c.onError = fn }
}

// New creates an idle controller; no fetch is issued until the first
// criterion or page change, or an explicit Refresh
func New[T any](fetch Fetcher[T], opts ...Option[T]) *Controller[T] {
	c := &Controller[T]{
		fetch:      fetch,
		delay:      DefaultDelay,
		criteria:   make(map[string]string),
		debouncers: make(map[string]*debounce.Value),
		state:      StateIdle,
		page:       1,
		limit:      pagination.DefaultLimit,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetCriterion updates one named criterion. The change settles through
// the field's debouncer; once stable, the page resets to 1 and a fetch
// is issued.
func (c *Controller[T]) SetCriterion(name, value string) {
	c.mu.Lock()
	d, ok := c.debouncers[name]
	if !ok {
		d = debounce.NewValue(c.delay, func(settled string) {
			c.applyCriterion(name, settled)
		})
		c.debouncers[name] = d
	}
	c.mu.Unlock()

	d.Set(value)
}

// ClearCriterion resets one criterion immediately, bypassing the
// debounce delay, and returns to page 1
func (c *Controller[T]) ClearCriterion(name string) {
	c.mu.Lock()
	d, ok := c.debouncers[name]
	c.mu.Unlock()

	if ok {
		d.SetNow("")
		return
	}
	c.applyCriterion(name, "")
}

// ClearAll resets every criterion simultaneously, returns to page 1,
// and issues a single fetch. Debouncers are reset without their settle
// callbacks, which would re-enter the controller lock.
func (c *Controller[T]) ClearAll() {
	c.mu.Lock()
	for _, d := range c.debouncers {
		d.Reset("")
	}
	c.criteria = make(map[string]string)
	c.page = 1
	c.startFetchLocked()
	c.mu.Unlock()
}

// SetPage requests a different page of the current criteria; this is
// the only change that does not reset the page number
func (c *Controller[T]) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	c.mu.Lock()
	c.page = page
	c.mu.Unlock()

	c.Refresh()
}

// SetLimit changes the page size and returns to page 1
func (c *Controller[T]) SetLimit(limit int) {
	if limit < 1 {
		limit = pagination.DefaultLimit
	}
	c.mu.Lock()
	c.limit = limit
	c.page = 1
	c.mu.Unlock()

	c.Refresh()
}

// Refresh refetches the current criteria and page
func (c *Controller[T]) Refresh() {
	c.mu.Lock()
	c.startFetchLocked()
	c.mu.Unlock()
}

// Reset returns to page 1 and refetches. Used after mutations that can
// change result membership or ordering (create, bulk upload).
func (c *Controller[T]) Reset() {
	c.mu.Lock()
	c.page = 1
	c.startFetchLocked()
	c.mu.Unlock()
}

// Snapshot returns a copy of the visible state
func (c *Controller[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]T, len(c.items))
	copy(items, c.items)

	return Snapshot[T]{
		State:      c.state,
		Items:      items,
		Total:      c.total,
		Page:       c.page,
		Limit:      c.limit,
		TotalPages: pagination.TotalPages(c.total, c.limit),
		Err:        c.err,
	}
}

// Criterion returns the settled value of one criterion
func (c *Controller[T]) Criterion(name string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.criteria[name]
}

// Patch applies fn to every visible item matching the predicate.
// Used for optimistic reconciliation after a single-record update.
func (c *Controller[T]) Patch(match func(*T) bool, fn func(*T)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if match(&c.items[i]) {
			fn(&c.items[i])
		}
	}
}

// Remove drops matching items from the visible set and decrements the
// total count accordingly, floored at zero
func (c *Controller[T]) Remove(match func(*T) bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.items[:0]
	removed := int64(0)
	for i := range c.items {
		if match(&c.items[i]) {
			removed++
			continue
		}
		kept = append(kept, c.items[i])
	}
	c.items = kept
	c.total -= removed
	if c.total < 0 {
		c.total = 0
	}
}

func (c *Controller[T]) applyCriterion(name, value string) {
	c.mu.Lock()
	if value == "" {
		delete(c.criteria, name)
	} else {
		c.criteria[name] = value
	}
	c.page = 1
	c.startFetchLocked()
	c.mu.Unlock()
}

// startFetchLocked supersedes any in-flight request and launches a new
// one for the current snapshot. Caller must hold c.mu.
func (c *Controller[T]) startFetchLocked() {
	if c.cancel != nil {
		c.cancel()
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel

	c.epoch++
	epoch := c.epoch
	c.state = StateLoading

	criteria := make(map[string]string, len(c.criteria))
	for k, v := range c.criteria {
		if v != "" {
			criteria[k] = v
		}
	}
	page, limit := c.page, c.limit

	go func() {
		items, total, err := c.fetch(ctx, criteria, page, limit)
		cancel()

		c.mu.Lock()
		if epoch != c.epoch {
			// A newer snapshot superseded this request; drop the result
			c.mu.Unlock()
			return
		}

		if err != nil {
			// Keep the previously visible items and total
			c.state = StateError
			c.err = err
			onError := c.onError
			c.mu.Unlock()
			if onError != nil {
				onError(err)
			}
			return
		}

		c.state = StateLoaded
		c.err = nil
		c.items = items
		c.total = total
		c.mu.Unlock()
	}()
}
