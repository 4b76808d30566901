package dispatch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"bankerdir/internal/console/api"
	"bankerdir/internal/console/listctrl"
	"bankerdir/internal/console/session"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type backendStub struct {
	srv      *httptest.Server
	requests int64
	handler  http.HandlerFunc
}

func newBackend(handler http.HandlerFunc) *backendStub {
	b := &backendStub{handler: handler}
	b.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&b.requests, 1)
		b.handler(w, r)
	}))
	return b
}

func (b *backendStub) count() int64 { return atomic.LoadInt64(&b.requests) }

func newBankerSetup(t *testing.T, handler http.HandlerFunc) (*BankerDispatcher, *listctrl.Controller[api.Banker], *backendStub) {
	t.Helper()
	backend := newBackend(handler)
	t.Cleanup(backend.srv.Close)

	client := api.NewClient(backend.srv.URL, session.NewMemoryStore())

	ctrl := listctrl.New(func(ctx context.Context, criteria map[string]string, page, limit int) ([]api.Banker, int64, error) {
		result, err := client.ListBankers(ctx, api.BankerFilter{}, page, limit)
		if err != nil {
			return nil, 0, err
		}
		return result.Data, result.Total, nil
	})

	return NewBankerDispatcher(client, ctrl), ctrl, backend
}

func waitLoaded[T any](t *testing.T, c *listctrl.Controller[T]) listctrl.Snapshot[T] {
	t.Helper()
	var snap listctrl.Snapshot[T]
	require.Eventually(t, func() bool {
		snap = c.Snapshot()
		return snap.State == listctrl.StateLoaded
	}, time.Second, 5*time.Millisecond)
	return snap
}

func TestBankerDispatcher_Create_InvalidInputNeverHitsNetwork(t *testing.T) {
	dispatcher, _, backend := newBankerSetup(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":true}`)
	})

	_, err := dispatcher.Create(context.Background(), &api.CreateBankerInput{
		Name: "Only a name",
	})

	require.Error(t, err)
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
	assert.Equal(t, int64(0), backend.count(), "validation failure must not issue a request")
}

func TestBankerDispatcher_Create_SuccessResetsListToPageOne(t *testing.T) {
	dispatcher, ctrl, _ := newBankerSetup(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			fmt.Fprint(w, `{"success":true,"data":{"id":10,"name":"New"}}`)
			return
		}
		fmt.Fprintf(w, `{"success":true,"data":{"data":[],"total":0,"page":%s,"limit":9}}`, r.URL.Query().Get("page"))
	})

	ctrl.SetPage(3)
	waitLoaded(t, ctrl)

	_, err := dispatcher.Create(context.Background(), &api.CreateBankerInput{
		Name:        "New",
		Affiliation: "Bank",
		Locations:   []string{"Mumbai"},
		Products:    []string{"Home Loan"},
		Phone:       "123",
	})
	require.NoError(t, err)

	snap := waitLoaded(t, ctrl)
	assert.Equal(t, 1, snap.Page, "create must refetch from page 1")
}

func TestBankerDispatcher_Delete_SuccessRemovesRecordAndDecrementsTotal(t *testing.T) {
	dispatcher, ctrl, _ := newBankerSetup(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			fmt.Fprint(w, `{"success":true}`)
			return
		}
		fmt.Fprint(w, `{"success":true,"data":{"data":[{"id":1,"name":"A"},{"id":2,"name":"B"}],"total":2,"page":1,"limit":9}}`)
	})

	ctrl.Refresh()
	waitLoaded(t, ctrl)

	require.NoError(t, dispatcher.Delete(context.Background(), 1, true))

	snap := ctrl.Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, uint(2), snap.Items[0].ID)
	assert.Equal(t, int64(1), snap.Total)
}

func TestBankerDispatcher_Delete_FailureLeavesStateUntouched(t *testing.T) {
	dispatcher, ctrl, _ := newBankerSetup(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"success":false,"error":"Banker not found"}`)
			return
		}
		fmt.Fprint(w, `{"success":true,"data":{"data":[{"id":1,"name":"A"}],"total":1,"page":1,"limit":9}}`)
	})

	ctrl.Refresh()
	before := waitLoaded(t, ctrl)

	err := dispatcher.Delete(context.Background(), 1, true)
	require.Error(t, err)

	after := ctrl.Snapshot()
	assert.Equal(t, before.Items, after.Items)
	assert.Equal(t, before.Total, after.Total)
}

func TestBankerDispatcher_Delete_NotConfirmedNeverHitsNetwork(t *testing.T) {
	dispatcher, _, backend := newBankerSetup(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":true}`)
	})

	err := dispatcher.Delete(context.Background(), 1, false)
	assert.ErrorIs(t, err, ErrNotConfirmed)
	assert.Equal(t, int64(0), backend.count())
}

func TestBankerDispatcher_Update_PatchesVisibleRecordWithoutRefetch(t *testing.T) {
	var listCalls int64
	dispatcher, ctrl, _ := newBankerSetup(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			fmt.Fprint(w, `{"success":true,"data":{"id":1,"name":"Renamed","affiliation":"Bank"}}`)
		default:
			atomic.AddInt64(&listCalls, 1)
			fmt.Fprint(w, `{"success":true,"data":{"data":[{"id":1,"name":"A"},{"id":2,"name":"B"}],"total":2,"page":1,"limit":9}}`)
		}
	})

	ctrl.Refresh()
	waitLoaded(t, ctrl)
	callsBefore := atomic.LoadInt64(&listCalls)

	name := "Renamed"
	updated, err := dispatcher.Update(context.Background(), 1, &api.UpdateBankerInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)

	snap := ctrl.Snapshot()
	assert.Equal(t, "Renamed", snap.Items[0].Name)
	assert.Equal(t, "B", snap.Items[1].Name)
	assert.Equal(t, callsBefore, atomic.LoadInt64(&listCalls), "update must not refetch")
}

func TestBankerDispatcher_Upload_BadExtensionNeverHitsNetwork(t *testing.T) {
	dispatcher, _, backend := newBankerSetup(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":true}`)
	})

	_, err := dispatcher.Upload(context.Background(), "data.txt", strings.NewReader("x"), nil)
	assert.ErrorIs(t, err, ErrBadFileType)
	assert.Equal(t, int64(0), backend.count())
}

func TestBankerDispatcher_Upload_SuccessResetsListToPageOne(t *testing.T) {
	dispatcher, ctrl, _ := newBankerSetup(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/upload") {
			fmt.Fprint(w, `{"success":true,"data":{"imported":2,"skipped":0}}`)
			return
		}
		fmt.Fprintf(w, `{"success":true,"data":{"data":[],"total":0,"page":%s,"limit":9}}`, r.URL.Query().Get("page"))
	})

	ctrl.SetPage(2)
	waitLoaded(t, ctrl)

	result, err := dispatcher.Upload(context.Background(), "bankers.csv", strings.NewReader("Name\n"), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)

	snap := waitLoaded(t, ctrl)
	assert.Equal(t, 1, snap.Page)
}

func newReviewSetup(t *testing.T, handler http.HandlerFunc) (*ReviewDispatcher, *listctrl.Controller[api.Submission], *backendStub) {
	t.Helper()
	backend := newBackend(handler)
	t.Cleanup(backend.srv.Close)

	client := api.NewClient(backend.srv.URL, session.NewMemoryStore())
	ctrl := listctrl.New(func(ctx context.Context, criteria map[string]string, page, limit int) ([]api.Submission, int64, error) {
		result, err := client.ListSubmissions(ctx, criteria["status"], page, limit)
		if err != nil {
			return nil, 0, err
		}
		return result.Data, result.Total, nil
	})

	return NewReviewDispatcher(client, ctrl), ctrl, backend
}

func TestReviewDispatcher_Reject_WhitespaceReasonNeverHitsNetwork(t *testing.T) {
	dispatcher, _, backend := newReviewSetup(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":true}`)
	})

	for _, reason := range []string{"", "   ", "\t\n"} {
		_, err := dispatcher.Reject(context.Background(), 5, reason)
		assert.ErrorIs(t, err, ErrReasonRequired, "reason %q", reason)
	}
	assert.Equal(t, int64(0), backend.count())
}

func TestReviewDispatcher_Reject_PatchesStatusAndReason(t *testing.T) {
	dispatcher, ctrl, _ := newReviewSetup(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/reject") {
			fmt.Fprint(w, `{"success":true,"data":{"id":5,"name":"X","status":"REJECTED","reason":"incomplete details"}}`)
			return
		}
		fmt.Fprint(w, `{"success":true,"data":{"data":[{"id":5,"name":"X","status":"PENDING"}],"total":1,"page":1,"limit":9}}`)
	})

	ctrl.Refresh()
	waitLoaded(t, ctrl)

	sub, err := dispatcher.Reject(context.Background(), 5, "  incomplete details  ")
	require.NoError(t, err)
	assert.Equal(t, "incomplete details", sub.Reason)

	snap := ctrl.Snapshot()
	assert.Equal(t, "REJECTED", snap.Items[0].Status)
	assert.Equal(t, "incomplete details", snap.Items[0].Reason)
}

func TestReviewDispatcher_Approve_PatchesStatus(t *testing.T) {
	dispatcher, ctrl, _ := newReviewSetup(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/approve") {
			fmt.Fprint(w, `{"success":true,"data":{"id":5,"name":"X","status":"APPROVED"}}`)
			return
		}
		fmt.Fprint(w, `{"success":true,"data":{"data":[{"id":5,"name":"X","status":"PENDING"}],"total":1,"page":1,"limit":9}}`)
	})

	ctrl.Refresh()
	waitLoaded(t, ctrl)

	sub, err := dispatcher.Approve(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", sub.Status)
	assert.Equal(t, "APPROVED", ctrl.Snapshot().Items[0].Status)
}
