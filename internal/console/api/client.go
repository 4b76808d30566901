package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"bankerdir/internal/console/session"
)

// Error is a failed backend call. Message carries the backend-provided
// text when present, with array-valued messages joined by ", ".
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// Client is a typed HTTP client for the directory backend
type Client struct {
	baseURL string
	http    *http.Client
	store   session.Store
}

// NewClient creates a client against the given base URL, reading the
// bearer token from the session store on each request
func NewClient(baseURL string, store session.Store) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		store:   store,
	}
}

// envelope mirrors the backend's response wrapper
type envelope struct {
	Success bool            `json:"success"`
	Message json.RawMessage `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

// joinMessage normalizes a message that may be a string or an array of
// strings into one display string
func joinMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.Join(list, ", ")
	}

	return string(raw)
}

// do issues one JSON request and decodes the envelope's data into out
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(req)

	return c.send(req, out)
}

func (c *Client) authorize(req *http.Request) {
	if token, err := c.store.GetToken(); err == nil {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func (c *Client) send(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return &Error{Status: resp.StatusCode}
	}

	if resp.StatusCode >= 400 || !env.Success {
		msg := joinMessage(env.Error)
		if msg == "" {
			msg = joinMessage(env.Message)
		}
		return &Error{Status: resp.StatusCode, Message: msg}
	}

	if out != nil && len(env.Data) > 0 {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}

// ============================================================
// Auth
// ============================================================

// Login authenticates and stores the token pair in the session store
func (c *Client) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	body := map[string]string{"email": email, "password": password}

	var pair TokenPair
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", nil, body, &pair); err != nil {
		return nil, err
	}

	if err := c.store.SetToken(pair.AccessToken); err != nil {
		return nil, err
	}
	if pair.RefreshToken != "" {
		if err := c.store.SetRefreshToken(pair.RefreshToken); err != nil {
			return nil, err
		}
	}
	return &pair, nil
}

// Logout revokes the stored refresh token on a best-effort basis and
// clears the local session; clearing always succeeds.
func (c *Client) Logout(ctx context.Context) error {
	if refreshToken, err := c.store.GetRefreshToken(); err == nil {
		body := map[string]string{"refresh_token": refreshToken}
		_ = c.do(ctx, http.MethodPost, "/api/v1/auth/logout", nil, body, nil)
	}
	return c.store.ClearToken()
}

// ProfileByEmail looks up a user's profile for display-name rendering
func (c *Client) ProfileByEmail(ctx context.Context, email string) (*Profile, error) {
	query := url.Values{"email": {email}}

	var profile Profile
	if err := c.do(ctx, http.MethodGet, "/api/v1/users/by-email", query, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// ============================================================
// Bankers
// ============================================================

// ListBankers fetches one page of the banker directory
func (c *Client) ListBankers(ctx context.Context, filter BankerFilter, page, limit int) (*Page[Banker], error) {
	query := url.Values{}
	setIfNonEmpty(query, "location", filter.Location)
	setIfNonEmpty(query, "name", filter.Name)
	setIfNonEmpty(query, "affiliation", filter.Affiliation)
	setIfNonEmpty(query, "email", filter.Email)
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	var result Page[Banker]
	if err := c.do(ctx, http.MethodGet, "/api/v1/bankers", query, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateBanker creates a directory entry
func (c *Client) CreateBanker(ctx context.Context, input *CreateBankerInput) (*Banker, error) {
	var banker Banker
	if err := c.do(ctx, http.MethodPost, "/api/v1/bankers", nil, input, &banker); err != nil {
		return nil, err
	}
	return &banker, nil
}

// UpdateBanker sends a partial update for one entry
func (c *Client) UpdateBanker(ctx context.Context, id uint, input *UpdateBankerInput) (*Banker, error) {
	var banker Banker
	path := fmt.Sprintf("/api/v1/bankers/%d", id)
	if err := c.do(ctx, http.MethodPut, path, nil, input, &banker); err != nil {
		return nil, err
	}
	return &banker, nil
}

// DeleteBanker removes a directory entry
func (c *Client) DeleteBanker(ctx context.Context, id uint) error {
	path := fmt.Sprintf("/api/v1/bankers/%d", id)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// UploadBankers streams a bulk-upload file as multipart form data.
// progress, when non-nil, receives monotonically non-decreasing integer
// percentages from 0 to 100 derived from transferred byte counts.
func (c *Client) UploadBankers(ctx context.Context, filename string, file io.Reader, progress func(int)) (*ImportResult, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	body := io.Reader(&buf)
	if progress != nil {
		progress(0)
		body = &progressReader{r: &buf, total: int64(buf.Len()), report: progress}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/bankers/upload", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.authorize(req)

	var result ImportResult
	if err := c.send(req, &result); err != nil {
		return nil, err
	}
	if progress != nil {
		progress(100)
	}
	return &result, nil
}

// ============================================================
// Lenders
// ============================================================

// ListLenders fetches one page of the lender directory
func (c *Client) ListLenders(ctx context.Context, filter LenderFilter, page, limit int) (*Page[Lender], error) {
	query := url.Values{}
	setIfNonEmpty(query, "state", filter.State)
	setIfNonEmpty(query, "city", filter.City)
	setIfNonEmpty(query, "name", filter.Name)
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	var result Page[Lender]
	if err := c.do(ctx, http.MethodGet, "/api/v1/lenders", query, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateLender creates a lender entry
func (c *Client) CreateLender(ctx context.Context, input *CreateLenderInput) (*Lender, error) {
	var lender Lender
	if err := c.do(ctx, http.MethodPost, "/api/v1/lenders", nil, input, &lender); err != nil {
		return nil, err
	}
	return &lender, nil
}

// UpdateLender sends a partial update for one lender
func (c *Client) UpdateLender(ctx context.Context, id uint, input *UpdateLenderInput) (*Lender, error) {
	var lender Lender
	path := fmt.Sprintf("/api/v1/lenders/%d", id)
	if err := c.do(ctx, http.MethodPut, path, nil, input, &lender); err != nil {
		return nil, err
	}
	return &lender, nil
}

// DeleteLender removes a lender entry
func (c *Client) DeleteLender(ctx context.Context, id uint) error {
	path := fmt.Sprintf("/api/v1/lenders/%d", id)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// ============================================================
// Review queue
// ============================================================

// ListSubmissions fetches one page of the review queue
func (c *Client) ListSubmissions(ctx context.Context, status string, page, limit int) (*Page[Submission], error) {
	query := url.Values{}
	setIfNonEmpty(query, "status", status)
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	var result Page[Submission]
	if err := c.do(ctx, http.MethodGet, "/api/v1/reviews", query, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SubmitReview queues a banker entry for admin review
func (c *Client) SubmitReview(ctx context.Context, input *SubmitInput) (*Submission, error) {
	var sub Submission
	if err := c.do(ctx, http.MethodPost, "/api/v1/reviews", nil, input, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// ApproveSubmission approves a pending submission
func (c *Client) ApproveSubmission(ctx context.Context, id uint) (*Submission, error) {
	var sub Submission
	path := fmt.Sprintf("/api/v1/reviews/%d/approve", id)
	if err := c.do(ctx, http.MethodPost, path, nil, nil, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// RejectSubmission rejects a pending submission with a reason
func (c *Client) RejectSubmission(ctx context.Context, id uint, reason string) (*Submission, error) {
	var sub Submission
	path := fmt.Sprintf("/api/v1/reviews/%d/reject", id)
	body := map[string]string{"reason": reason}
	if err := c.do(ctx, http.MethodPost, path, nil, body, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

func setIfNonEmpty(query url.Values, key, value string) {
	if value = strings.TrimSpace(value); value != "" {
		query.Set(key, value)
	}
}

// progressReader reports transfer progress as an integer percentage.
// Reported values never decrease and never exceed 100.
type progressReader struct {
	r      io.Reader
	total  int64
	read   int64
	last   int
	report func(int)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	p.read += int64(n)

	if p.total > 0 {
		pct := int(p.read * 100 / p.total)
		if pct > 100 {
			pct = 100
		}
		if pct > p.last {
			p.last = pct
			p.report(pct)
		}
	}
	return n, err
}
