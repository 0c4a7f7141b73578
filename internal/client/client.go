package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "portfolio/internal/errors"
	"portfolio/internal/model"
)

// APIError is a non-2xx answer from the API.
type APIError struct {
	StatusCode int
	Message    string
	Code       string
	Details    []apperrors.FieldError
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api: status %d: %s", e.StatusCode, e.Message)
}

// IsUnauthorized reports whether err is a 401 answer.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// Client talks to the portfolio admin API on behalf of one Session.
type Client struct {
	baseURL string
	http    *http.Client
	session *Session
}

// Option customizes a Client.
type Option func(*Client)

// WithTransport sets the underlying transport the auth interceptor wraps.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.http.Transport = &authTransport{session: c.session, base: rt}
	}
}

// WithTimeout bounds every request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// New creates a client for the API rooted at baseURL (e.g. http://localhost:8080).
func New(baseURL string, session *Session, opts ...Option) *Client {
	if session == nil {
		session = NewSession("")
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		session: session,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	c.http.Transport = &authTransport{session: session, base: http.DefaultTransport}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session returns the session the client authenticates with.
func (c *Client) Session() *Session {
	return c.session
}

// TestimonialPage is one page of the admin testimonial list.
type TestimonialPage struct {
	Testimonials []model.Testimonial `json:"testimonials"`
	Pagination   model.Pagination    `json:"pagination"`
}

// ProjectPage is one page of the admin project list.
type ProjectPage struct {
	Projects   []model.Project  `json:"projects"`
	Pagination model.Pagination `json:"pagination"`
}

// Login signs in and stores the issued token in the session.
func (c *Client) Login(ctx context.Context, email, password string) (*model.AdminIdentity, error) {
	var out struct {
		Token string               `json:"token"`
		Admin *model.AdminIdentity `json:"admin"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/admin/login", nil, body, &out); err != nil {
		return nil, err
	}
	c.session.Set(out.Token, out.Admin)
	return out.Admin, nil
}

// Logout revokes the session token on the server and clears it locally.
func (c *Client) Logout(ctx context.Context) error {
	defer c.session.Clear()
	return c.do(ctx, http.MethodPost, "/api/admin/logout", nil, nil, nil)
}

// Me returns the admin behind the session token.
func (c *Client) Me(ctx context.Context) (*model.AdminIdentity, error) {
	var out model.AdminIdentity
	if err := c.do(ctx, http.MethodGet, "/api/admin/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListTestimonials lists testimonials, optionally narrowed to status.
func (c *Client) ListTestimonials(ctx context.Context, status model.TestimonialStatus, page, limit int) (*TestimonialPage, error) {
	q := pageQuery(page, limit)
	if status != "" {
		q.Set("status", string(status))
	}
	var out TestimonialPage
	if err := c.do(ctx, http.MethodGet, "/api/admin/testimonials", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ModerateTestimonial sets the status of one testimonial.
func (c *Client) ModerateTestimonial(ctx context.Context, id uuid.UUID, status model.TestimonialStatus) (*model.Testimonial, error) {
	var out struct {
		Testimonial *model.Testimonial `json:"testimonial"`
	}
	body := map[string]string{"id": id.String(), "status": string(status)}
	if err := c.do(ctx, http.MethodPatch, "/api/admin/testimonials", nil, body, &out); err != nil {
		return nil, err
	}
	return out.Testimonial, nil
}

// DeleteTestimonial removes one testimonial.
func (c *Client) DeleteTestimonial(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/api/admin/testimonials", url.Values{"id": {id.String()}}, nil, nil)
}

// ListProjects lists every project, published or not.
func (c *Client) ListProjects(ctx context.Context, page, limit int) (*ProjectPage, error) {
	var out ProjectPage
	if err := c.do(ctx, http.MethodGet, "/api/admin/projects", pageQuery(page, limit), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetProjectPublished toggles the visibility of one project.
func (c *Client) SetProjectPublished(ctx context.Context, id uuid.UUID, published bool) (*model.Project, error) {
	var out struct {
		Project *model.Project `json:"project"`
	}
	body := map[string]interface{}{"id": id.String(), "published": published}
	if err := c.do(ctx, http.MethodPatch, "/api/admin/projects", nil, body, &out); err != nil {
		return nil, err
	}
	return out.Project, nil
}

// DeleteProject removes one project.
func (c *Client) DeleteProject(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/api/admin/projects", url.Values{"id": {id.String()}}, nil, nil)
}

func pageQuery(page, limit int) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return q
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out interface{}) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var payload apperrors.ErrorResponse
		if json.NewDecoder(resp.Body).Decode(&payload) == nil {
			apiErr.Message = payload.Error
			apiErr.Code = payload.Code
			apiErr.Details = payload.Details
		}
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
