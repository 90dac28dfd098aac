// Package gateway talks to the /itens REST service.
package gateway

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

	"itens-cli/internal/model"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

const DefaultBaseURL = "http://localhost:3000"

// Client issues list/create/update/delete calls. It never retries and sets
// no timeout of its own; callers bound calls through ctx if they want to.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *log.Logger
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("gateway: invalid base url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("gateway: base url %q must be http or https", baseURL)
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) BaseURL() string { return c.baseURL }

// List fetches one page of items.
func (c *Client) List(ctx context.Context, q model.ListQuery) (model.ListResult, error) {
	const op = "list items"
	resp, err := c.do(ctx, op, http.MethodGet, "/itens?"+q.Encode(), nil)
	if err != nil {
		return model.ListResult{}, err
	}
	defer drain(resp)
	if !isSuccess(resp.StatusCode) {
		return model.ListResult{}, &ApplicationError{Op: op, Status: resp.StatusCode}
	}
	var res model.ListResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return model.ListResult{}, &DecodeError{Op: op, Err: err}
	}
	if res.Items == nil {
		res.Items = []model.Item{}
	}
	return res, nil
}

func (c *Client) Create(ctx context.Context, in model.ItemInput) (model.Item, error) {
	return c.write(ctx, "create item", http.MethodPost, "/itens", in)
}

func (c *Client) Update(ctx context.Context, id int, in model.ItemInput) (model.Item, error) {
	return c.write(ctx, "update item", http.MethodPut, "/itens/"+strconv.Itoa(id), in)
}

// Delete removes an item. Only 204 No Content counts as success.
func (c *Client) Delete(ctx context.Context, id int) error {
	const op = "delete item"
	resp, err := c.do(ctx, op, http.MethodDelete, "/itens/"+strconv.Itoa(id), nil)
	if err != nil {
		return err
	}
	defer drain(resp)
	if resp.StatusCode != http.StatusNoContent {
		return &ApplicationError{Op: op, Status: resp.StatusCode}
	}
	return nil
}

func (c *Client) write(ctx context.Context, op, method, path string, in model.ItemInput) (model.Item, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return model.Item{}, &TransportError{Op: op, Err: err}
	}
	resp, err := c.do(ctx, op, method, path, body)
	if err != nil {
		return model.Item{}, err
	}
	defer drain(resp)
	if !isSuccess(resp.StatusCode) {
		return model.Item{}, &ApplicationError{Op: op, Status: resp.StatusCode}
	}
	var it model.Item
	if err := json.NewDecoder(resp.Body).Decode(&it); err != nil {
		return model.Item{}, &DecodeError{Op: op, Err: err}
	}
	return it, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, body []byte) (*http.Response, error) {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			c.logger.Debug("request canceled", "op", op, "url", req.URL.String(), "request_id", reqID)
		} else {
			c.logger.Warn("request failed", "op", op, "url", req.URL.String(), "request_id", reqID, "err", err)
		}
		return nil, &TransportError{Op: op, Err: err}
	}
	c.logger.Debug("request done",
		"op", op,
		"method", method,
		"url", req.URL.String(),
		"status", resp.StatusCode,
		"request_id", reqID,
		"dur", time.Since(start),
	)
	return resp, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
