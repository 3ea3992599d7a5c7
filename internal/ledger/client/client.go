// Package client is the HTTP implementation of ledger.Gateway.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/spendo/internal/auth"
	"github.com/MrJamesThe3rd/spendo/internal/ledger"
	"github.com/MrJamesThe3rd/spendo/internal/ledger/wire"
)

const (
	RequestIDHeader = "X-Request-Id"

	maxBodySize = 4 << 20
)

var _ ledger.Gateway = (*Client)(nil)

type Client struct {
	baseURL string
	http    *http.Client
	secret  string
	subject string
}

type Option func(*Client)

// WithHTTPClient replaces the underlying client. Its Timeout is kept as is.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithSecret signs every request with a bearer token for subject.
func WithSecret(secret, subject string) Option {
	return func(c *Client) {
		c.secret = secret
		c.subject = subject
	}
}

func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) Create(ctx context.Context, e ledger.Entry) (int64, error) {
	var out wire.Entry

	e.No = 0
	if err := c.do(ctx, "create entry", http.MethodPost, "/spendo/spendoAdd", nil, wire.FromEntry(e), &out); err != nil {
		return 0, err
	}

	if out.No <= 0 {
		return 0, &ledger.NetworkError{Op: "create entry", Err: errors.New("response has no spendoNo")}
	}

	return out.No, nil
}

func (c *Client) Update(ctx context.Context, e ledger.Entry) error {
	return c.do(ctx, "update entry", http.MethodPost, "/spendo/spendoEdit", nil, wire.FromEntry(e), nil)
}

func (c *Client) Delete(ctx context.Context, no int64) error {
	return c.do(ctx, "delete entry", http.MethodPost, "/spendo/spendoDel", entryNo(no), nil, nil)
}

func (c *Client) FetchByID(ctx context.Context, no int64) (*ledger.Entry, error) {
	var out wire.Entry
	if err := c.do(ctx, "fetch entry", http.MethodGet, "/spendo/spendoDetails", entryNo(no), nil, &out); err != nil {
		return nil, err
	}

	e, err := out.ToEntry()
	if err != nil {
		return nil, &ledger.NetworkError{Op: "fetch entry", Err: err}
	}

	return &e, nil
}

func (c *Client) FetchByQuery(ctx context.Context, q ledger.QueryParams) ([]ledger.Entry, error) {
	var out []wire.Entry
	if err := c.do(ctx, "list entries", http.MethodGet, "/spendo/spendoList", q.Values(), nil, &out); err != nil {
		return nil, err
	}

	entries := make([]ledger.Entry, 0, len(out))

	for _, w := range out {
		e, err := w.ToEntry()
		if err != nil {
			return nil, &ledger.NetworkError{Op: "list entries", Err: err}
		}

		entries = append(entries, e)
	}

	return entries, nil
}

func (c *Client) TypeCodes(ctx context.Context) ([]ledger.ReferenceCode, error) {
	return c.codes(ctx, "load type codes", "/common/commonExInCodeGet")
}

func (c *Client) PaymentCodes(ctx context.Context) ([]ledger.ReferenceCode, error) {
	return c.codes(ctx, "load payment codes", "/common/commonCcCrCodeGet")
}

func (c *Client) codes(ctx context.Context, op, path string) ([]ledger.ReferenceCode, error) {
	var out []wire.Code
	if err := c.do(ctx, op, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}

	return wire.ToCodes(out), nil
}

func (c *Client) Expenditure(ctx context.Context, start, end time.Time) ([]ledger.Expenditure, error) {
	params := url.Values{}
	params.Set("startDt", ledger.FormatDay(start))
	params.Set("endDt", ledger.FormatDay(end))

	var out []wire.Expenditure
	if err := c.do(ctx, "load expenditure", http.MethodGet, "/expenditure/expenditureGet", params, nil, &out); err != nil {
		return nil, err
	}

	return wire.ToExpenditures(out), nil
}

func entryNo(no int64) url.Values {
	return url.Values{"spendoNo": {strconv.FormatInt(no, 10)}}
}

// do performs one round trip and maps the outcome onto the ledger error
// taxonomy. out may be nil when the response data is not needed.
func (c *Client) do(ctx context.Context, op, method, path string, params url.Values, body, out any) error {
	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encoding request: %w", op, err)
		}

		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return &ledger.NetworkError{Op: op, Err: err}
	}

	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.secret != "" {
		token, err := auth.GenerateToken(c.secret, c.subject, auth.DefaultTTL)
		if err != nil {
			return &ledger.NetworkError{Op: op, Err: err}
		}

		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		slog.Error("ledger request failed", "op", op, "request_id", requestID, "error", err)
		return &ledger.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	slog.Debug("ledger request",
		"op", op,
		"request_id", requestID,
		"status", resp.StatusCode,
		"elapsed", time.Since(start),
	)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return &ledger.NetworkError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("reading response: %w", err)}
	}

	var env wire.Envelope[json.RawMessage]
	decodeErr := json.Unmarshal(raw, &env)

	switch {
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		vErr := &ledger.ValidationError{Message: env.Message}
		if vErr.Message == "" {
			vErr.Message = wire.StatusText(resp.StatusCode)
		}

		var fe wire.FieldError
		if len(env.Data) > 0 && json.Unmarshal(env.Data, &fe) == nil {
			vErr.Field = fe.Field
		}

		return vErr
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s: %w", op, ledger.ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		msg := env.Message
		if msg == "" {
			msg = wire.StatusText(resp.StatusCode)
		}

		return &ledger.NetworkError{Op: op, Status: resp.StatusCode, Err: errors.New(msg)}
	case decodeErr != nil:
		return &ledger.NetworkError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("malformed envelope: %w", decodeErr)}
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(env.Data, out); err != nil {
		return &ledger.NetworkError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("malformed data: %w", err)}
	}

	return nil
}
