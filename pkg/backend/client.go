// Package backend is the client for the hosted backend the tracker
// delegates to: a GoTrue-style identity API under /auth/v1 and a
// PostgREST record store under /rest/v1. The store enforces row-level
// ownership; the client authenticates with a bearer token and never
// filters rows by user itself.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"
)

// ErrNotFound marks a lookup that matched no row. Callers treat it as a
// distinct outcome, not a failure.
var ErrNotFound = errors.New("record not found")

// APIError is a non-2xx response from the backend.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend: %s (status %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("backend: status %d", e.Status)
}

// Client holds the base URL and the project API key shared by the
// identity and record store surfaces.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   5 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// Auth returns the identity surface.
func (c *Client) Auth() *Auth { return &Auth{c: c} }

// Books returns the record store surface for the books table.
func (c *Client) Books() *Books { return &Books{c: c} }

// do performs one JSON request. token is the user's access token; when
// empty the project API key authenticates the call. prefer, when set,
// is sent as the PostgREST Prefer header.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, token, prefer string, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apikey", c.apiKey)
	if token == "" {
		token = c.apiKey
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// decodeError maps the two error shapes the backend produces: the
// identity API's {error, error_description | msg} and the record
// store's {code, message}.
func decodeError(resp *http.Response) error {
	var raw struct {
		Code             json.RawMessage `json:"code"`
		Message          string          `json:"message"`
		Msg              string          `json:"msg"`
		Err              string          `json:"error"`
		ErrorCode        string          `json:"error_code"`
		ErrorDescription string          `json:"error_description"`
	}
	apiErr := &APIError{Status: resp.StatusCode}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err == nil {
		switch {
		case raw.Message != "":
			apiErr.Message = raw.Message
		case raw.ErrorDescription != "":
			apiErr.Message = raw.ErrorDescription
		case raw.Msg != "":
			apiErr.Message = raw.Msg
		case raw.Err != "":
			apiErr.Message = raw.Err
		}
		if raw.ErrorCode != "" {
			apiErr.Code = raw.ErrorCode
		} else if len(raw.Code) > 0 {
			// PostgREST codes are strings, GoTrue's are numbers.
			var s string
			if json.Unmarshal(raw.Code, &s) == nil {
				apiErr.Code = s
			}
		}
	}
	return apiErr
}
