package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pulsefit/core/internal/apierr"
	"github.com/pulsefit/core/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// SessionProvider hands out the access token for backend requests and
// refreshes it when the backend rejects one. It replaces the app-wide
// session singleton: every Client gets its provider passed in explicitly.
type SessionProvider interface {
	AccessToken(ctx context.Context) (string, error)
	Refresh(ctx context.Context) (string, error)
}

// Client is a thin query client for the hosted backend's per-table REST
// interface. One builder call chain per request, one round-trip per Execute
// (two at most, when a rejected token gets refreshed and retried once).
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	sessions   SessionProvider
}

func NewClient(baseURL, apiKey string, sessions SessionProvider, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
		sessions:   sessions,
	}
}

// FormatTime renders a timestamp the way the backend stores them.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func (c *Client) From(table string) *Query {
	return &Query{
		client: c,
		table:  table,
		method: http.MethodGet,
		params: url.Values{},
	}
}

type Query struct {
	client  *Client
	table   string
	method  string
	params  url.Values
	payload any
	single  bool
}

// Select marks the query as a read. It is the default; kept for readability
// at call sites.
func (q *Query) Select() *Query {
	q.method = http.MethodGet
	return q
}

func (q *Query) Insert(payload any) *Query {
	q.method = http.MethodPost
	q.payload = payload
	return q
}

func (q *Query) Update(payload any) *Query {
	q.method = http.MethodPatch
	q.payload = payload
	return q
}

func (q *Query) Delete() *Query {
	q.method = http.MethodDelete
	return q
}

func (q *Query) Eq(column, value string) *Query {
	q.params.Add(column, "eq."+value)
	return q
}

func (q *Query) Gte(column, value string) *Query {
	q.params.Add(column, "gte."+value)
	return q
}

func (q *Query) Lte(column, value string) *Query {
	q.params.Add(column, "lte."+value)
	return q
}

func (q *Query) Lt(column, value string) *Query {
	q.params.Add(column, "lt."+value)
	return q
}

// Is filters on ternary values, e.g. Is("ended_at", "null").
func (q *Query) Is(column, value string) *Query {
	q.params.Add(column, "is."+value)
	return q
}

func (q *Query) Order(column string, ascending bool) *Query {
	direction := "desc"
	if ascending {
		direction = "asc"
	}
	q.params.Set("order", column+"."+direction)
	return q
}

// Single makes the backend return exactly one row (object, not array)
// and fail when zero or more than one row matches.
func (q *Query) Single() *Query {
	q.single = true
	return q
}

// Execute runs the query and decodes the response into dest (pass nil to
// discard the response body, e.g. for deletes).
func (q *Query) Execute(ctx context.Context, dest any) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "backend."+strings.ToLower(q.method)+"."+q.table)
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("table", q.table))

	token, err := q.client.sessions.AccessToken(ctx)
	if err != nil {
		return fmt.Errorf("get access token: %w", err)
	}

	respBytes, statusCode, err := q.do(ctx, token)
	if err != nil {
		return err
	}

	if statusCode == http.StatusUnauthorized {
		// token rejected: refresh once and retry once
		log.Debugf("backend: %s %s unauthorized, refreshing session", q.method, q.table)
		token, err = q.client.sessions.Refresh(ctx)
		if err != nil {
			return fmt.Errorf("refresh session: %w", err)
		}
		respBytes, statusCode, err = q.do(ctx, token)
		if err != nil {
			return err
		}
	}

	if statusCode >= 300 {
		return apierr.FromStatus(statusCode, fmt.Sprintf("%s %s: %s", q.method, q.table, respBytes))
	}

	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(respBytes, dest); err != nil {
		return apierr.Wrap(apierr.KindDecode, fmt.Sprintf("decode %s response", q.table), err)
	}
	return nil
}

func (q *Query) do(ctx context.Context, token string) ([]byte, int, error) {
	reqURL := q.client.baseURL + "/rest/v1/" + q.table
	if len(q.params) > 0 {
		reqURL += "?" + q.params.Encode()
	}

	var body io.Reader
	if q.payload != nil {
		payloadBytes, err := json.Marshal(q.payload)
		if err != nil {
			return nil, 0, fmt.Errorf("marshal %s payload: %w", q.table, err)
		}
		body = bytes.NewReader(payloadBytes)
	}

	req, err := http.NewRequestWithContext(ctx, q.method, reqURL, body)
	if err != nil {
		return nil, 0, fmt.Errorf("create %s request: %w", q.table, err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", q.client.apiKey)
	if q.payload != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Prefer", "return=representation")
	}
	if q.single {
		req.Header.Set("Accept", "application/vnd.pgrst.object+json")
	}

	resp, err := q.client.httpClient.Do(req)
	if err != nil {
		return nil, 0, apierr.Wrap(apierr.KindTransient, fmt.Sprintf("%s %s", q.method, q.table), err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, apierr.Wrap(apierr.KindTransient, "read response", err)
	}

	return respBytes, resp.StatusCode, nil
}
