package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gartstein/propertyhub/internal/pkg/config"
	"github.com/gartstein/propertyhub/internal/pkg/metrics"
	"github.com/gartstein/propertyhub/internal/propertybase/models"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// TokenSource supplies the bearer token sent on every upstream call.
type TokenSource interface {
	Token() (string, error)
}

// Client is a resty client bound to one upstream service.
type Client struct {
	http   *resty.Client
	name   string
	logger *zap.Logger
}

type envelope struct {
	Content json.RawMessage `json:"content"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

// NewClient builds a client for the named upstream. Idempotent requests are
// retried on transport errors and 5xx responses. tokens and m may be nil.
func NewClient(name string, cfg config.UpstreamConfig, tokens TokenSource, m *metrics.Metrics, logger *zap.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.Retries).
		SetRetryWaitTime(200 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		SetHeader("Accept", "application/json").
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			if resp == nil || resp.Request == nil || resp.Request.Method != http.MethodGet {
				return false
			}
			return err != nil || resp.StatusCode() >= http.StatusInternalServerError
		})

	if tokens != nil {
		httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			token, err := tokens.Token()
			if err != nil {
				return err
			}
			req.SetAuthToken(token)
			return nil
		})
	}
	if m != nil {
		httpClient.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
			m.ObserveUpstream(name, resp.Request.Method, resp.StatusCode(), resp.Time())
			return nil
		})
	}

	return &Client{
		http:   httpClient,
		name:   name,
		logger: logger.Named(name + "_adapter"),
	}
}

func (c *Client) Name() string { return c.name }

// Request describes one upstream call.
type Request struct {
	Method string
	Path   string
	Query  map[string]string
	Body   any
	// Whole decodes the full body instead of its content field. Paginated
	// responses carry content next to _meta.
	Whole bool
}

// Do performs the request and decodes the envelope content into out. out
// may be nil for calls without a body, such as deletes.
func (c *Client) Do(ctx context.Context, r Request, out any) error {
	req := c.http.R().SetContext(ctx)
	for k, v := range r.Query {
		if v != "" {
			req.SetQueryParam(k, v)
		}
	}
	if r.Body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(r.Body)
	}

	resp, err := req.Execute(r.Method, r.Path)
	if err != nil {
		c.logger.Error("Upstream call failed",
			zap.Error(err),
			zap.String("method", r.Method),
			zap.String("path", r.Path),
		)
		return &Error{Kind: Unknown, Upstream: c.name, Err: err}
	}

	body := resp.Body()
	if resp.IsError() {
		upstreamErr := &Error{
			Kind:     KindFromStatus(resp.StatusCode()),
			Upstream: c.name,
			Status:   resp.StatusCode(),
		}
		var env envelope
		if json.Unmarshal(body, &env) == nil {
			upstreamErr.Message = env.Message
			if upstreamErr.Kind == Unknown && env.Error != "" {
				upstreamErr.Kind = ParseKind(env.Error)
			}
		}
		if upstreamErr.Kind == Unknown {
			c.logger.Warn("Upstream returned error",
				zap.Int("status", resp.StatusCode()),
				zap.String("method", r.Method),
				zap.String("path", r.Path),
			)
		}
		return upstreamErr
	}

	if out == nil || len(body) == 0 {
		return nil
	}
	if r.Whole {
		err = json.Unmarshal(body, out)
	} else {
		err = decodeContent(body, out)
	}
	if err != nil {
		return &Error{Kind: Unknown, Upstream: c.name, Status: resp.StatusCode(), Err: err}
	}
	return nil
}

// decodeContent unwraps {content: T}.
func decodeContent(body []byte, out any) error {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return err
	}
	if env.Error != "" {
		return errors.New(env.Error)
	}
	if len(env.Content) == 0 {
		return errors.New("response has no content")
	}
	return json.Unmarshal(env.Content, out)
}

// Get decodes the content of GET path into a new T.
func Get[T any](ctx context.Context, c *Client, path string, query map[string]string) (T, error) {
	var out T
	err := c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query}, &out)
	return out, err
}

// GetPage decodes a paginated GET response.
func GetPage[T any](ctx context.Context, c *Client, path string, query map[string]string) (models.Page[T], error) {
	var out models.Page[T]
	err := c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query, Whole: true}, &out)
	return out, err
}

// Send performs a mutating call and decodes the returned content into a new T.
func Send[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var out T
	err := c.Do(ctx, Request{Method: method, Path: path, Body: body}, &out)
	return out, err
}
