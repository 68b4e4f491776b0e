// Package github talks to the GitHub GraphQL and REST APIs on behalf of a
// user and decodes webhook deliveries.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	graphql "github.com/hasura/go-graphql-client"
)

const (
	DefaultEndpoint     = "https://api.github.com/graphql"
	DefaultMaxRetries   = 5
	DefaultRetryBackoff = time.Second
)

// ErrRateLimited is returned once every retry of a 403 response is spent.
var ErrRateLimited = errors.New("github rate limit exceeded")

// StatusError is a non-2xx response other than a rate limit.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("github responded %d: %s", e.StatusCode, e.Body)
}

// GraphQLError carries the errors array of a GraphQL response.
type GraphQLError struct {
	Messages []string
}

func (e *GraphQLError) Error() string {
	return "graphql: " + strings.Join(e.Messages, "; ")
}

type Options struct {
	Endpoint string
	// RESTBaseURL overrides the REST API root, it must end with a slash.
	RESTBaseURL string
	// MaxRetries is the number of 403 retries, nil means DefaultMaxRetries.
	MaxRetries   *int
	RetryBackoff time.Duration
	HTTPClient   *http.Client
	Logger       *slog.Logger
}

type Client struct {
	gql          *graphql.Client
	endpoint     string
	restBaseURL  string
	maxRetries   int
	retryBackoff time.Duration
	httpClient   *http.Client
	logger       *slog.Logger
}

func NewClient(opts Options) *Client {
	c := &Client{
		endpoint:     opts.Endpoint,
		restBaseURL:  opts.RESTBaseURL,
		maxRetries:   DefaultMaxRetries,
		retryBackoff: opts.RetryBackoff,
		httpClient:   opts.HTTPClient,
		logger:       opts.Logger,
	}
	if c.endpoint == "" {
		c.endpoint = DefaultEndpoint
	}
	if opts.MaxRetries != nil && *opts.MaxRetries >= 0 {
		c.maxRetries = *opts.MaxRetries
	}
	if c.retryBackoff <= 0 {
		c.retryBackoff = DefaultRetryBackoff
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	c.gql = graphql.NewClient(c.endpoint, c.httpClient)
	return c
}

// Query runs a GraphQL query with the user's token and decodes the data
// member of the response into out. A 403 is retried with a linear backoff.
func (c *Client) Query(ctx context.Context, token, query string, vars map[string]any, out any) error {
	gql := c.gql.WithRequestModifier(func(r *http.Request) {
		r.Header.Set("Authorization", "bearer "+token)
	})

	for attempt := 0; ; attempt++ {
		data, err := gql.ExecRaw(ctx, query, vars)
		if err == nil {
			return decodeData(data, out)
		}

		netErr, ok := networkError(err)
		if !ok {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return graphQLError(err)
		}
		if netErr.StatusCode() != http.StatusForbidden {
			return &StatusError{StatusCode: netErr.StatusCode(), Body: strings.TrimSpace(netErr.Body())}
		}

		if attempt >= c.maxRetries {
			return ErrRateLimited
		}
		wait := time.Duration(attempt+1) * c.retryBackoff
		c.logger.Warn("github rate limited, retrying", "attempt", attempt+1, "wait", wait)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// networkError finds the non-2xx response the GraphQL client wraps into its
// error list.
func networkError(err error) (graphql.NetworkError, bool) {
	var netErr graphql.NetworkError
	if errors.As(err, &netErr) {
		return netErr, true
	}
	var errs graphql.Errors
	if errors.As(err, &errs) {
		for _, e := range errs {
			if errors.As(e, &netErr) {
				return netErr, true
			}
		}
	}
	return netErr, false
}

func graphQLError(err error) error {
	var errs graphql.Errors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return fmt.Errorf("send graphql request: %w", err)
	}
	gqlErr := &GraphQLError{}
	for _, e := range errs {
		gqlErr.Messages = append(gqlErr.Messages, e.Message)
	}
	return gqlErr
}

func decodeData(data []byte, out any) error {
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode graphql data: %w", err)
	}
	return nil
}
