package bgg

import (
	"context"
	"encoding/xml"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/tabletoplab/bgg-harvester/pkg/logging"
)

// DefaultBaseURL is the public BoardGameGeek XML API v2 endpoint.
const DefaultBaseURL = "https://boardgamegeek.com/xmlapi2"

// ClientConfig configures the API client's endpoint and retry schedule.
type ClientConfig struct {
	BaseURL     string        `json:"base_url" koanf:"base_url"`
	MaxAttempts int           `json:"max_attempts" koanf:"max_attempts"` // total attempts per request
	RetryDelay  time.Duration `json:"retry_delay" koanf:"retry_delay"`   // base backoff, grows linearly per attempt
	Timeout     time.Duration `json:"timeout" koanf:"timeout"`
}

// DefaultClientConfig returns sensible defaults
func DefaultClientConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:     DefaultBaseURL,
		MaxAttempts: 3,
		RetryDelay:  2 * time.Second,
		Timeout:     30 * time.Second,
	}
}

// Client talks to the BoardGameGeek XML API v2. All lookups are synchronous
// and fetch fresh state per call; nothing is cached between calls.
type Client struct {
	http   *resty.Client
	logger zerolog.Logger
}

// NewClient creates a client with the given configuration. A nil config
// selects the defaults.
func NewClient(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultClientConfig()
	}
	attempts := config.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	httpc := resty.New().
		SetBaseURL(config.BaseURL).
		SetTimeout(config.Timeout).
		SetRetryCount(attempts - 1).
		SetRetryWaitTime(config.RetryDelay).
		SetRetryMaxWaitTime(config.RetryDelay * time.Duration(attempts)).
		SetRetryAfter(func(_ *resty.Client, resp *resty.Response) (time.Duration, error) {
			// Linear backoff: attempt numbers are 1-based.
			return config.RetryDelay * time.Duration(resp.Request.Attempt), nil
		}).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			return err != nil || resp.IsError()
		})

	return &Client{
		http:   httpc,
		logger: logging.GetLogger("bgg-client"),
	}
}

// fetch performs an HTTP GET with the configured retry schedule and returns
// the raw response body. The last failure is propagated once attempts are
// exhausted.
func (c *Client) fetch(ctx context.Context, path string, params map[string]string) ([]byte, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(path)
	if err != nil {
		return nil, &Error{Kind: FailureTransport, Op: path, Err: err}
	}
	if resp.IsError() {
		return nil, &Error{
			Kind: FailureTransport,
			Op:   path,
			Err:  fmt.Errorf("unexpected status %s", resp.Status()),
		}
	}
	return resp.Body(), nil
}

// parseItems decodes an xmlapi2 items document. Malformed XML is a parse
// failure, never silently swallowed at this layer.
func parseItems(op string, data []byte) (*itemsDoc, error) {
	var doc itemsDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, &Error{Kind: FailureParse, Op: op, Err: err}
	}
	return &doc, nil
}

// LookupGameID resolves a human-readable game title to its numeric catalog
// id via the search endpoint. The first matching item wins. A search that
// yields no items returns a not-found error.
func (c *Client) LookupGameID(ctx context.Context, name string) (int, error) {
	params := map[string]string{"query": name, "type": "boardgame"}

	data, err := c.fetch(ctx, "/search", params)
	if err != nil {
		c.logger.Error().Err(err).Str("game", name).Msg("Search request failed")
		return 0, err
	}

	doc, err := parseItems("search", data)
	if err != nil {
		c.logger.Error().Err(err).Str("game", name).Msg("Failed to parse search response")
		return 0, err
	}

	if len(doc.Items) == 0 {
		c.logger.Warn().Str("game", name).Msg("No game found for name")
		return 0, &Error{
			Kind: FailureNotFound,
			Op:   "/search",
			Err:  fmt.Errorf("no item for %q", name),
		}
	}

	id, err := strconv.Atoi(doc.Items[0].ID)
	if err != nil {
		c.logger.Error().Err(err).Str("game", name).Msg("Search item carries a non-numeric id")
		return 0, &Error{Kind: FailureParse, Op: "/search", Err: err}
	}
	return id, nil
}

// LookupGameInfo fetches the catalog metadata of a single game. Each of
// name, year and description individually tolerates absence in the remote
// schema.
func (c *Client) LookupGameInfo(ctx context.Context, id int) (*GameInfo, error) {
	params := map[string]string{"id": strconv.Itoa(id)}

	data, err := c.fetch(ctx, "/thing", params)
	if err != nil {
		c.logger.Error().Err(err).Int("game_id", id).Msg("Thing request failed")
		return nil, err
	}

	doc, err := parseItems("thing", data)
	if err != nil {
		c.logger.Error().Err(err).Int("game_id", id).Msg("Failed to parse thing response")
		return nil, err
	}

	if len(doc.Items) == 0 {
		c.logger.Warn().Int("game_id", id).Msg("No information found for game id")
		return nil, &Error{
			Kind: FailureNotFound,
			Op:   "/thing",
			Err:  fmt.Errorf("no item for id %d", id),
		}
	}

	item := doc.Items[0]
	info := &GameInfo{ID: id, Description: item.Description}
	if len(item.Names) > 0 {
		info.Name = item.Names[0].Value
	}
	if item.YearPublished != nil {
		info.Year = item.YearPublished.Value
	}
	return info, nil
}

// LookupComments fetches up to maxComments user reviews for a game, in
// document order. A well-formed response without comments yields an empty,
// non-nil slice.
func (c *Client) LookupComments(ctx context.Context, id, maxComments int) ([]Comment, error) {
	params := map[string]string{
		"id":             strconv.Itoa(id),
		"comments":       "1",
		"ratingcomments": "1",
		"pagesize":       strconv.Itoa(maxComments),
	}

	data, err := c.fetch(ctx, "/thing", params)
	if err != nil {
		c.logger.Error().Err(err).Int("game_id", id).Msg("Comment request failed")
		return nil, err
	}

	doc, err := parseItems("thing", data)
	if err != nil {
		c.logger.Error().Err(err).Int("game_id", id).Msg("Failed to parse comment response")
		return nil, err
	}

	comments := make([]Comment, 0)
	for _, item := range doc.Items {
		comments = append(comments, item.Comments.Comments...)
	}
	return comments, nil
}
