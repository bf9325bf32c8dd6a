// Package feed walks the remote catalog: a home document listing containers,
// each holding a titled set of items either inline or behind a reference to
// a separate set document.
package feed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/tidwall/gjson"
)

const (
	DefaultHomeURL = "https://cd-static.bamgrid.com/dp-117731241344/home.json"
	DefaultSetURL  = "https://cd-static.bamgrid.com/dp-117731241344/sets/%s.json"

	defaultTimeout = 30 * time.Second
	userAgent      = "Marquee/1.0"
)

// JSON paths into the feed documents
const (
	containersPath = "data.StandardCollection.containers"
	titlePath      = "text.title.full.set.default.content"
	itemsPath      = "items"
	refIDPath      = "refId"
)

// setKinds are the keys a referenced set document may file its set under
var setKinds = []string{"CuratedSet", "TrendingSet", "PersonalizedCuratedSet"}

// Config holds the feed endpoints
type Config struct {
	HomeURL string
	// SetURL is a format string taking the set's refId
	SetURL string
}

// DefaultConfig returns the production endpoints
func DefaultConfig() Config {
	return Config{
		HomeURL: DefaultHomeURL,
		SetURL:  DefaultSetURL,
	}
}

// Option configures a Client
type Option func(*Client)

// WithImageRules replaces the image extraction rules
func WithImageRules(rules ...ImageRule) Option {
	return func(c *Client) {
		c.rules = rules
	}
}

// Client reads the catalog feed over HTTP
type Client struct {
	cfg        Config
	httpClient *http.Client
	rules      []ImageRule
	logger     *slog.Logger
}

// NewClient creates a feed client. A nil httpClient gets a default timeout.
func NewClient(cfg Config, httpClient *http.Client, logger *slog.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	if cfg.HomeURL == "" {
		cfg.HomeURL = DefaultHomeURL
	}
	if cfg.SetURL == "" {
		cfg.SetURL = DefaultSetURL
	}
	c := &Client{
		cfg:        cfg,
		httpClient: httpClient,
		rules:      DefaultImageRules(),
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Walk fetches the home document and calls fn for every set in feed order.
// Referenced sets are fetched as they are reached, so fn sees the first rows
// before the whole feed has loaded. A structural problem in any document
// stops the walk; sets already passed to fn stay delivered.
func (c *Client) Walk(ctx context.Context, fn func(domain.Set)) error {
	body, err := c.doRequest(ctx, c.cfg.HomeURL)
	if err != nil {
		return fmt.Errorf("failed to fetch home: %w", err)
	}

	containers := gjson.GetBytes(body, containersPath)
	if !containers.IsArray() {
		return domain.ErrMissingContainers
	}

	var walkErr error
	containers.ForEach(func(_, container gjson.Result) bool {
		if err := ctx.Err(); err != nil {
			walkErr = err
			return false
		}
		set, err := c.parseSet(ctx, container.Get("set"))
		if err != nil {
			walkErr = err
			return false
		}
		fn(set)
		return true
	})
	return walkErr
}

// Sets walks the whole feed and returns every set
func (c *Client) Sets(ctx context.Context) ([]domain.Set, error) {
	var sets []domain.Set
	err := c.Walk(ctx, func(s domain.Set) {
		sets = append(sets, s)
	})
	return sets, err
}

func (c *Client) parseSet(ctx context.Context, node gjson.Result) (domain.Set, error) {
	title := node.Get(titlePath)
	if !title.Exists() {
		return domain.Set{}, domain.ErrMissingTitle
	}
	set := domain.NewSet(title.String())

	items := node.Get(itemsPath)
	if !items.Exists() {
		refID := node.Get(refIDPath)
		if !refID.Exists() || refID.String() == "" {
			return domain.Set{}, fmt.Errorf("set %q: %w", set.Title, domain.ErrMissingRefID)
		}
		set.RefID = refID.String()

		resolved, err := c.fetchSetItems(ctx, set.RefID)
		if err != nil {
			return domain.Set{}, fmt.Errorf("set %q: %w", set.Title, err)
		}
		items = resolved
	}

	items.ForEach(func(_, item gjson.Result) bool {
		url, ok := ExtractImageURL(item, c.rules)
		if !ok {
			c.logger.Warn("item has no tile image", "set", set.Title)
			return true
		}
		set.Items = append(set.Items, domain.Item{ImageURL: url})
		return true
	})
	return set, nil
}

func (c *Client) fetchSetItems(ctx context.Context, refID string) (gjson.Result, error) {
	body, err := c.doRequest(ctx, fmt.Sprintf(c.cfg.SetURL, refID))
	if err != nil {
		return gjson.Result{}, err
	}

	data := gjson.GetBytes(body, "data")
	for _, kind := range setKinds {
		items := data.Get(kind + "." + itemsPath)
		if items.Exists() {
			return items, nil
		}
	}
	return gjson.Result{}, fmt.Errorf("%w: %s", domain.ErrMissingItems, refID)
}

func (c *Client) doRequest(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("feed request", "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("feed request failed", "url", reqURL, "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("feed request error", "url", reqURL, "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: unexpected status code: %d", domain.ErrFetchFailed, resp.StatusCode)
	}

	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: invalid JSON from %s", domain.ErrDecodeFailed, reqURL)
	}
	return body, nil
}
