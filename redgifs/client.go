package redgifs

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/scrazzz/redgifs-go/tags"
)

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://api.redgifs.com"

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "redgifs-go"
	defaultCount     = 80
)

// Client is the blocking entry point to the RedGifs API. Every call issues
// exactly one outbound request and blocks until it completes. Call Login
// before any other operation.
type Client struct {
	baseURL    string
	httpClient *http.Client
	ownsClient bool
	userAgent  string
	logger     zerolog.Logger

	mu     sync.Mutex
	cred   *Credential
	closed bool
}

// NewClient creates a RedGifs client. The zero configuration talks to the
// production API over a client-owned HTTP session.
func NewClient(logger zerolog.Logger, opts ...Option) (*Client, error) {
	options := clientOptions{
		baseURL:   DefaultBaseURL,
		timeout:   defaultTimeout,
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(&options)
	}

	client := &Client{
		baseURL:   strings.TrimRight(options.baseURL, "/"),
		userAgent: options.userAgent,
		logger:    logger,
	}

	var proxy func(*http.Request) (*url.URL, error)
	if options.proxyURL != "" {
		proxyURL, err := url.Parse(options.proxyURL)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy URL: %w", err)
		}
		if options.proxyUsername != "" {
			proxyURL.User = url.UserPassword(options.proxyUsername, options.proxyPassword)
		}
		proxy = http.ProxyURL(proxyURL)
	}

	if options.httpClient != nil {
		client.httpClient = options.httpClient
		if proxy != nil {
			// The proxy applies to every request even on a caller-supplied
			// session. Work on a copy so the caller's client is untouched.
			session := *options.httpClient
			switch t := session.Transport.(type) {
			case nil:
				session.Transport = &http.Transport{Proxy: proxy}
			case *http.Transport:
				cloned := t.Clone()
				cloned.Proxy = proxy
				session.Transport = cloned
			default:
				return nil, fmt.Errorf("cannot route transport %T through a proxy; set the proxy on the supplied HTTP client instead", t)
			}
			client.httpClient = &session
		}
	} else {
		transport := http.DefaultTransport
		if proxy != nil {
			transport = &http.Transport{Proxy: proxy}
		}
		client.httpClient = &http.Client{
			Timeout:   options.timeout,
			Transport: transport,
		}
		client.ownsClient = true
	}

	return client, nil
}

// SearchOptions narrow a media search. Zero values fall back to order
// "recent", count 80 and page 1. Pages are 1-indexed.
type SearchOptions struct {
	Order string
	Count int
	Page  int
}

func (o SearchOptions) withDefaults(order string) SearchOptions {
	if o.Order == "" {
		o.Order = order
	}
	if o.Count <= 0 {
		o.Count = defaultCount
	}
	if o.Page <= 0 {
		o.Page = 1
	}
	return o
}

// CreatorSearchOptions narrow a creator search. Tags restricts results to
// creators whose content carries all the given tags.
type CreatorSearchOptions struct {
	Order    string
	Page     int
	Verified bool
	Tags     []tags.Tag
}

// GetGIF fetches details of a single media item by its ID.
func (c *Client) GetGIF(ctx context.Context, id string) (*GIF, error) {
	var resp getGIFResponse
	if err := c.get(ctx, "/v2/gifs/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return parseGIF(resp.GIF)
}

// Search looks up media matching the query. Free text is resolved to the
// closest vocabulary tag before the request; an enumerated tag is used
// verbatim. Results are not auto-paginated.
func (c *Client) Search(ctx context.Context, query tags.Query, opts SearchOptions) (*SearchResult, error) {
	token, err := query.Token()
	if err != nil {
		return nil, err
	}

	o := opts.withDefaults(tags.OrderRecent)
	params := url.Values{
		"search_text": {string(token)},
		"order":       {o.Order},
		"count":       {strconv.Itoa(o.Count)},
		"page":        {strconv.Itoa(o.Page)},
	}

	var resp searchResponse
	if err := c.get(ctx, "/v2/gifs/search", params, &resp); err != nil {
		return nil, err
	}
	return parseSearch(token, &resp)
}

// SearchGIFs is an alias for Search, kept for compatibility.
func (c *Client) SearchGIFs(ctx context.Context, query tags.Query, opts SearchOptions) (*SearchResult, error) {
	return c.Search(ctx, query, opts)
}

// SearchImage looks up still images. Unlike Search, free text is sent
// verbatim: the image endpoint accepts arbitrary text, so resolving against
// the tag vocabulary would only lose information.
func (c *Client) SearchImage(ctx context.Context, query tags.Query, opts SearchOptions) (*SearchResult, error) {
	var token tags.Tag
	switch q := query.(type) {
	case tags.Raw:
		token = tags.Tag(q)
	default:
		t, err := query.Token()
		if err != nil {
			return nil, err
		}
		token = t
	}

	o := opts.withDefaults(tags.OrderTrending)
	params := url.Values{
		"query": {string(token)},
		"order": {o.Order},
		"count": {strconv.Itoa(o.Count)},
		"page":  {strconv.Itoa(o.Page)},
	}

	var resp imageSearchResponse
	if err := c.get(ctx, "/v2/search/image", params, &resp); err != nil {
		return nil, err
	}
	return parseImageSearch(token, &resp)
}

// SearchCreator fetches one creator's profile and a page of their media.
func (c *Client) SearchCreator(ctx context.Context, username string, opts SearchOptions) (*CreatorResult, error) {
	o := opts.withDefaults(tags.OrderRecent)
	params := url.Values{
		"order": {o.Order},
		"count": {strconv.Itoa(o.Count)},
		"page":  {strconv.Itoa(o.Page)},
	}

	var resp creatorSearchResponse
	if err := c.get(ctx, "/v2/users/"+url.PathEscape(username)+"/search", params, &resp); err != nil {
		return nil, err
	}
	return parseCreator(&resp)
}

// SearchUser is an alias for SearchCreator, kept for compatibility.
func (c *Client) SearchUser(ctx context.Context, username string, opts SearchOptions) (*CreatorResult, error) {
	return c.SearchCreator(ctx, username, opts)
}

// SearchCreators searches content creators.
func (c *Client) SearchCreators(ctx context.Context, opts CreatorSearchOptions) (*CreatorsResult, error) {
	if opts.Order == "" {
		opts.Order = tags.OrderRecent
	}
	if opts.Page <= 0 {
		opts.Page = 1
	}

	params := url.Values{
		"order": {opts.Order},
		"page":  {strconv.Itoa(opts.Page)},
	}
	if opts.Verified {
		params.Set("verified", "y")
	}
	if len(opts.Tags) > 0 {
		names := make([]string, len(opts.Tags))
		for i, t := range opts.Tags {
			names[i] = string(t)
		}
		params.Set("tags", strings.Join(names, ","))
	}

	var resp creatorsSearchResponse
	if err := c.get(ctx, "/v2/creators/search", params, &resp); err != nil {
		return nil, err
	}
	return parseCreators(&resp)
}

// GetTags lists every tag known to the remote API.
func (c *Client) GetTags(ctx context.Context) ([]TagInfo, error) {
	var resp tagsResponse
	if err := c.get(ctx, "/v2/tags", nil, &resp); err != nil {
		return nil, err
	}
	return parseTags(&resp)
}

// GetTrendingTags lists the currently trending tags.
func (c *Client) GetTrendingTags(ctx context.Context) ([]TagInfo, error) {
	var resp tagsResponse
	if err := c.get(ctx, "/v2/tags/trending", nil, &resp); err != nil {
		return nil, err
	}
	return parseTags(&resp)
}

// FetchTagSuggestions returns tag completions for a partial query.
func (c *Client) FetchTagSuggestions(ctx context.Context, query string) ([]string, error) {
	params := url.Values{"query": {query}}

	var resp tagSuggestionsResponse
	if err := c.get(ctx, "/v2/search/suggest", params, &resp); err != nil {
		return nil, err
	}

	out := make([]string, 0, len(resp))
	for _, s := range resp {
		if s.Text == nil {
			return nil, &ParseError{Field: "text"}
		}
		out = append(out, *s.Text)
	}
	return out, nil
}

// Close releases the client's network session. It is idempotent: calling it
// again, or without ever using the client, is safe. A caller-supplied HTTP
// client is left untouched.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	if c.ownsClient {
		c.httpClient.CloseIdleConnections()
	}
	return nil
}

func (c *Client) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
