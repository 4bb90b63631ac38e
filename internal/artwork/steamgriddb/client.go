package steamgriddb

import (
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

	"emustation/internal/services"
)

// Kind selects an artwork endpoint.
type Kind string

const (
	KindGrid Kind = "grids"
	KindHero Kind = "heroes"
	KindIcon Kind = "icons"
	KindLogo Kind = "logos"
)

// maxImageBytes bounds a single download.
const maxImageBytes = 32 << 20

// ErrNoResults is returned when a search matches nothing.
var ErrNoResults = errors.New("steamgriddb: no results")

// ErrImageTooLarge is returned while reading a download that exceeds the
// size limit.
var ErrImageTooLarge = fmt.Errorf("steamgriddb: image exceeds %d bytes", maxImageBytes)

// Game is one autocomplete match.
type Game struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Verified bool   `json:"verified"`
}

// Image is one artwork candidate.
type Image struct {
	ID     int64  `json:"id"`
	URL    string `json:"url"`
	Thumb  string `json:"thumb"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Style  string `json:"style"`
	Mime   string `json:"mime"`
}

// Portrait reports height > width.
func (i Image) Portrait() bool { return i.Height > i.Width }

// Landscape reports width > height.
func (i Image) Landscape() bool { return i.Width > i.Height }

type envelope[T any] struct {
	Success bool     `json:"success"`
	Data    T        `json:"data"`
	Errors  []string `json:"errors"`
}

// Catalog is the subset of the API the artwork orchestrator uses.
type Catalog interface {
	SearchGame(ctx context.Context, name string) (*Game, error)
	Images(ctx context.Context, kind Kind, gameID int64) ([]Image, error)
	// Download opens an image body; the caller closes it.
	Download(ctx context.Context, imageURL string) (io.ReadCloser, error)
}

// Client talks to SteamGridDB.
type Client struct {
	apiKey         string
	baseURL        string
	userAgent      string
	httpClient     *http.Client
	downloadClient *http.Client
}

var _ Catalog = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the client used for API calls.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithDownloadClient overrides the client used for image downloads.
func WithDownloadClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.downloadClient = client
		}
	}
}

// WithUserAgent sets the User-Agent header sent on every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = strings.TrimSpace(ua)
	}
}

// WithTimeouts sets the API and download timeouts.
func WithTimeouts(api, download time.Duration) Option {
	return func(c *Client) {
		if api > 0 {
			c.httpClient = &http.Client{Timeout: api}
		}
		if download > 0 {
			c.downloadClient = &http.Client{Timeout: download}
		}
	}
}

// New creates a SteamGridDB client.
func New(apiKey, baseURL string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("steamgriddb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("steamgriddb base url required")
	}
	client := &Client{
		apiKey:         apiKey,
		baseURL:        strings.TrimRight(baseURL, "/"),
		httpClient:     &http.Client{Timeout: 10 * time.Second},
		downloadClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// SearchGame returns the first autocomplete match for name.
func (c *Client) SearchGame(ctx context.Context, name string) (*Game, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("search term must not be empty")
	}
	var payload envelope[[]Game]
	if err := c.getJSON(ctx, "/search/autocomplete/"+url.PathEscape(name), &payload); err != nil {
		return nil, err
	}
	if !payload.Success || len(payload.Data) == 0 {
		return nil, ErrNoResults
	}
	game := payload.Data[0]
	if game.ID == 0 {
		return nil, fmt.Errorf("steamgriddb match for %q has no id", name)
	}
	return &game, nil
}

// Images lists artwork of kind for a game id.
func (c *Client) Images(ctx context.Context, kind Kind, gameID int64) ([]Image, error) {
	switch kind {
	case KindGrid, KindHero, KindIcon, KindLogo:
	default:
		return nil, fmt.Errorf("unsupported artwork kind %q", kind)
	}
	var payload envelope[[]Image]
	path := "/" + string(kind) + "/game/" + strconv.FormatInt(gameID, 10)
	if err := c.getJSON(ctx, path, &payload); err != nil {
		return nil, err
	}
	if !payload.Success {
		return nil, fmt.Errorf("steamgriddb %s lookup unsuccessful: %s", kind, strings.Join(payload.Errors, "; "))
	}
	return payload.Data, nil
}

// Download opens an image without the API credential. Reading past the size
// limit fails with ErrImageTooLarge.
func (c *Client) Download(ctx context.Context, imageURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	requestStart := time.Now()
	resp, err := c.downloadClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, transportError("download image", latency, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, statusError("download image", resp.StatusCode, latency)
	}
	return &cappedBody{r: io.LimitReader(resp.Body, maxImageBytes+1), closer: resp.Body}, nil
}

type cappedBody struct {
	r      io.Reader
	closer io.Closer
	read   int64
}

func (b *cappedBody) Read(p []byte) (int, error) {
	n, err := b.r.Read(p)
	b.read += int64(n)
	if b.read > maxImageBytes {
		return n, ErrImageTooLarge
	}
	return n, err
}

func (b *cappedBody) Close() error { return b.closer.Close() }

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return transportError("query", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNoResults
	}
	if resp.StatusCode != http.StatusOK {
		return statusError("query", resp.StatusCode, latency)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return services.Wrap(services.ErrFormat, "steamgriddb", "query", "decode response", err)
	}
	return nil
}

func transportError(operation string, latency time.Duration, err error) error {
	return services.Wrap(services.ErrNetwork, "steamgriddb", operation,
		fmt.Sprintf("request failed (latency=%v)", latency), err)
}

// statusError classifies a non-200 reply. Rejected credentials are a
// configuration problem; anything else is treated as the service being
// unavailable.
func statusError(operation string, status int, latency time.Duration) error {
	marker := services.ErrNetwork
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		marker = services.ErrConfiguration
	}
	return services.Wrap(marker, "steamgriddb", operation,
		fmt.Sprintf("returned %d (latency=%v)", status, latency), nil)
}
