// Package scripture is a client for the ABíbliaDigital REST API.
//
// Every method returns either the decoded payload or a *Error describing the
// failure; transport, status and decoding problems never escape as panics.
package scripture

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL   = "https://www.abibliadigital.com.br/api"
	DefaultVersion   = "nvi"
	DefaultTimeout   = 30 * time.Second
	defaultUserAgent = "GoBiblia/1.0 (https://github.com/mrlokans/gobiblia)"
)

// Options configures a Client. Zero values fall back to the defaults above.
type Options struct {
	BaseURL        string
	Token          string // optional bearer credential
	DefaultVersion string
	Timeout        time.Duration
	UserAgent      string

	// InsecureSkipVerify disables TLS peer verification. Off unless set.
	InsecureSkipVerify bool

	// RateLimit is the number of requests per second; 0 means unlimited.
	RateLimit float64
	RateBurst int

	// HTTPClient replaces the client built from Timeout and InsecureSkipVerify.
	HTTPClient *http.Client
}

// Client talks to the scripture API.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	token          string
	defaultVersion string
	userAgent      string
	rateLimiter    *rate.Limiter
}

// NewClient creates a scripture API client.
func NewClient(opts Options) *Client {
	c := &Client{
		httpClient:     opts.HTTPClient,
		baseURL:        strings.TrimRight(opts.BaseURL, "/"),
		token:          opts.Token,
		defaultVersion: opts.DefaultVersion,
		userAgent:      opts.UserAgent,
		rateLimiter:    rate.NewLimiter(rate.Inf, 0),
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.defaultVersion == "" {
		c.defaultVersion = DefaultVersion
	}
	if c.userAgent == "" {
		c.userAgent = defaultUserAgent
	}
	if opts.RateLimit > 0 {
		burst := opts.RateBurst
		if burst < 1 {
			burst = 1
		}
		c.rateLimiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	if c.httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		transport := http.DefaultTransport.(*http.Transport).Clone()
		if opts.InsecureSkipVerify {
			log.Printf("[scripture] WARNING: TLS certificate verification is disabled for %s", c.baseURL)
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		}
		c.httpClient = &http.Client{
			Timeout:   timeout,
			Transport: transport,
		}
	}

	return c
}

// DefaultVersion returns the translation used when a call omits one.
func (c *Client) DefaultVersion() string {
	return c.defaultVersion
}

// ListBooks returns every book in canonical order.
func (c *Client) ListBooks(ctx context.Context) ([]Book, error) {
	var books []Book
	if err := c.doRequest(ctx, http.MethodGet, "/books", nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// GetBook returns a single book by its key.
func (c *Client) GetBook(ctx context.Context, book string) (*Book, error) {
	var b Book
	if err := c.doRequest(ctx, http.MethodGet, buildPath("books", book), nil, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// GetChapter returns a chapter with all of its verses.
func (c *Client) GetChapter(ctx context.Context, version, book string, chapter int) (*Chapter, error) {
	var ch Chapter
	path := buildPath("verses", c.versionOrDefault(version), book, strconv.Itoa(chapter))
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

// GetVerse returns a single verse.
func (c *Client) GetVerse(ctx context.Context, version, book string, chapter, verse int) (*Verse, error) {
	var v Verse
	path := buildPath("verses", c.versionOrDefault(version), book, strconv.Itoa(chapter), strconv.Itoa(verse))
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// GetRandomVerse returns a random verse, constrained to book when it is set.
func (c *Client) GetRandomVerse(ctx context.Context, version, book string) (*Verse, error) {
	version = c.versionOrDefault(version)

	path := buildPath("verses", version, "random")
	if book != "" {
		path = buildPath("verses", version, book, "random")
	}

	var v Verse
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// SearchVerses finds verses containing word. An empty word is sent as is;
// callers validate it.
func (c *Client) SearchVerses(ctx context.Context, word, version string) (*SearchResult, error) {
	body := searchRequest{
		Version: c.versionOrDefault(version),
		Search:  word,
	}

	var result SearchResult
	if err := c.doRequest(ctx, http.MethodPost, "/verses/search", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListVersions returns the available translations.
func (c *Client) ListVersions(ctx context.Context) ([]Version, error) {
	var versions []Version
	if err := c.doRequest(ctx, http.MethodGet, "/versions", nil, &versions); err != nil {
		return nil, err
	}
	return versions, nil
}

func (c *Client) versionOrDefault(version string) string {
	if version == "" {
		return c.defaultVersion
	}
	return version
}

func (c *Client) doRequest(ctx context.Context, method, path string, body, out any) error {
	err := c.do(ctx, method, path, body, out)
	if err != nil {
		log.Printf("[scripture] %s %s: %v", method, path, err)
	}
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return transportError(method, path, errors.Is(err, context.DeadlineExceeded), err)
	}

	var reqBody io.Reader
	if body != nil && method != http.MethodGet {
		payload, err := json.Marshal(body)
		if err != nil {
			return transportError(method, path, false, err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return transportError(method, path, false, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportError(method, path, isTimeout(err), err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportError(method, path, isTimeout(err), err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var msg apiMessage
		_ = json.Unmarshal(data, &msg)
		return statusError(method, path, resp.StatusCode, msg.Msg)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return decodeError(method, path, err)
	}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return decodeError(method, path, errors.New("null response body"))
	}

	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func buildPath(segments ...string) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}
