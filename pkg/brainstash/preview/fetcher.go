package preview

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	// DefaultTimeout is the hard cap on a preview fetch
	DefaultTimeout = 5 * time.Second

	// maxBodyBytes caps how much of the page is read before parsing
	maxBodyBytes = 2 << 20

	// Browser-like request identity; some origins refuse
	// obviously-robotic user agents
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

var (
	// ErrInvalidURL means the input was not an absolute http(s) URL
	ErrInvalidURL = errors.New("invalid URL format")
	// ErrTimeout means the origin did not answer within the timeout
	ErrTimeout = errors.New("request to the URL timed out")
	// ErrUnreachable means a network-level failure with no response
	ErrUnreachable = errors.New("no response received from the URL")
)

// StatusError reports a non-2xx origin response
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("failed to fetch URL (status: %d)", e.StatusCode)
}

// Preview holds the metadata extracted from a page. Empty fields are
// omitted from responses.
type Preview struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	URL         string `json:"url,omitempty"`
	Type        string `json:"type,omitempty"`
}

// Fetcher fetches link previews. Stateless: every call is a fresh
// fetch, no retries, no caching.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a fetcher with the given request timeout
func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{client: &http.Client{Timeout: timeout}}
}

// Fetch retrieves a URL and extracts Open-Graph/meta metadata.
// Failure modes are surfaced distinctly: ErrInvalidURL for malformed
// input, ErrTimeout, *StatusError for non-2xx responses,
// ErrUnreachable when no response arrives at all, and a wrapped
// generic error for anything else.
func (f *Fetcher) Fetch(rawURL string) (*Preview, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, ErrInvalidURL
	}

	req, err := http.NewRequest(http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, ErrInvalidURL
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			return nil, ErrTimeout
		}
		return nil, ErrUnreachable
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	return extract(doc, u), nil
}

// metaTag returns the content attribute of the first matching meta tag
func metaTag(doc *goquery.Document, attr, value string) string {
	content, _ := doc.Find(fmt.Sprintf(`meta[%s="%s"]`, attr, value)).First().Attr("content")
	return strings.TrimSpace(content)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// extract pulls preview fields from the document, each with its
// fallback chain: Open-Graph tag, then the generic document tag,
// then the twitter variant.
func extract(doc *goquery.Document, pageURL *url.URL) *Preview {
	p := &Preview{
		Title: firstNonEmpty(
			metaTag(doc, "property", "og:title"),
			strings.TrimSpace(doc.Find("title").First().Text()),
			metaTag(doc, "name", "twitter:title"),
		),
		Description: firstNonEmpty(
			metaTag(doc, "property", "og:description"),
			metaTag(doc, "name", "description"),
			metaTag(doc, "name", "twitter:description"),
		),
		Image: firstNonEmpty(
			metaTag(doc, "property", "og:image"),
			metaTag(doc, "name", "twitter:image"),
		),
		URL: firstNonEmpty(
			metaTag(doc, "property", "og:url"),
			pageURL.String(),
		),
		Type: firstNonEmpty(
			metaTag(doc, "property", "og:type"),
			"website",
		),
	}

	// Resolve a relative image against the page origin; drop the
	// field entirely if it cannot be resolved.
	if p.Image != "" && !strings.HasPrefix(p.Image, "http") {
		origin := &url.URL{Scheme: pageURL.Scheme, Host: pageURL.Host}
		resolved, err := origin.Parse(p.Image)
		if err != nil {
			p.Image = ""
		} else {
			p.Image = resolved.String()
		}
	}

	return p
}
