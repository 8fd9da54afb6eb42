// Package covers resolves cover-image URLs for books against the
// OpenLibrary API.
package covers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const userAgent = "Book-Alchemy/1.0 (https://github.com/KonradTesch/Book-Alchemy)"

// Resolver performs a best-effort, two-stage cover lookup: first by ISBN,
// then by title search filtered on the author name. "Not found" is not an
// error; only transport failures are.
type Resolver struct {
	httpClient  *http.Client
	baseURL     string
	coversURL   string
	rateLimiter *rateLimiter
}

type rateLimiter struct {
	mu       sync.Mutex
	lastCall time.Time
	interval time.Duration
}

func newRateLimiter(interval time.Duration) *rateLimiter {
	return &rateLimiter{interval: interval}
}

func (r *rateLimiter) wait() {
	r.mu.Lock()
	defer r.mu.Unlock()

	since := time.Since(r.lastCall)
	if since < r.interval {
		time.Sleep(r.interval - since)
	}
	r.lastCall = time.Now()
}

// NewResolver creates an OpenLibrary cover resolver with rate limiting.
func NewResolver(baseURL, coversURL string) *Resolver {
	return &Resolver{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		coversURL:   strings.TrimSuffix(coversURL, "/"),
		rateLimiter: newRateLimiter(time.Second), // 1 request per second
	}
}

// ResolveCover returns the cover image URL for the book, or "" when no cover
// could be determined. The first stage that yields a URL wins; each stage is
// attempted at most once.
func (r *Resolver) ResolveCover(ctx context.Context, isbn, title, author string) (string, error) {
	if isbn != "" {
		coverURL, err := r.lookupByISBN(ctx, isbn)
		if err != nil {
			return "", err
		}
		if coverURL != "" {
			return coverURL, nil
		}
	}

	if title != "" {
		coverURL, err := r.searchByTitle(ctx, title, author)
		if err != nil {
			return "", err
		}
		if coverURL != "" {
			return coverURL, nil
		}
	}

	return "", nil
}

// lookupByISBN fetches the edition record for the ISBN and uses its first
// cover identifier. Non-200 responses and editions without covers yield ""
// so the caller can fall through to the title search.
func (r *Resolver) lookupByISBN(ctx context.Context, isbn string) (string, error) {
	isbn = strings.TrimSpace(strings.ReplaceAll(isbn, "-", ""))
	if isbn == "" {
		return "", nil
	}

	r.rateLimiter.wait()

	lookupURL := fmt.Sprintf("%s/isbn/%s.json", r.baseURL, url.PathEscape(isbn))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch ISBN data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil
	}

	var edition openLibraryEdition
	if err := json.NewDecoder(resp.Body).Decode(&edition); err != nil {
		return "", fmt.Errorf("decode ISBN response: %w", err)
	}

	if len(edition.Covers) == 0 {
		return "", nil
	}
	return r.coverImageURL(edition.Covers[0]), nil
}

// searchByTitle scans the title search results in order and accepts the
// first one that carries a cover identifier and lists the author verbatim.
// With an empty author no result qualifies.
func (r *Resolver) searchByTitle(ctx context.Context, title, author string) (string, error) {
	r.rateLimiter.wait()

	searchURL := fmt.Sprintf("%s/search.json?title=%s", r.baseURL, url.QueryEscape(title))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("search books: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil
	}

	var searchResult openLibrarySearchResult
	if err := json.NewDecoder(resp.Body).Decode(&searchResult); err != nil {
		return "", fmt.Errorf("decode search response: %w", err)
	}

	for _, doc := range searchResult.Docs {
		if doc.CoverI == 0 || author == "" {
			continue
		}
		for _, docAuthor := range doc.AuthorName {
			if docAuthor == author {
				return r.coverImageURL(doc.CoverI), nil
			}
		}
	}

	return "", nil
}

func (r *Resolver) coverImageURL(coverID int) string {
	return fmt.Sprintf("%s/b/id/%d-L.jpg", r.coversURL, coverID)
}

// OpenLibrary API response types (internal)

type openLibraryEdition struct {
	Key    string `json:"key"`
	Title  string `json:"title"`
	Covers []int  `json:"covers"`
}

type openLibrarySearchResult struct {
	NumFound int                    `json:"numFound"`
	Docs     []openLibrarySearchDoc `json:"docs"`
}

type openLibrarySearchDoc struct {
	Key        string   `json:"key"`
	Title      string   `json:"title"`
	AuthorName []string `json:"author_name"`
	CoverI     int      `json:"cover_i"`
}
