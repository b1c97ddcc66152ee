package http

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/mzalewski/fragset"
)

// DefaultIndexBaseURL is the public Common Crawl index endpoint.
const DefaultIndexBaseURL = "https://index.commoncrawl.org"

// sampleOverFetchFactor controls how many index records are requested per
// sampled URL. Domain deduplication and mime/status filtering discard most
// records, so the CDX query asks for a multiple of the target.
const sampleOverFetchFactor = 3

// Ensure IndexSampler implements fragset.IndexSampler at compile time.
var _ fragset.IndexSampler = (*IndexSampler)(nil)

// IndexSampler samples diverse URLs from the Common Crawl CDX index. It
// feeds the broad-web sampling stage, which needs pages from many unrelated
// domains rather than a deep crawl of a few.
type IndexSampler struct {
	client  *http.Client
	baseURL string
}

// IndexSamplerOption configures an IndexSampler.
type IndexSamplerOption func(*IndexSampler)

// WithIndexBaseURL overrides the Common Crawl endpoint, mainly for tests.
func WithIndexBaseURL(u string) IndexSamplerOption {
	return func(s *IndexSampler) {
		s.baseURL = u
	}
}

// NewIndexSampler creates an IndexSampler backed by the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewIndexSampler(client *http.Client, opts ...IndexSamplerOption) *IndexSampler {
	if client == nil {
		client = http.DefaultClient
	}
	s := &IndexSampler{
		client:  client,
		baseURL: DefaultIndexBaseURL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// collInfo is one entry of collinfo.json.
type collInfo struct {
	ID string `json:"id"`
}

// cdxRecord is one JSON line of a CDX API response.
type cdxRecord struct {
	URL       string `json:"url"`
	Timestamp string `json:"timestamp"`
	Mime      string `json:"mime"`
	Status    string `json:"status"`
}

// LatestIndex returns the identifier of the most recent Common Crawl index.
// Indexes in collinfo.json are ordered newest first.
func (s *IndexSampler) LatestIndex(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/collinfo.json", nil)
	if err != nil {
		return "", err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d fetching collinfo.json", resp.StatusCode)
	}

	var indexes []collInfo
	if err := json.NewDecoder(resp.Body).Decode(&indexes); err != nil {
		return "", fmt.Errorf("parsing collinfo.json: %w", err)
	}
	if len(indexes) == 0 {
		return "", fragset.Errorf(fragset.ENOTFOUND, "no crawl indexes available")
	}

	return indexes[0].ID, nil
}

// Sample returns up to limit URLs matching the pattern from the given index.
// Only 200-status text/html records are kept, and at most one URL per domain
// so the resulting set spans many sites. The response is streamed line by
// line; sampling stops as soon as limit is reached.
func (s *IndexSampler) Sample(ctx context.Context, indexID, pattern string, limit int) ([]fragset.SampledURL, error) {
	if limit <= 0 {
		return nil, fragset.Errorf(fragset.EINVALID, "sample limit must be positive, got %d", limit)
	}
	if pattern == "" {
		pattern = "*"
	}

	q := url.Values{}
	q.Set("url", pattern)
	q.Set("output", "json")
	q.Set("limit", fmt.Sprintf("%d", limit*sampleOverFetchFactor))

	endpoint := fmt.Sprintf("%s/%s-index?%s", s.baseURL, indexID, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d querying index %s", resp.StatusCode, indexID)
	}

	var sampled []fragset.SampledURL
	seenDomains := make(map[string]bool)

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var rec cdxRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			continue
		}
		if rec.Status != "200" || !isHTML(rec.Mime) {
			continue
		}

		domain := extractDomain(rec.URL)
		if domain == "" || seenDomains[domain] {
			continue
		}
		seenDomains[domain] = true

		sampled = append(sampled, fragset.SampledURL{
			URL:       rec.URL,
			Domain:    domain,
			Timestamp: rec.Timestamp,
		})
		if len(sampled) >= limit {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading index response: %w", err)
	}

	return sampled, nil
}

func isHTML(mime string) bool {
	return strings.Contains(mime, "text/html")
}

func extractDomain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
