package fetch

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	// Some sites serve empty shells or block requests without a
	// browser-looking user agent.
	userAgent = "Mozilla/5.0"

	maxBodyChars = 2500
)

// Fetcher downloads a page and extracts its readable paragraph text.
type Fetcher struct {
	httpClient *http.Client
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// FetchBody returns the concatenated <p> text of the page at url,
// truncated to 2500 characters. Every failure mode (timeout, bad
// status, unparseable HTML) yields an empty string so a single dead
// source never aborts evidence gathering.
func (f *Fetcher) FetchBody(ctx context.Context, url string) string {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		log.Printf("Failed to create request for %s: %v", url, err)
		return ""
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		log.Printf("Error fetching %s: %v", url, err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("Unexpected status %d fetching %s", resp.StatusCode, url)
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		log.Printf("Error parsing %s: %v", url, err)
		return ""
	}

	// Paragraph elements only: full-page text drags in navigation and
	// boilerplate that drowns out the article body.
	var paragraphs []string
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})

	body := strings.Join(paragraphs, " ")
	if len(body) > maxBodyChars {
		body = body[:maxBodyChars]
	}
	return body
}
