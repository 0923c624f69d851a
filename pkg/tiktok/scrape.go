package tiktok

import (
	"context"
	"net/http"

	"github.com/PuerkitoBio/goquery"
)

const scrapeUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// fillFromPage scrapes Open Graph tags off the video page to fill a
// missing title or cover. Failures are ignored: the payload from the API
// stands on its own.
func (c *Client) fillFromPage(ctx context.Context, pageURL string, res *Result) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return
	}
	req.Header.Set("User-Agent", scrapeUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return
	}
	if res.Title == "" {
		if v, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
			res.Title = v
		}
	}
	if res.CoverURL == "" {
		if v, ok := doc.Find(`meta[property="og:image"]`).Attr("content"); ok {
			res.CoverURL = v
		}
	}
}
