package ingestion

import (
	"context"

	"reciperoll/internal/webfetch"
	"reciperoll/internal/xhs"
)

// XhsNote is the fetched page behind a share-text link, before any
// structured parsing.
type XhsNote struct {
	URL  string `json:"url"`
	HTML string `json:"html"`
}

// XhsNoteFetcher resolves Xiaohongshu share-text to the note's HTML page.
type XhsNoteFetcher struct {
	client *webfetch.Client
}

// NewXhsNoteFetcher starts a headless browser session for note fetching.
func NewXhsNoteFetcher() (*XhsNoteFetcher, error) {
	client, err := webfetch.NewClient(&webfetch.Options{Stealth: true})
	if err != nil {
		return nil, err
	}
	return &XhsNoteFetcher{client: client}, nil
}

// FetchFromShareText extracts the short link from pasted share-text and
// fetches the page it redirects to.
func (f *XhsNoteFetcher) FetchFromShareText(ctx context.Context, shareText string) (*XhsNote, error) {
	url, err := xhs.ExtractURL(shareText)
	if err != nil {
		return nil, err
	}

	result, err := f.client.FetchHTML(ctx, url, nil)
	if err != nil {
		return nil, err
	}

	return &XhsNote{URL: result.URL, HTML: result.Content}, nil
}

// Close shuts the browser session down.
func (f *XhsNoteFetcher) Close() error {
	return f.client.Close()
}
