// Copyright (c) 2026 Palmares. All rights reserved.

/*
Package wiki fetches and parses award pages from the reference site.

Pages follow the fixed per-organization URL pattern "{base}/{year}_{slug}",
one page per ceremony edition. HTML is the only supported input encoding.
*/
package wiki

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/net/html"

	"github.com/openscreen/palmares/internal/platform/constants"
)

// Document is one fetched and parsed ceremony page.
type Document struct {
	Root *html.Node

	// URL is the page address actually fetched, recorded as the source
	// reference for every entry extracted from it.
	URL string
}

type Fetcher struct {
	baseURL    string
	httpClient *http.Client
}

func NewFetcher(baseURL string) *Fetcher {
	return &Fetcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: constants.RemoteRequestTimeout,
		},
	}
}

// PageURL builds the address of one ceremony edition's page.
func (fetcher *Fetcher) PageURL(year int, pageSlug string) string {
	return fmt.Sprintf("%s/%d_%s", fetcher.baseURL, year, pageSlug)
}

// FetchCeremonyPage downloads and parses the page for one edition. A
// missing page (404) is reported as an error; the orchestrator treats it as
// a per-unit failure, not a fatal one.
func (fetcher *Fetcher) FetchCeremonyPage(context context.Context, year int, pageSlug string) (*Document, error) {
	pageURL := fetcher.PageURL(year, pageSlug)

	request, err := http.NewRequestWithContext(context, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("wiki: build request for %s: %w", pageURL, err)
	}
	request.Header.Set("Accept", "text/html")

	response, err := fetcher.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("wiki: fetch %s: %w", pageURL, err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(response.Body, 2048))
		return nil, fmt.Errorf("wiki: %s returned %d", pageURL, response.StatusCode)
	}

	root, err := html.Parse(response.Body)
	if err != nil {
		return nil, fmt.Errorf("wiki: parse %s: %w", pageURL, err)
	}

	return &Document{Root: root, URL: pageURL}, nil
}
