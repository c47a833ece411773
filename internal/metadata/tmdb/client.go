// Copyright (c) 2026 Palmares. All rights reserved.

/*
Package tmdb is the client for the external movie-metadata service (a
TMDB-compatible REST API).

It exposes the raw endpoints (search, find-by-external-id, details, images)
plus a Resolver that layers the fallback matching strategy on top. The
package has no persistence side effects of its own; callers decide what to
do with a resolution.
*/
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/openscreen/palmares/internal/platform/constants"
)

// Client is a thin, authenticated wrapper over the metadata service's REST
// surface. Every call is bounded by the shared remote-request timeout.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: constants.RemoteRequestTimeout,
		},
	}
}

// get performs an authenticated GET and decodes the JSON body into target.
func (client *Client) get(context context.Context, path string, params url.Values, target any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", client.apiKey)

	endpoint := client.baseURL + path + "?" + params.Encode()

	request, err := http.NewRequestWithContext(context, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("tmdb: build request for %s: %w", path, err)
	}
	request.Header.Set("Accept", "application/json")

	response, err := client.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("tmdb: fetch %s: %w", path, err)
	}
	defer response.Body.Close()

	if response.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(response.Body, 2048))
		return fmt.Errorf("tmdb: %s returned %d: %s", path, response.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		return fmt.Errorf("tmdb: decode %s response: %w", path, err)
	}

	return nil
}

// SearchMovie queries the search endpoint. A zero year omits the year
// constraint entirely.
func (client *Client) SearchMovie(context context.Context, query string, year int) ([]SearchResult, error) {
	params := url.Values{}
	params.Set("query", query)
	if year > 0 {
		params.Set("year", strconv.Itoa(year))
	}

	var envelope searchResponse
	if err := client.get(context, "/search/movie", params, &envelope); err != nil {
		return nil, err
	}
	return envelope.Results, nil
}

// FindByIMDBID resolves an industry cross-reference identifier directly.
func (client *Client) FindByIMDBID(context context.Context, imdbID string) (*SearchResult, error) {
	params := url.Values{}
	params.Set("external_source", "imdb_id")

	var envelope findResponse
	if err := client.get(context, "/find/"+url.PathEscape(imdbID), params, &envelope); err != nil {
		return nil, err
	}
	if len(envelope.MovieResults) == 0 {
		return nil, nil
	}
	return &envelope.MovieResults[0], nil
}

// MovieDetails fetches the full record for one locale.
func (client *Client) MovieDetails(context context.Context, id int64, language string) (*Details, error) {
	params := url.Values{}
	params.Set("language", language)

	details := &Details{}
	if err := client.get(context, fmt.Sprintf("/movie/%d", id), params, details); err != nil {
		return nil, err
	}
	return details, nil
}

// MovieTranslations lists every localized data block known for a movie.
func (client *Client) MovieTranslations(context context.Context, id int64) ([]Translation, error) {
	var envelope translationsResponse
	if err := client.get(context, fmt.Sprintf("/movie/%d/translations", id), nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Translations, nil
}

// MovieImages fetches the poster inventory across all locales.
func (client *Client) MovieImages(context context.Context, id int64) ([]Image, error) {
	var envelope imagesResponse
	if err := client.get(context, fmt.Sprintf("/movie/%d/images", id), nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Posters, nil
}
