// Copyright (c) 2026 Palmares. All rights reserved.

package tmdb_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openscreen/palmares/internal/metadata/tmdb"
)

// newMetadataServer fakes the metadata REST surface with canned responses
// keyed by path.
func newMetadataServer(t *testing.T, responses map[string]any) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		// Every call must be authenticated
		require.Equal(t, "test-key", request.URL.Query().Get("api_key"))

		key := request.URL.Path
		if request.URL.Path == "/search/movie" && request.URL.Query().Get("year") != "" {
			key = "/search/movie:year"
		}

		payload, ok := responses[key]
		if !ok {
			http.NotFound(writer, request)
			return
		}

		writer.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(writer).Encode(payload))
	}))
}

func newResolver(serverURL string) *tmdb.Resolver {
	client := tmdb.NewClient(serverURL, "test-key")
	logger := slog.New(slog.DiscardHandler)
	return tmdb.NewResolver(client, "en-US", "fr-FR", logger)
}

/*
TestResolver_PrimarySearch verifies the happy path: a year-constrained hit
within the ±1 window, enriched by both locale passes and the poster fetch.
*/
func TestResolver_PrimarySearch(t *testing.T) {
	server := newMetadataServer(t, map[string]any{
		"/search/movie:year": map[string]any{
			"results": []map[string]any{
				{"id": 238, "title": "The Godfather", "original_language": "en", "release_date": "1972-03-14"},
			},
		},
		"/movie/238": map[string]any{
			"id": 238, "imdb_id": "tt0068646", "title": "The Godfather",
			"original_language": "en", "poster_path": "/godfather.jpg",
			"overview": "The aging patriarch of an organized crime dynasty.",
		},
		"/movie/238/images": map[string]any{
			"id": 238,
			"posters": []map[string]any{
				{"file_path": "/godfather.jpg", "width": 2000, "height": 3000, "iso_639_1": "en"},
			},
		},
	})
	defer server.Close()

	resolution, err := newResolver(server.URL).Resolve(context.Background(), "The Godfather", 1972)
	require.NoError(t, err)
	require.NotNil(t, resolution)

	assert.Equal(t, int64(238), resolution.TMDBID)
	assert.Equal(t, "The Godfather", resolution.CanonicalTitle)
	require.NotNil(t, resolution.IMDBID)
	assert.Equal(t, "tt0068646", *resolution.IMDBID)
	require.NotNil(t, resolution.PosterURL)
	assert.Contains(t, *resolution.PosterURL, "/godfather.jpg")
	require.Len(t, resolution.Posters, 1)
	assert.Equal(t, 2000, resolution.Posters[0].Width)

	// Both locale passes returned the same title, so no localized variant
	// is recorded.
	assert.Nil(t, resolution.LocalizedTitle)
}

/*
TestResolver_YearlessFallback verifies that an empty year-constrained search
falls back to a year-less pass with a widened ±2 acceptance window ranked by
year distance.
*/
func TestResolver_YearlessFallback(t *testing.T) {
	server := newMetadataServer(t, map[string]any{
		// The year-constrained pass finds nothing
		"/search/movie:year": map[string]any{"results": []map[string]any{}},
		"/search/movie": map[string]any{
			"results": []map[string]any{
				{"id": 901, "title": "Cabaret", "release_date": "1965-01-01"},  // too far
				{"id": 902, "title": "Cabaret", "release_date": "1974-06-01"},  // distance 2
				{"id": 903, "title": "Cabaret", "release_date": "1971-02-13"},  // distance 1, wins
			},
		},
		"/movie/903":        map[string]any{"id": 903, "title": "Cabaret"},
		"/movie/903/images": map[string]any{"id": 903, "posters": []map[string]any{}},
	})
	defer server.Close()

	resolution, err := newResolver(server.URL).Resolve(context.Background(), "Cabaret", 1972)
	require.NoError(t, err)
	require.NotNil(t, resolution)
	assert.Equal(t, int64(903), resolution.TMDBID)
}

/*
TestResolver_LocalizedTitle verifies the secondary-locale title is kept only
when it differs from the canonical title.
*/
func TestResolver_LocalizedTitle(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		switch request.URL.Path {
		case "/search/movie":
			_ = json.NewEncoder(writer).Encode(map[string]any{
				"results": []map[string]any{
					{"id": 335, "title": "The Leopard", "release_date": "1963-03-27"},
				},
			})
		case "/movie/335":
			calls++
			title := "The Leopard"
			if request.URL.Query().Get("language") == "fr-FR" {
				title = "Le Guépard"
			}
			_ = json.NewEncoder(writer).Encode(map[string]any{"id": 335, "title": title})
		case "/movie/335/images":
			_ = json.NewEncoder(writer).Encode(map[string]any{"id": 335, "posters": []map[string]any{}})
		default:
			http.NotFound(writer, request)
		}
	}))
	defer server.Close()

	resolution, err := newResolver(server.URL).Resolve(context.Background(), "The Leopard", 1963)
	require.NoError(t, err)
	require.NotNil(t, resolution)

	assert.Equal(t, 2, calls)
	require.NotNil(t, resolution.LocalizedTitle)
	assert.Equal(t, "Le Guépard", *resolution.LocalizedTitle)
}

/*
TestResolver_DirectIdentifier verifies resolution through an extracted
IMDb identifier: no title search happens, and an unknown identifier
degrades to a nil resolution so the caller can fall back.
*/
func TestResolver_DirectIdentifier(t *testing.T) {
	t.Run("known identifier", func(t *testing.T) {
		server := newMetadataServer(t, map[string]any{
			"/find/tt0047296": map[string]any{
				"movie_results": []map[string]any{
					{"id": 654, "title": "On the Waterfront", "original_language": "en", "release_date": "1954-06-22"},
				},
			},
			"/movie/654":        map[string]any{"id": 654, "title": "On the Waterfront", "imdb_id": "tt0047296"},
			"/movie/654/images": map[string]any{"id": 654, "posters": []map[string]any{}},
		})
		defer server.Close()

		resolution, err := newResolver(server.URL).ResolveByIMDBID(context.Background(), "tt0047296")
		require.NoError(t, err)
		require.NotNil(t, resolution)
		assert.Equal(t, int64(654), resolution.TMDBID)
		assert.Equal(t, "On the Waterfront", resolution.CanonicalTitle)
	})

	t.Run("unknown identifier degrades", func(t *testing.T) {
		server := newMetadataServer(t, map[string]any{
			"/find/tt9999999": map[string]any{"movie_results": []map[string]any{}},
		})
		defer server.Close()

		resolution, err := newResolver(server.URL).ResolveByIMDBID(context.Background(), "tt9999999")
		require.NoError(t, err)
		assert.Nil(t, resolution)
	})
}

/*
TestResolver_TranslationsFallback verifies the translations inventory is
consulted when the secondary-locale details pass yields nothing distinct.
*/
func TestResolver_TranslationsFallback(t *testing.T) {
	server := newMetadataServer(t, map[string]any{
		"/search/movie:year": map[string]any{
			"results": []map[string]any{
				{"id": 598, "title": "City of God", "release_date": "2002-08-30"},
			},
		},
		// Both locale passes return the canonical title
		"/movie/598": map[string]any{"id": 598, "title": "City of God"},
		"/movie/598/translations": map[string]any{
			"id": 598,
			"translations": []map[string]any{
				{"iso_639_1": "pt", "iso_3166_1": "BR", "data": map[string]any{"title": "Cidade de Deus"}},
				{"iso_639_1": "fr", "iso_3166_1": "FR", "data": map[string]any{"title": "La Cité de Dieu"}},
			},
		},
		"/movie/598/images": map[string]any{"id": 598, "posters": []map[string]any{}},
	})
	defer server.Close()

	resolution, err := newResolver(server.URL).Resolve(context.Background(), "City of God", 2002)
	require.NoError(t, err)
	require.NotNil(t, resolution)

	require.NotNil(t, resolution.LocalizedTitle)
	assert.Equal(t, "La Cité de Dieu", *resolution.LocalizedTitle)
}

/*
TestResolver_Unavailable verifies graceful degradation: no acceptable
candidate, or a failing service, yields a nil resolution with no error.
*/
func TestResolver_Unavailable(t *testing.T) {
	t.Run("no candidates in window", func(t *testing.T) {
		server := newMetadataServer(t, map[string]any{
			"/search/movie:year": map[string]any{"results": []map[string]any{}},
			"/search/movie": map[string]any{
				"results": []map[string]any{
					// 1925 is outside even the widened window for 1972
					{"id": 1, "title": "Wings", "release_date": "1925-01-01"},
				},
			},
		})
		defer server.Close()

		resolution, err := newResolver(server.URL).Resolve(context.Background(), "Wings", 1972)
		require.NoError(t, err)
		assert.Nil(t, resolution)
	})

	t.Run("service down", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
			http.Error(writer, "upstream exploded", http.StatusBadGateway)
		}))
		defer server.Close()

		resolution, err := newResolver(server.URL).Resolve(context.Background(), "Anything", 2000)
		require.NoError(t, err)
		assert.Nil(t, resolution)
	})
}

/*
TestResolver_PartialEnrichment verifies that a failing details endpoint does
not discard the identifier obtained from the search pass.
*/
func TestResolver_PartialEnrichment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path == "/search/movie" {
			writer.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(writer).Encode(map[string]any{
				"results": []map[string]any{
					{"id": 77, "title": "Marty", "release_date": "1955-04-11"},
				},
			})
			return
		}
		http.Error(writer, "internal error", http.StatusInternalServerError)
	}))
	defer server.Close()

	resolution, err := newResolver(server.URL).Resolve(context.Background(), "Marty", 1955)
	require.NoError(t, err)
	require.NotNil(t, resolution)
	assert.Equal(t, int64(77), resolution.TMDBID)
	assert.Equal(t, "Marty", resolution.CanonicalTitle)
	assert.Nil(t, resolution.IMDBID)
	assert.Empty(t, resolution.Posters)
}
