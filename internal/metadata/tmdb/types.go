// Copyright (c) 2026 Palmares. All rights reserved.

package tmdb

// # Wire types

// searchResponse is the envelope returned by the movie search endpoint.
type searchResponse struct {
	Page         int            `json:"page"`
	Results      []SearchResult `json:"results"`
	TotalResults int            `json:"total_results"`
}

// SearchResult is a single candidate from the search endpoint.
type SearchResult struct {
	ID               int64  `json:"id"`
	Title            string `json:"title"`
	OriginalTitle    string `json:"original_title"`
	OriginalLanguage string `json:"original_language"`
	ReleaseDate      string `json:"release_date"` // "YYYY-MM-DD", possibly empty
	PosterPath       string `json:"poster_path"`
}

// Details is the full movie record for one locale pass.
type Details struct {
	ID               int64  `json:"id"`
	IMDBID           string `json:"imdb_id"`
	Title            string `json:"title"`
	OriginalTitle    string `json:"original_title"`
	OriginalLanguage string `json:"original_language"`
	Overview         string `json:"overview"`
	PosterPath       string `json:"poster_path"`
	ReleaseDate      string `json:"release_date"`
}

// imagesResponse is the envelope returned by the movie images endpoint.
type imagesResponse struct {
	ID      int64   `json:"id"`
	Posters []Image `json:"posters"`
}

// Image is a single artwork entry with its physical dimensions.
type Image struct {
	FilePath     string  `json:"file_path"`
	Width        int     `json:"width"`
	Height       int     `json:"height"`
	LanguageCode *string `json:"iso_639_1"`
	CountryCode  *string `json:"iso_3166_1"`
	VoteAverage  float64 `json:"vote_average"`
}

// findResponse is the envelope returned by the external-id find endpoint.
type findResponse struct {
	MovieResults []SearchResult `json:"movie_results"`
}

// translationsResponse is the envelope returned by the translations
// endpoint.
type translationsResponse struct {
	ID           int64         `json:"id"`
	Translations []Translation `json:"translations"`
}

// Translation is one localized data block for a movie.
type Translation struct {
	LanguageCode string `json:"iso_639_1"`
	CountryCode  string `json:"iso_3166_1"`
	Data         struct {
		Title    string `json:"title"`
		Overview string `json:"overview"`
	} `json:"data"`
}
