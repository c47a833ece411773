// Package schema centralizes table and column identifiers for every relation
// the service touches. Query builders reference these constants instead of
// string literals, so a rename is a one-file change.
package schema

// CoreFilmTable represents the 'core.film' table
type CoreFilmTable struct {
	Table          string
	ID             string
	TMDBID         string
	IMDBID         string
	OriginLanguage string
	Year           string
	CreatedAt      string
	UpdatedAt      string
}

// CoreFilm is the schema definition for core.film
var CoreFilm = CoreFilmTable{
	Table:          "core.film",
	ID:             "id",
	TMDBID:         "tmdbid",
	IMDBID:         "imdbid",
	OriginLanguage: "originlanguage",
	Year:           "year",
	CreatedAt:      "createdat",
	UpdatedAt:      "updatedat",
}
