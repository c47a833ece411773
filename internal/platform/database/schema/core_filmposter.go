package schema

// CoreFilmPosterTable represents the 'core.filmposter' table
type CoreFilmPosterTable struct {
	Table        string
	ID           string
	FilmID       string
	URL          string
	Width        string
	Height       string
	LanguageCode string
	CountryCode  string
	IsPrimary    string
	CreatedAt    string
}

// CoreFilmPoster is the schema definition for core.filmposter
var CoreFilmPoster = CoreFilmPosterTable{
	Table:        "core.filmposter",
	ID:           "id",
	FilmID:       "filmid",
	URL:          "url",
	Width:        "width",
	Height:       "height",
	LanguageCode: "languagecode",
	CountryCode:  "countrycode",
	IsPrimary:    "isprimary",
	CreatedAt:    "createdat",
}
