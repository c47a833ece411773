package schema

// CoreFilmSourceTable represents the 'core.filmsource' table
type CoreFilmSourceTable struct {
	Table        string
	FilmID       string
	SourceType   string
	LanguageCode string
	URL          string
	IsPrimary    string
	UpdatedAt    string
}

// CoreFilmSource is the schema definition for core.filmsource
var CoreFilmSource = CoreFilmSourceTable{
	Table:        "core.filmsource",
	FilmID:       "filmid",
	SourceType:   "sourcetype",
	LanguageCode: "languagecode",
	URL:          "url",
	IsPrimary:    "isprimary",
	UpdatedAt:    "updatedat",
}
