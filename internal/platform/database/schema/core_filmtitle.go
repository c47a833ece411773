package schema

// CoreFilmTitleTable represents the 'core.filmtitle' table
type CoreFilmTitleTable struct {
	Table        string
	FilmID       string
	Kind         string
	LanguageCode string
	Content      string
	IsDefault    string
}

// CoreFilmTitle is the schema definition for core.filmtitle
var CoreFilmTitle = CoreFilmTitleTable{
	Table:        "core.filmtitle",
	FilmID:       "filmid",
	Kind:         "kind",
	LanguageCode: "languagecode",
	Content:      "content",
	IsDefault:    "isdefault",
}
