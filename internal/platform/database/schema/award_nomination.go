package schema

// AwardNominationTable represents the 'award.nomination' table
type AwardNominationTable struct {
	Table          string
	FilmID         string
	CeremonyID     string
	CategoryID     string
	IsWinner       string
	SpecialMention string
	Attribution    string
	UpdatedAt      string
}

// AwardNomination is the schema definition for award.nomination
var AwardNomination = AwardNominationTable{
	Table:          "award.nomination",
	FilmID:         "filmid",
	CeremonyID:     "ceremonyid",
	CategoryID:     "categoryid",
	IsWinner:       "iswinner",
	SpecialMention: "specialmention",
	Attribution:    "attribution",
	UpdatedAt:      "updatedat",
}
