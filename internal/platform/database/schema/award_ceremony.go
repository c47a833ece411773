package schema

// AwardCeremonyTable represents the 'award.ceremony' table
type AwardCeremonyTable struct {
	Table          string
	ID             string
	OrganizationID string
	Year           string
	Edition        string
	CreatedAt      string
}

// AwardCeremony is the schema definition for award.ceremony
var AwardCeremony = AwardCeremonyTable{
	Table:          "award.ceremony",
	ID:             "id",
	OrganizationID: "organizationid",
	Year:           "year",
	Edition:        "edition",
	CreatedAt:      "createdat",
}
