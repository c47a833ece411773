package schema

// AwardOrganizationTable represents the 'award.organization' table
type AwardOrganizationTable struct {
	Table        string
	ID           string
	Name         string
	Slug         string
	FoundingYear string
	PageSlug     string
	CreatedAt    string
}

// AwardOrganization is the schema definition for award.organization
var AwardOrganization = AwardOrganizationTable{
	Table:        "award.organization",
	ID:           "id",
	Name:         "name",
	Slug:         "slug",
	FoundingYear: "foundingyear",
	PageSlug:     "pageslug",
	CreatedAt:    "createdat",
}
