package schema

// AwardCategoryTable represents the 'award.category' table
type AwardCategoryTable struct {
	Table          string
	ID             string
	OrganizationID string
	Name           string
	Slug           string
	CreatedAt      string
}

// AwardCategory is the schema definition for award.category
var AwardCategory = AwardCategoryTable{
	Table:          "award.category",
	ID:             "id",
	OrganizationID: "organizationid",
	Name:           "name",
	Slug:           "slug",
	CreatedAt:      "createdat",
}
