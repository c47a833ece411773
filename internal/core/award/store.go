// Copyright (c) 2026 Palmares. All rights reserved.

package award

import "context"

type Repository interface {
	GetOrganizationBySlug(context context.Context, slug string) (*Organization, error)
	ListCategories(context context.Context, organizationID string) ([]*Category, error)
	UpsertCeremony(context context.Context, c *Ceremony) error
	UpsertNomination(context context.Context, n *Nomination) error
	ListWinners(context context.Context, organizationID string) ([]*Winner, error)
}
