// Package authz decides who may act on a household and which tagged tasks a
// member is permitted to see. Every function operates on the repository set
// of one unit-of-work transaction and has no side effects beyond the rows it
// is documented to create.
package authz

import (
	"context"

	"github.com/AlyssaMarisDev/ohana-backend-sub001/internal/model"
	"github.com/AlyssaMarisDev/ohana-backend-sub001/internal/store"
)

// RequireActiveMember is the gate in front of every household-scoped
// operation. It fails with NotFound when the household does not exist, and
// with Authorization when the caller is not a member or has not yet accepted
// an invite. The two authorization cases carry distinct messages.
func RequireActiveMember(ctx context.Context, tx *store.Tx, householdID, memberID string) (*model.HouseholdMember, error) {
	h, err := tx.Households.GetByID(ctx, householdID)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, model.NotFoundf("household %s not found", householdID)
	}

	m, err := tx.Households.GetMember(ctx, householdID, memberID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, model.Authorizationf("member %s is not a member of household %s", memberID, householdID)
	}
	if !m.IsActive {
		return nil, model.Authorizationf("member %s is not an active member of household %s", memberID, householdID)
	}
	return m, nil
}

// RequireAdmin validates active membership and additionally requires the
// admin role.
func RequireAdmin(ctx context.Context, tx *store.Tx, householdID, memberID string) (*model.HouseholdMember, error) {
	m, err := RequireActiveMember(ctx, tx, householdID, memberID)
	if err != nil {
		return nil, err
	}
	if m.Role != model.RoleAdmin {
		return nil, model.Authorizationf("member %s is not an admin of household %s", memberID, householdID)
	}
	return m, nil
}

// RequireHouseholdTags checks that every tag id exists and belongs to the
// household. Referencing another household's tag is a validation failure,
// not an authorization one: the identifiers themselves are inconsistent.
func RequireHouseholdTags(ctx context.Context, tx *store.Tx, householdID string, tagIDs []string) error {
	if len(tagIDs) == 0 {
		return nil
	}
	found, err := tx.Tags.ListByIDs(ctx, tagIDs)
	if err != nil {
		return err
	}
	byID := make(map[string]model.Tag, len(found))
	for _, t := range found {
		byID[t.ID] = t
	}
	for _, id := range tagIDs {
		t, ok := byID[id]
		if !ok {
			return model.NotFoundf("tag %s not found", id)
		}
		if t.HouseholdID != householdID {
			return model.Validationf("tag %s does not belong to household %s", id, householdID)
		}
	}
	return nil
}
