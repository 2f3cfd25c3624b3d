package authz

import (
	"context"

	"github.com/google/uuid"

	"github.com/AlyssaMarisDev/ohana-backend-sub001/internal/model"
	"github.com/AlyssaMarisDev/ohana-backend-sub001/internal/store"
)

// CreatePermissionWithTags creates the Permission record for a household
// member along with one TagPermission row per distinct tag id. Intended for a
// member with no prior Permission record.
func CreatePermissionWithTags(ctx context.Context, tx *store.Tx, householdMemberID string, tagIDs []string) (*model.Permission, error) {
	perm, err := tx.Permissions.Create(ctx, &model.Permission{
		ID:                uuid.NewString(),
		HouseholdMemberID: householdMemberID,
	})
	if err != nil {
		return nil, err
	}

	for _, tagID := range dedupe(tagIDs) {
		grant := &model.TagPermission{
			ID:           uuid.NewString(),
			PermissionID: perm.ID,
			TagID:        tagID,
		}
		if err := tx.TagPermissions.Create(ctx, grant); err != nil {
			return nil, err
		}
	}
	return perm, nil
}

// GrantTagPermissions adds tag grants to an existing Permission record.
// Grants are additive and idempotent per tag id: tags already granted are
// skipped, never duplicated.
func GrantTagPermissions(ctx context.Context, tx *store.Tx, householdMemberID string, tagIDs []string) error {
	perm, err := tx.Permissions.GetByHouseholdMember(ctx, householdMemberID)
	if err != nil {
		return err
	}
	if perm == nil {
		return model.NotFoundf("no permission record for household member %s", householdMemberID)
	}

	existing, err := tx.TagPermissions.ListByPermission(ctx, perm.ID)
	if err != nil {
		return err
	}
	granted := make(map[string]struct{}, len(existing))
	for _, tp := range existing {
		granted[tp.TagID] = struct{}{}
	}

	for _, tagID := range dedupe(tagIDs) {
		if _, ok := granted[tagID]; ok {
			continue
		}
		grant := &model.TagPermission{
			ID:           uuid.NewString(),
			PermissionID: perm.ID,
			TagID:        tagID,
		}
		if err := tx.TagPermissions.Create(ctx, grant); err != nil {
			return err
		}
	}
	return nil
}

// FilterTasksByTagPermissions returns the subset of taskIDs the household
// member may see, preserving the input order. A task with no tags is visible
// to every active member, Permission record or not. A tagged task is visible
// iff at least one of its tags is in the member's viewable set.
func FilterTasksByTagPermissions(ctx context.Context, tx *store.Tx, householdMemberID string, taskIDs []string) ([]string, error) {
	if len(taskIDs) == 0 {
		return nil, nil
	}

	viewable, hasPermission, err := viewableTagIDs(ctx, tx, householdMemberID)
	if err != nil {
		return nil, err
	}

	tagsByTask, err := tx.Tasks.TagsForTasks(ctx, taskIDs)
	if err != nil {
		return nil, err
	}

	visible := make([]string, 0, len(taskIDs))
	for _, taskID := range taskIDs {
		tags := tagsByTask[taskID]
		if len(tags) == 0 {
			visible = append(visible, taskID)
			continue
		}
		if !hasPermission {
			continue
		}
		for _, tagID := range tags {
			if _, ok := viewable[tagID]; ok {
				visible = append(visible, taskID)
				break
			}
		}
	}
	return visible, nil
}

// ViewableTags returns the Tag entities the household member has been granted
// visibility of. A member without a Permission record can see no tags.
func ViewableTags(ctx context.Context, tx *store.Tx, householdMemberID string) ([]model.Tag, error) {
	viewable, hasPermission, err := viewableTagIDs(ctx, tx, householdMemberID)
	if err != nil {
		return nil, err
	}
	if !hasPermission || len(viewable) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(viewable))
	for id := range viewable {
		ids = append(ids, id)
	}
	return tx.Tags.ListByIDs(ctx, ids)
}

func viewableTagIDs(ctx context.Context, tx *store.Tx, householdMemberID string) (map[string]struct{}, bool, error) {
	perm, err := tx.Permissions.GetByHouseholdMember(ctx, householdMemberID)
	if err != nil {
		return nil, false, err
	}
	if perm == nil {
		return nil, false, nil
	}

	grants, err := tx.TagPermissions.ListByPermission(ctx, perm.ID)
	if err != nil {
		return nil, false, err
	}
	viewable := make(map[string]struct{}, len(grants))
	for _, tp := range grants {
		viewable[tp.TagID] = struct{}{}
	}
	return viewable, true, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
