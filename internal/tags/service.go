// Package tags implements tag management and per-member tag visibility
// grants.
package tags

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/AlyssaMarisDev/ohana-backend-sub001/internal/authz"
	"github.com/AlyssaMarisDev/ohana-backend-sub001/internal/model"
	"github.com/AlyssaMarisDev/ohana-backend-sub001/internal/store"
)

const defaultColor = "#3B82F6"

type Service struct {
	uow    *store.UnitOfWork
	logger *slog.Logger
}

func NewService(uow *store.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Create adds a tag to a household. Any active member may create tags;
// visibility of them is governed separately by grants.
func (s *Service) Create(ctx context.Context, callerID, householdID, id, name, color string) (*model.Tag, error) {
	if id == "" {
		id = uuid.NewString()
	}
	if color == "" {
		color = defaultColor
	}

	var created *model.Tag
	err := s.uow.Run(ctx, func(tx *store.Tx) error {
		if _, err := authz.RequireActiveMember(ctx, tx, householdID, callerID); err != nil {
			return err
		}
		var err error
		created, err = tx.Tags.Create(ctx, &model.Tag{
			ID:          id,
			HouseholdID: householdID,
			Name:        name,
			Color:       color,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ListViewable returns the tags the caller has been granted visibility of in
// the household. A member without any grants sees an empty list.
func (s *Service) ListViewable(ctx context.Context, callerID, householdID string) ([]model.Tag, error) {
	var viewable []model.Tag
	err := s.uow.Run(ctx, func(tx *store.Tx) error {
		hm, err := authz.RequireActiveMember(ctx, tx, householdID, callerID)
		if err != nil {
			return err
		}
		viewable, err = authz.ViewableTags(ctx, tx, hm.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return viewable, nil
}

// Grant gives the target member visibility of the listed tags. Only an
// active admin may grant. The first grant for a member creates their
// Permission record; later grants augment it additively.
func (s *Service) Grant(ctx context.Context, callerID, householdID, targetMemberID string, tagIDs []string) error {
	err := s.uow.Run(ctx, func(tx *store.Tx) error {
		if _, err := authz.RequireAdmin(ctx, tx, householdID, callerID); err != nil {
			return err
		}

		target, err := tx.Households.GetMember(ctx, householdID, targetMemberID)
		if err != nil {
			return err
		}
		if target == nil {
			return model.NotFoundf("member %s is not a member of household %s", targetMemberID, householdID)
		}

		if err := authz.RequireHouseholdTags(ctx, tx, householdID, tagIDs); err != nil {
			return err
		}

		perm, err := tx.Permissions.GetByHouseholdMember(ctx, target.ID)
		if err != nil {
			return err
		}
		if perm == nil {
			_, err = authz.CreatePermissionWithTags(ctx, tx, target.ID, tagIDs)
			return err
		}
		return authz.GrantTagPermissions(ctx, tx, target.ID, tagIDs)
	})
	if err != nil {
		return err
	}

	s.logger.Info("tag permissions granted", "household_id", householdID, "member_id", targetMemberID, "tags", len(tagIDs))
	return nil
}
