// Package household implements household lifecycle: creation, invitations,
// and invite acceptance. Each operation runs inside a single unit of work.
package household

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/AlyssaMarisDev/ohana-backend-sub001/internal/authz"
	"github.com/AlyssaMarisDev/ohana-backend-sub001/internal/model"
	"github.com/AlyssaMarisDev/ohana-backend-sub001/internal/store"
)

type Service struct {
	uow    *store.UnitOfWork
	logger *slog.Logger
}

func NewService(uow *store.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Create creates a household and the creator's active admin membership in the
// same transaction; a household without its initial membership is never
// observable. An empty id is replaced with a fresh one.
func (s *Service) Create(ctx context.Context, callerID, id, name, description string) (*model.Household, error) {
	if id == "" {
		id = uuid.NewString()
	}

	var created *model.Household
	err := s.uow.Run(ctx, func(tx *store.Tx) error {
		caller, err := tx.Members.GetByID(ctx, callerID)
		if err != nil {
			return err
		}
		if caller == nil {
			return model.NotFoundf("member %s not found", callerID)
		}

		h, err := tx.Households.Create(ctx, &model.Household{
			ID:          id,
			Name:        name,
			Description: description,
			CreatedBy:   callerID,
		})
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		_, err = tx.Households.AddMember(ctx, &model.HouseholdMember{
			ID:          uuid.NewString(),
			HouseholdID: h.ID,
			MemberID:    callerID,
			Role:        model.RoleAdmin,
			IsActive:    true,
			InvitedBy:   callerID,
			JoinedAt:    &now,
		})
		if err != nil {
			return err
		}

		created = h
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("household created", "household_id", created.ID, "created_by", callerID)
	return created, nil
}

// Invite creates an inactive membership for the target member. Only an
// active admin may invite, and a member can hold at most one membership per
// household regardless of its state.
func (s *Service) Invite(ctx context.Context, callerID, householdID, targetMemberID string, role model.Role) (*model.HouseholdMember, error) {
	var invited *model.HouseholdMember
	err := s.uow.Run(ctx, func(tx *store.Tx) error {
		if _, err := authz.RequireAdmin(ctx, tx, householdID, callerID); err != nil {
			return err
		}

		target, err := tx.Members.GetByID(ctx, targetMemberID)
		if err != nil {
			return err
		}
		if target == nil {
			return model.NotFoundf("member %s not found", targetMemberID)
		}

		existing, err := tx.Households.GetMember(ctx, householdID, targetMemberID)
		if err != nil {
			return err
		}
		if existing != nil {
			return model.Conflictf("member %s already belongs to household %s", targetMemberID, householdID)
		}

		invited, err = tx.Households.AddMember(ctx, &model.HouseholdMember{
			ID:          uuid.NewString(),
			HouseholdID: householdID,
			MemberID:    targetMemberID,
			Role:        role,
			IsActive:    false,
			InvitedBy:   callerID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("member invited", "household_id", householdID, "member_id", targetMemberID, "invited_by", callerID)
	return invited, nil
}

// AcceptInvite activates the caller's membership and stamps joined_at. A
// member with no membership row cannot self-activate. Re-accepting an already
// active membership re-stamps joined_at; there is no guard against it.
func (s *Service) AcceptInvite(ctx context.Context, memberID, householdID string) (*model.HouseholdMember, error) {
	var accepted *model.HouseholdMember
	err := s.uow.Run(ctx, func(tx *store.Tx) error {
		h, err := tx.Households.GetByID(ctx, householdID)
		if err != nil {
			return err
		}
		if h == nil {
			return model.NotFoundf("household %s not found", householdID)
		}

		m, err := tx.Households.GetMember(ctx, householdID, memberID)
		if err != nil {
			return err
		}
		if m == nil {
			return model.Authorizationf("member %s was not invited to household %s", memberID, householdID)
		}

		if err := tx.Households.ActivateMember(ctx, householdID, memberID, time.Now().UTC()); err != nil {
			return err
		}

		accepted, err = tx.Households.GetMember(ctx, householdID, memberID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("invite accepted", "household_id", householdID, "member_id", memberID)
	return accepted, nil
}

// Get returns a household the caller is an active member of.
func (s *Service) Get(ctx context.Context, callerID, householdID string) (*model.Household, error) {
	var h *model.Household
	err := s.uow.Run(ctx, func(tx *store.Tx) error {
		if _, err := authz.RequireActiveMember(ctx, tx, householdID, callerID); err != nil {
			return err
		}
		var err error
		h, err = tx.Households.GetByID(ctx, householdID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return h, nil
}

// ListForMember returns the households the member is an active member of.
func (s *Service) ListForMember(ctx context.Context, memberID string) ([]model.Household, error) {
	var households []model.Household
	err := s.uow.Run(ctx, func(tx *store.Tx) error {
		var err error
		households, err = tx.Households.ListForMember(ctx, memberID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return households, nil
}

// ListMembers returns all membership rows of a household, invited and active
// alike, for a caller who is an active member.
func (s *Service) ListMembers(ctx context.Context, callerID, householdID string) ([]model.HouseholdMember, error) {
	var members []model.HouseholdMember
	err := s.uow.Run(ctx, func(tx *store.Tx) error {
		if _, err := authz.RequireActiveMember(ctx, tx, householdID, callerID); err != nil {
			return err
		}
		var err error
		members, err = tx.Households.ListMembers(ctx, householdID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return members, nil
}
