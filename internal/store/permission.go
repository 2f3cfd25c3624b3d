package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/AlyssaMarisDev/ohana-backend-sub001/internal/model"
)

type PermissionStore struct {
	q Querier
}

func NewPermissionStore(q Querier) *PermissionStore {
	return &PermissionStore{q: q}
}

func scanPermission(scanner interface{ Scan(...any) error }) (*model.Permission, error) {
	var p model.Permission
	err := scanner.Scan(&p.ID, &p.HouseholdMemberID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

const permissionCols = `id, household_member_id, created_at, updated_at`

func (s *PermissionStore) Create(ctx context.Context, p *model.Permission) (*model.Permission, error) {
	_, err := s.q.ExecContext(ctx,
		`INSERT INTO permissions (id, household_member_id) VALUES (?, ?)`,
		p.ID, p.HouseholdMemberID,
	)
	if err != nil {
		return nil, fmt.Errorf("insert permission: %w", err)
	}
	return s.GetByID(ctx, p.ID)
}

func (s *PermissionStore) GetByID(ctx context.Context, id string) (*model.Permission, error) {
	row := s.q.QueryRowContext(ctx, `SELECT `+permissionCols+` FROM permissions WHERE id = ?`, id)
	p, err := scanPermission(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get permission: %w", err)
	}
	return p, nil
}

func (s *PermissionStore) GetByHouseholdMember(ctx context.Context, householdMemberID string) (*model.Permission, error) {
	row := s.q.QueryRowContext(ctx,
		`SELECT `+permissionCols+` FROM permissions WHERE household_member_id = ?`,
		householdMemberID,
	)
	p, err := scanPermission(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get permission by household member: %w", err)
	}
	return p, nil
}
