package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/AlyssaMarisDev/ohana-backend-sub001/internal/model"
)

type HouseholdStore struct {
	q Querier
}

func NewHouseholdStore(q Querier) *HouseholdStore {
	return &HouseholdStore{q: q}
}

func scanHousehold(scanner interface{ Scan(...any) error }) (*model.Household, error) {
	var h model.Household
	err := scanner.Scan(&h.ID, &h.Name, &h.Description, &h.CreatedBy, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func scanHouseholdMember(scanner interface{ Scan(...any) error }) (*model.HouseholdMember, error) {
	var m model.HouseholdMember
	err := scanner.Scan(&m.ID, &m.HouseholdID, &m.MemberID, &m.Role, &m.IsActive, &m.InvitedBy, &m.JoinedAt, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

const householdCols = `id, name, description, created_by, created_at, updated_at`
const householdMemberCols = `id, household_id, member_id, role, is_active, invited_by, joined_at, created_at, updated_at`

func (s *HouseholdStore) Create(ctx context.Context, h *model.Household) (*model.Household, error) {
	_, err := s.q.ExecContext(ctx,
		`INSERT INTO households (id, name, description, created_by) VALUES (?, ?, ?, ?)`,
		h.ID, h.Name, h.Description, h.CreatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("insert household: %w", err)
	}
	return s.GetByID(ctx, h.ID)
}

func (s *HouseholdStore) GetByID(ctx context.Context, id string) (*model.Household, error) {
	row := s.q.QueryRowContext(ctx, `SELECT `+householdCols+` FROM households WHERE id = ?`, id)
	h, err := scanHousehold(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get household: %w", err)
	}
	return h, nil
}

func (s *HouseholdStore) AddMember(ctx context.Context, m *model.HouseholdMember) (*model.HouseholdMember, error) {
	_, err := s.q.ExecContext(ctx,
		`INSERT INTO household_members (id, household_id, member_id, role, is_active, invited_by, joined_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.HouseholdID, m.MemberID, m.Role, m.IsActive, m.InvitedBy, m.JoinedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("add member: %w", err)
	}
	return s.GetMemberByID(ctx, m.ID)
}

func (s *HouseholdStore) GetMember(ctx context.Context, householdID, memberID string) (*model.HouseholdMember, error) {
	row := s.q.QueryRowContext(ctx,
		`SELECT `+householdMemberCols+` FROM household_members WHERE household_id = ? AND member_id = ?`,
		householdID, memberID,
	)
	m, err := scanHouseholdMember(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get member: %w", err)
	}
	return m, nil
}

func (s *HouseholdStore) GetMemberByID(ctx context.Context, id string) (*model.HouseholdMember, error) {
	row := s.q.QueryRowContext(ctx,
		`SELECT `+householdMemberCols+` FROM household_members WHERE id = ?`, id,
	)
	m, err := scanHouseholdMember(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get member by id: %w", err)
	}
	return m, nil
}

// ActivateMember flips a membership to active and stamps joined_at. The row
// must already exist; a zero-row update is an integrity failure.
func (s *HouseholdStore) ActivateMember(ctx context.Context, householdID, memberID string, joinedAt time.Time) error {
	result, err := s.q.ExecContext(ctx,
		`UPDATE household_members SET is_active = 1, joined_at = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE household_id = ? AND member_id = ?`,
		joinedAt, householdID, memberID,
	)
	if err != nil {
		return fmt.Errorf("activate member: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("activate member rows affected: %w", err)
	}
	if n == 0 {
		return model.Storagef("activate member %s in household %s affected no rows", memberID, householdID)
	}
	return nil
}

func (s *HouseholdStore) ListMembers(ctx context.Context, householdID string) ([]model.HouseholdMember, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT `+householdMemberCols+` FROM household_members WHERE household_id = ? ORDER BY created_at ASC`,
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	var members []model.HouseholdMember
	for rows.Next() {
		m, err := scanHouseholdMember(rows)
		if err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, *m)
	}
	return members, rows.Err()
}

// ListForMember returns households the member has an active membership in.
func (s *HouseholdStore) ListForMember(ctx context.Context, memberID string) ([]model.Household, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT h.id, h.name, h.description, h.created_by, h.created_at, h.updated_at
		 FROM households h
		 JOIN household_members hm ON h.id = hm.household_id
		 WHERE hm.member_id = ? AND hm.is_active = 1
		 ORDER BY h.name ASC`,
		memberID,
	)
	if err != nil {
		return nil, fmt.Errorf("list households for member: %w", err)
	}
	defer rows.Close()

	var households []model.Household
	for rows.Next() {
		h, err := scanHousehold(rows)
		if err != nil {
			return nil, fmt.Errorf("scan household: %w", err)
		}
		households = append(households, *h)
	}
	return households, rows.Err()
}
