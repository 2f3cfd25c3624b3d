package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/AlyssaMarisDev/ohana-backend-sub001/internal/model"
)

type MemberStore struct {
	q Querier
}

func NewMemberStore(q Querier) *MemberStore {
	return &MemberStore{q: q}
}

func scanMember(scanner interface{ Scan(...any) error }) (*model.Member, error) {
	var m model.Member
	err := scanner.Scan(&m.ID, &m.Name, &m.Email, &m.Age, &m.Gender, &m.PasswordHash, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

const memberCols = `id, name, email, age, gender, password_hash, created_at, updated_at`

func (s *MemberStore) Create(ctx context.Context, m *model.Member) (*model.Member, error) {
	_, err := s.q.ExecContext(ctx,
		`INSERT INTO members (id, name, email, age, gender, password_hash) VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID, m.Name, m.Email, m.Age, m.Gender, m.PasswordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("insert member: %w", err)
	}
	return s.GetByID(ctx, m.ID)
}

func (s *MemberStore) GetByID(ctx context.Context, id string) (*model.Member, error) {
	row := s.q.QueryRowContext(ctx, `SELECT `+memberCols+` FROM members WHERE id = ?`, id)
	m, err := scanMember(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get member: %w", err)
	}
	return m, nil
}

func (s *MemberStore) GetByEmail(ctx context.Context, email string) (*model.Member, error) {
	row := s.q.QueryRowContext(ctx, `SELECT `+memberCols+` FROM members WHERE email = ?`, email)
	m, err := scanMember(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get member by email: %w", err)
	}
	return m, nil
}

func (s *MemberStore) Update(ctx context.Context, id, name string, age *int, gender *string) (*model.Member, error) {
	result, err := s.q.ExecContext(ctx,
		`UPDATE members SET name = ?, age = ?, gender = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		name, age, gender, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update member: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return nil, model.Storagef("update member %s affected no rows", id)
	}
	return s.GetByID(ctx, id)
}
