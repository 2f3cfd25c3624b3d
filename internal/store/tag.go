package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/AlyssaMarisDev/ohana-backend-sub001/internal/model"
)

type TagStore struct {
	q Querier
}

func NewTagStore(q Querier) *TagStore {
	return &TagStore{q: q}
}

func scanTag(scanner interface{ Scan(...any) error }) (*model.Tag, error) {
	var t model.Tag
	err := scanner.Scan(&t.ID, &t.HouseholdID, &t.Name, &t.Color, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

const tagCols = `id, household_id, name, color, created_at, updated_at`

// placeholders returns "?, ?, ..., ?" for building IN clauses.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func (s *TagStore) Create(ctx context.Context, t *model.Tag) (*model.Tag, error) {
	_, err := s.q.ExecContext(ctx,
		`INSERT INTO tags (id, household_id, name, color) VALUES (?, ?, ?, ?)`,
		t.ID, t.HouseholdID, t.Name, t.Color,
	)
	if err != nil {
		return nil, fmt.Errorf("insert tag: %w", err)
	}
	return s.GetByID(ctx, t.ID)
}

func (s *TagStore) GetByID(ctx context.Context, id string) (*model.Tag, error) {
	row := s.q.QueryRowContext(ctx, `SELECT `+tagCols+` FROM tags WHERE id = ?`, id)
	t, err := scanTag(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get tag: %w", err)
	}
	return t, nil
}

func (s *TagStore) ListByHousehold(ctx context.Context, householdID string) ([]model.Tag, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT `+tagCols+` FROM tags WHERE household_id = ? ORDER BY name ASC`,
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()
	return collectTags(rows)
}

func (s *TagStore) ListByIDs(ctx context.Context, ids []string) ([]model.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	rows, err := s.q.QueryContext(ctx,
		`SELECT `+tagCols+` FROM tags WHERE id IN (`+placeholders(len(ids))+`) ORDER BY name ASC`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("list tags by ids: %w", err)
	}
	defer rows.Close()
	return collectTags(rows)
}

func collectTags(rows *sql.Rows) ([]model.Tag, error) {
	var tags []model.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, *t)
	}
	return tags, rows.Err()
}
