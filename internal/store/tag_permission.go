package store

import (
	"context"
	"fmt"

	"github.com/AlyssaMarisDev/ohana-backend-sub001/internal/model"
)

type TagPermissionStore struct {
	q Querier
}

func NewTagPermissionStore(q Querier) *TagPermissionStore {
	return &TagPermissionStore{q: q}
}

func scanTagPermission(scanner interface{ Scan(...any) error }) (*model.TagPermission, error) {
	var tp model.TagPermission
	err := scanner.Scan(&tp.ID, &tp.PermissionID, &tp.TagID, &tp.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &tp, nil
}

const tagPermissionCols = `id, permission_id, tag_id, created_at`

func (s *TagPermissionStore) Create(ctx context.Context, tp *model.TagPermission) error {
	_, err := s.q.ExecContext(ctx,
		`INSERT INTO tag_permissions (id, permission_id, tag_id) VALUES (?, ?, ?)`,
		tp.ID, tp.PermissionID, tp.TagID,
	)
	if err != nil {
		return fmt.Errorf("insert tag permission: %w", err)
	}
	return nil
}

func (s *TagPermissionStore) ListByPermission(ctx context.Context, permissionID string) ([]model.TagPermission, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT `+tagPermissionCols+` FROM tag_permissions WHERE permission_id = ? ORDER BY created_at ASC`,
		permissionID,
	)
	if err != nil {
		return nil, fmt.Errorf("list tag permissions: %w", err)
	}
	defer rows.Close()

	var grants []model.TagPermission
	for rows.Next() {
		tp, err := scanTagPermission(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tag permission: %w", err)
		}
		grants = append(grants, *tp)
	}
	return grants, rows.Err()
}
