package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/AlyssaMarisDev/ohana-backend-sub001/internal/model"
)

type TaskStore struct {
	q Querier
}

func NewTaskStore(q Querier) *TaskStore {
	return &TaskStore{q: q}
}

func scanTask(scanner interface{ Scan(...any) error }) (*model.Task, error) {
	var t model.Task
	err := scanner.Scan(&t.ID, &t.Title, &t.Description, &t.DueDate, &t.Status, &t.CreatedBy, &t.HouseholdID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

const taskCols = `id, title, description, due_date, status, created_by, household_id, created_at, updated_at`

func (s *TaskStore) Create(ctx context.Context, t *model.Task) (*model.Task, error) {
	_, err := s.q.ExecContext(ctx,
		`INSERT INTO tasks (id, title, description, due_date, status, created_by, household_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.Description, t.DueDate, t.Status, t.CreatedBy, t.HouseholdID,
	)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	return s.GetByID(ctx, t.ID)
}

func (s *TaskStore) GetByID(ctx context.Context, id string) (*model.Task, error) {
	row := s.q.QueryRowContext(ctx, `SELECT `+taskCols+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

func (s *TaskStore) Update(ctx context.Context, t *model.Task) (*model.Task, error) {
	result, err := s.q.ExecContext(ctx,
		`UPDATE tasks SET title = ?, description = ?, due_date = ?, status = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		t.Title, t.Description, t.DueDate, t.Status, t.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return nil, model.Storagef("update task %s affected no rows", t.ID)
	}
	return s.GetByID(ctx, t.ID)
}

func (s *TaskStore) Delete(ctx context.Context, id string) error {
	_, err := s.q.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// ListIDsByHousehold returns all task ids for a household in creation order.
func (s *TaskStore) ListIDsByHousehold(ctx context.Context, householdID string) ([]string, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT id FROM tasks WHERE household_id = ? ORDER BY created_at ASC, id ASC`,
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("list task ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan task id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListByIDs fetches tasks for the given ids, returned in the order the ids
// were passed in.
func (s *TaskStore) ListByIDs(ctx context.Context, ids []string) ([]model.Task, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	rows, err := s.q.QueryContext(ctx,
		`SELECT `+taskCols+` FROM tasks WHERE id IN (`+placeholders(len(ids))+`)`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("list tasks by ids: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]model.Task, len(ids))
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		byID[t.ID] = *t
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	tasks := make([]model.Task, 0, len(ids))
	for _, id := range ids {
		if t, ok := byID[id]; ok {
			tasks = append(tasks, t)
		}
	}
	return tasks, nil
}

func (s *TaskStore) AddTag(ctx context.Context, taskID, tagID string) error {
	_, err := s.q.ExecContext(ctx,
		`INSERT INTO task_tags (task_id, tag_id) VALUES (?, ?)`,
		taskID, tagID,
	)
	if err != nil {
		return fmt.Errorf("add task tag: %w", err)
	}
	return nil
}

// ReplaceTags swaps a task's tag set for the given one.
func (s *TaskStore) ReplaceTags(ctx context.Context, taskID string, tagIDs []string) error {
	if _, err := s.q.ExecContext(ctx, `DELETE FROM task_tags WHERE task_id = ?`, taskID); err != nil {
		return fmt.Errorf("clear task tags: %w", err)
	}
	for _, tagID := range tagIDs {
		if err := s.AddTag(ctx, taskID, tagID); err != nil {
			return err
		}
	}
	return nil
}

// TagsForTasks returns the tag ids associated with each of the given task
// ids in one round trip. Tasks without tags have no map entry.
func (s *TaskStore) TagsForTasks(ctx context.Context, taskIDs []string) (map[string][]string, error) {
	if len(taskIDs) == 0 {
		return map[string][]string{}, nil
	}
	args := make([]any, len(taskIDs))
	for i, id := range taskIDs {
		args[i] = id
	}
	rows, err := s.q.QueryContext(ctx,
		`SELECT task_id, tag_id FROM task_tags WHERE task_id IN (`+placeholders(len(taskIDs))+`)`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("tags for tasks: %w", err)
	}
	defer rows.Close()

	tags := make(map[string][]string)
	for rows.Next() {
		var taskID, tagID string
		if err := rows.Scan(&taskID, &tagID); err != nil {
			return nil, fmt.Errorf("scan task tag: %w", err)
		}
		tags[taskID] = append(tags[taskID], tagID)
	}
	return tags, rows.Err()
}
