// Package task implements shared-task management with tag-based visibility
// scoping. Reads never return a task the caller has not been granted sight
// of, and list results keep stable ordering through the permission filter.
package task

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

type CreateParams struct {
	ID          string
	Title       string
	Description string
	DueDate     *time.Time
	Status      model.TaskStatus
	TagIDs      []string
}

type UpdateParams struct {
	Title       string
	Description string
	DueDate     *time.Time
	Status      model.TaskStatus
	TagIDs      []string
}

// Create adds a task to a household the caller is an active member of. All
// tags must belong to the same household.
func (s *Service) Create(ctx context.Context, callerID, householdID string, p CreateParams) (*model.Task, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = model.TaskPending
	}

	var created *model.Task
	err := s.uow.Run(ctx, func(tx *store.Tx) error {
		if _, err := authz.RequireActiveMember(ctx, tx, householdID, callerID); err != nil {
			return err
		}
		if err := authz.RequireHouseholdTags(ctx, tx, householdID, p.TagIDs); err != nil {
			return err
		}

		t, err := tx.Tasks.Create(ctx, &model.Task{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			DueDate:     p.DueDate,
			Status:      p.Status,
			CreatedBy:   callerID,
			HouseholdID: householdID,
		})
		if err != nil {
			return err
		}
		for _, tagID := range p.TagIDs {
			if err := tx.Tasks.AddTag(ctx, t.ID, tagID); err != nil {
				return err
			}
		}

		t.TagIDs = p.TagIDs
		created = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("task created", "task_id", created.ID, "household_id", householdID, "created_by", callerID)
	return created, nil
}

// ListVisible returns the household's tasks the caller may see, in creation
// order. The permission filter is a stable subsequence filter, so ordering
// survives it.
func (s *Service) ListVisible(ctx context.Context, callerID, householdID string) ([]model.Task, error) {
	var tasks []model.Task
	err := s.uow.Run(ctx, func(tx *store.Tx) error {
		hm, err := authz.RequireActiveMember(ctx, tx, householdID, callerID)
		if err != nil {
			return err
		}

		ids, err := tx.Tasks.ListIDsByHousehold(ctx, householdID)
		if err != nil {
			return err
		}
		visible, err := authz.FilterTasksByTagPermissions(ctx, tx, hm.ID, ids)
		if err != nil {
			return err
		}

		tasks, err = tx.Tasks.ListByIDs(ctx, visible)
		if err != nil {
			return err
		}
		return attachTags(ctx, tx, tasks)
	})
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// Get returns one task, provided the caller is an active member of its
// household and the task passes the caller's tag-permission filter.
func (s *Service) Get(ctx context.Context, callerID, taskID string) (*model.Task, error) {
	var found *model.Task
	err := s.uow.Run(ctx, func(tx *store.Tx) error {
		t, err := s.visibleTask(ctx, tx, callerID, taskID)
		if err != nil {
			return err
		}
		found = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// Update rewrites a task's fields, and its tag set when TagIDs is non-nil.
// The caller must be able to see the task before touching it.
func (s *Service) Update(ctx context.Context, callerID, taskID string, p UpdateParams) (*model.Task, error) {
	var updated *model.Task
	err := s.uow.Run(ctx, func(tx *store.Tx) error {
		t, err := s.visibleTask(ctx, tx, callerID, taskID)
		if err != nil {
			return err
		}

		t.Title = p.Title
		t.Description = p.Description
		t.DueDate = p.DueDate
		t.Status = p.Status
		updated, err = tx.Tasks.Update(ctx, t)
		if err != nil {
			return err
		}

		if p.TagIDs != nil {
			if err := authz.RequireHouseholdTags(ctx, tx, t.HouseholdID, p.TagIDs); err != nil {
				return err
			}
			if err := tx.Tasks.ReplaceTags(ctx, taskID, p.TagIDs); err != nil {
				return err
			}
		}
		return attachTagsOne(ctx, tx, updated)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a task the caller can see.
func (s *Service) Delete(ctx context.Context, callerID, taskID string) error {
	return s.uow.Run(ctx, func(tx *store.Tx) error {
		if _, err := s.visibleTask(ctx, tx, callerID, taskID); err != nil {
			return err
		}
		return tx.Tasks.Delete(ctx, taskID)
	})
}

// visibleTask loads a task and enforces membership plus tag visibility on it.
func (s *Service) visibleTask(ctx context.Context, tx *store.Tx, callerID, taskID string) (*model.Task, error) {
	t, err := tx.Tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, model.NotFoundf("task %s not found", taskID)
	}

	hm, err := authz.RequireActiveMember(ctx, tx, t.HouseholdID, callerID)
	if err != nil {
		return nil, err
	}

	visible, err := authz.FilterTasksByTagPermissions(ctx, tx, hm.ID, []string{taskID})
	if err != nil {
		return nil, err
	}
	if len(visible) == 0 {
		return nil, model.Authorizationf("member %s may not view task %s", callerID, taskID)
	}

	if err := attachTagsOne(ctx, tx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func attachTags(ctx context.Context, tx *store.Tx, tasks []model.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	tagsByTask, err := tx.Tasks.TagsForTasks(ctx, ids)
	if err != nil {
		return err
	}
	for i := range tasks {
		tasks[i].TagIDs = tagsByTask[tasks[i].ID]
	}
	return nil
}

func attachTagsOne(ctx context.Context, tx *store.Tx, t *model.Task) error {
	tagsByTask, err := tx.Tasks.TagsForTasks(ctx, []string{t.ID})
	if err != nil {
		return err
	}
	t.TagIDs = tagsByTask[t.ID]
	return nil
}
