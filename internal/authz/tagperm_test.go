package authz

import (
	"context"
	"testing"

	"github.com/AlyssaMarisDev/ohana-backend-sub001/internal/model"
	"github.com/AlyssaMarisDev/ohana-backend-sub001/internal/store"
)

func TestCreatePermissionWithTags(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.run(t, func(tx *store.Tx) error {
		perm, err := CreatePermissionWithTags(ctx, tx, f.memberHM, []string{"tag-1", "tag-2", "tag-1"})
		if err != nil {
			t.Fatalf("create permission: %v", err)
		}

		grants, err := tx.TagPermissions.ListByPermission(ctx, perm.ID)
		if err != nil {
			t.Fatalf("list grants: %v", err)
		}
		// Duplicate input collapses to one grant per tag.
		if len(grants) != 2 {
			t.Fatalf("got %d grants, want 2", len(grants))
		}
		return nil
	})
}

func TestGrantTagPermissionsIsAdditiveAndIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.run(t, func(tx *store.Tx) error {
		perm, err := CreatePermissionWithTags(ctx, tx, f.memberHM, []string{"tag-1"})
		if err != nil {
			t.Fatalf("create permission: %v", err)
		}

		// Granting tag-1 again plus tag-2 adds only tag-2.
		if err := GrantTagPermissions(ctx, tx, f.memberHM, []string{"tag-1", "tag-2"}); err != nil {
			t.Fatalf("grant: %v", err)
		}
		grants, err := tx.TagPermissions.ListByPermission(ctx, perm.ID)
		if err != nil {
			t.Fatalf("list grants: %v", err)
		}
		if len(grants) != 2 {
			t.Fatalf("got %d grants, want 2", len(grants))
		}

		// A repeat of the identical grant changes nothing.
		if err := GrantTagPermissions(ctx, tx, f.memberHM, []string{"tag-1", "tag-2"}); err != nil {
			t.Fatalf("repeat grant: %v", err)
		}
		grants, err = tx.TagPermissions.ListByPermission(ctx, perm.ID)
		if err != nil {
			t.Fatalf("list grants: %v", err)
		}
		if len(grants) != 2 {
			t.Fatalf("after repeat: got %d grants, want 2", len(grants))
		}
		return nil
	})
}

func TestGrantTagPermissionsWithoutPermissionRecord(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.run(t, func(tx *store.Tx) error {
		err := GrantTagPermissions(ctx, tx, f.memberHM, []string{"tag-1"})
		if model.KindOf(err) != model.KindNotFound {
			t.Fatalf("kind = %q, want not_found", model.KindOf(err))
		}
		return nil
	})
}

func TestFilterTasksByTagPermissions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.createTask(t, "task-plain")
	f.createTask(t, "task-one", "tag-1")
	f.createTask(t, "task-two", "tag-2")
	f.createTask(t, "task-both", "tag-1", "tag-2")

	all := []string{"task-plain", "task-one", "task-two", "task-both"}

	t.Run("no permission record sees only untagged", func(t *testing.T) {
		f.run(t, func(tx *store.Tx) error {
			visible, err := FilterTasksByTagPermissions(ctx, tx, f.memberHM, all)
			if err != nil {
				t.Fatalf("filter: %v", err)
			}
			if len(visible) != 1 || visible[0] != "task-plain" {
				t.Fatalf("visible = %v, want [task-plain]", visible)
			}
			return nil
		})
	})

	t.Run("partial grant sees overlap plus untagged", func(t *testing.T) {
		f.run(t, func(tx *store.Tx) error {
			if _, err := CreatePermissionWithTags(ctx, tx, f.memberHM, []string{"tag-1"}); err != nil {
				t.Fatalf("create permission: %v", err)
			}
			visible, err := FilterTasksByTagPermissions(ctx, tx, f.memberHM, all)
			if err != nil {
				t.Fatalf("filter: %v", err)
			}
			// task-both passes on the strength of tag-1 alone.
			want := []string{"task-plain", "task-one", "task-both"}
			if len(visible) != len(want) {
				t.Fatalf("visible = %v, want %v", visible, want)
			}
			for i := range want {
				if visible[i] != want[i] {
					t.Fatalf("visible = %v, want %v", visible, want)
				}
			}
			return nil
		})
	})
}

func TestFilterPreservesInputOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.createTask(t, "task-a", "tag-1")
	f.createTask(t, "task-b")
	f.createTask(t, "task-c", "tag-1")

	f.run(t, func(tx *store.Tx) error {
		if _, err := CreatePermissionWithTags(ctx, tx, f.memberHM, []string{"tag-1"}); err != nil {
			t.Fatalf("create permission: %v", err)
		}
		visible, err := FilterTasksByTagPermissions(ctx, tx, f.memberHM, []string{"task-c", "task-a", "task-b"})
		if err != nil {
			t.Fatalf("filter: %v", err)
		}
		want := []string{"task-c", "task-a", "task-b"}
		for i := range want {
			if visible[i] != want[i] {
				t.Fatalf("visible = %v, want %v", visible, want)
			}
		}
		return nil
	})
}

func TestFilterEmptyInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.run(t, func(tx *store.Tx) error {
		visible, err := FilterTasksByTagPermissions(ctx, tx, f.memberHM, nil)
		if err != nil {
			t.Fatalf("filter: %v", err)
		}
		if len(visible) != 0 {
			t.Fatalf("visible = %v, want empty", visible)
		}
		return nil
	})
}

func TestViewableTags(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.run(t, func(tx *store.Tx) error {
		// Without a permission record, nothing is viewable.
		tags, err := ViewableTags(ctx, tx, f.memberHM)
		if err != nil {
			t.Fatalf("viewable tags: %v", err)
		}
		if len(tags) != 0 {
			t.Fatalf("tags = %v, want none", tags)
		}

		if _, err := CreatePermissionWithTags(ctx, tx, f.memberHM, []string{"tag-2"}); err != nil {
			t.Fatalf("create permission: %v", err)
		}
		tags, err = ViewableTags(ctx, tx, f.memberHM)
		if err != nil {
			t.Fatalf("viewable tags: %v", err)
		}
		if len(tags) != 1 || tags[0].ID != "tag-2" {
			t.Fatalf("tags = %v, want [tag-2]", tags)
		}
		return nil
	})
}

func TestGrantUnlocksTaggedTask(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.createTask(t, "task-a", "tag-1")

	// Holding a grant for a different tag does not help.
	f.run(t, func(tx *store.Tx) error {
		if _, err := CreatePermissionWithTags(ctx, tx, f.memberHM, []string{"tag-2"}); err != nil {
			t.Fatalf("create permission: %v", err)
		}
		visible, err := FilterTasksByTagPermissions(ctx, tx, f.memberHM, []string{"task-a"})
		if err != nil {
			t.Fatalf("filter: %v", err)
		}
		if len(visible) != 0 {
			t.Fatalf("visible = %v, want empty", visible)
		}
		return nil
	})

	f.run(t, func(tx *store.Tx) error {
		if err := GrantTagPermissions(ctx, tx, f.memberHM, []string{"tag-1"}); err != nil {
			t.Fatalf("grant: %v", err)
		}
		visible, err := FilterTasksByTagPermissions(ctx, tx, f.memberHM, []string{"task-a"})
		if err != nil {
			t.Fatalf("filter: %v", err)
		}
		if len(visible) != 1 || visible[0] != "task-a" {
			t.Fatalf("visible = %v, want [task-a]", visible)
		}
		return nil
	})
}
