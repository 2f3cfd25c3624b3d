package authz

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/AlyssaMarisDev/ohana-backend-sub001/internal/database"
	"github.com/AlyssaMarisDev/ohana-backend-sub001/internal/model"
	"github.com/AlyssaMarisDev/ohana-backend-sub001/internal/store"
)

// fixture seeds one household with an active admin, an active plain member,
// and an invited (inactive) member, plus two tags.
type fixture struct {
	db  *sql.DB
	uow *store.UnitOfWork

	adminHM   string
	memberHM  string
	invitedHM string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	f := &fixture{
		db:        db,
		uow:       store.NewUnitOfWork(db),
		adminHM:   "hm-admin",
		memberHM:  "hm-member",
		invitedHM: "hm-invited",
	}

	ctx := context.Background()
	now := time.Now().UTC()
	err = f.uow.Run(ctx, func(tx *store.Tx) error {
		for _, m := range []struct{ id, email string }{
			{"m-admin", "admin@example.com"},
			{"m-member", "member@example.com"},
			{"m-invited", "invited@example.com"},
			{"m-outsider", "outsider@example.com"},
		} {
			if _, err := tx.Members.Create(ctx, &model.Member{
				ID: m.id, Name: m.id, Email: m.email, PasswordHash: "x",
			}); err != nil {
				return err
			}
		}

		if _, err := tx.Households.Create(ctx, &model.Household{
			ID: "h1", Name: "Home", CreatedBy: "m-admin",
		}); err != nil {
			return err
		}

		memberships := []*model.HouseholdMember{
			{ID: f.adminHM, HouseholdID: "h1", MemberID: "m-admin", Role: model.RoleAdmin, IsActive: true, InvitedBy: "m-admin", JoinedAt: &now},
			{ID: f.memberHM, HouseholdID: "h1", MemberID: "m-member", Role: model.RoleMember, IsActive: true, InvitedBy: "m-admin", JoinedAt: &now},
			{ID: f.invitedHM, HouseholdID: "h1", MemberID: "m-invited", Role: model.RoleMember, IsActive: false, InvitedBy: "m-admin"},
		}
		for _, hm := range memberships {
			if _, err := tx.Households.AddMember(ctx, hm); err != nil {
				return err
			}
		}

		for _, id := range []string{"tag-1", "tag-2"} {
			if _, err := tx.Tags.Create(ctx, &model.Tag{
				ID: id, HouseholdID: "h1", Name: id, Color: "#FF0000",
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("seed fixture: %v", err)
	}
	return f
}

// run executes fn inside one unit of work and fails the test on error.
func (f *fixture) run(t *testing.T, fn func(tx *store.Tx) error) {
	t.Helper()
	if err := f.uow.Run(context.Background(), fn); err != nil {
		t.Fatalf("run: %v", err)
	}
}

func (f *fixture) createTask(t *testing.T, id string, tagIDs ...string) {
	t.Helper()
	ctx := context.Background()
	f.run(t, func(tx *store.Tx) error {
		if _, err := tx.Tasks.Create(ctx, &model.Task{
			ID: id, Title: id, Status: model.TaskPending, CreatedBy: "m-admin", HouseholdID: "h1",
		}); err != nil {
			return err
		}
		for _, tagID := range tagIDs {
			if err := tx.Tasks.AddTag(ctx, id, tagID); err != nil {
				return err
			}
		}
		return nil
	})
}
