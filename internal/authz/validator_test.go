package authz

import (
	"context"
	"strings"
	"testing"

	"github.com/AlyssaMarisDev/ohana-backend-sub001/internal/model"
	"github.com/AlyssaMarisDev/ohana-backend-sub001/internal/store"
)

func TestRequireActiveMember(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name        string
		householdID string
		memberID    string
		wantKind    model.ErrorKind
		wantMsg     string
	}{
		{"active member passes", "h1", "m-member", "", ""},
		{"active admin passes", "h1", "m-admin", "", ""},
		{"missing household", "h-none", "m-member", model.KindNotFound, "not found"},
		{"non-member", "h1", "m-outsider", model.KindAuthorization, "is not a member"},
		{"invited but not accepted", "h1", "m-invited", model.KindAuthorization, "is not an active member"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f.run(t, func(tx *store.Tx) error {
				hm, err := RequireActiveMember(ctx, tx, tt.householdID, tt.memberID)
				if tt.wantKind == "" {
					if err != nil {
						t.Fatalf("unexpected error: %v", err)
					}
					if hm == nil || hm.MemberID != tt.memberID {
						t.Fatalf("hm = %+v, want membership of %s", hm, tt.memberID)
					}
					return nil
				}
				if model.KindOf(err) != tt.wantKind {
					t.Fatalf("kind = %q, want %q (err: %v)", model.KindOf(err), tt.wantKind, err)
				}
				if !strings.Contains(err.Error(), tt.wantMsg) {
					t.Fatalf("message %q does not contain %q", err.Error(), tt.wantMsg)
				}
				return nil
			})
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.run(t, func(tx *store.Tx) error {
		if _, err := RequireAdmin(ctx, tx, "h1", "m-admin"); err != nil {
			t.Fatalf("admin rejected: %v", err)
		}

		_, err := RequireAdmin(ctx, tx, "h1", "m-member")
		if model.KindOf(err) != model.KindAuthorization {
			t.Fatalf("kind = %q, want authorization", model.KindOf(err))
		}

		// Membership gate runs first, so a non-member gets the membership
		// message, not the admin one.
		_, err = RequireAdmin(ctx, tx, "h1", "m-outsider")
		if model.KindOf(err) != model.KindAuthorization {
			t.Fatalf("kind = %q, want authorization", model.KindOf(err))
		}
		if !strings.Contains(err.Error(), "is not a member") {
			t.Fatalf("message %q should be the membership failure", err.Error())
		}
		return nil
	})
}

func TestRequireHouseholdTags(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// A second household to hold a foreign tag.
	f.run(t, func(tx *store.Tx) error {
		if _, err := tx.Households.Create(ctx, &model.Household{
			ID: "h2", Name: "Other", CreatedBy: "m-outsider",
		}); err != nil {
			return err
		}
		_, err := tx.Tags.Create(ctx, &model.Tag{
			ID: "tag-foreign", HouseholdID: "h2", Name: "foreign", Color: "#00FF00",
		})
		return err
	})

	f.run(t, func(tx *store.Tx) error {
		if err := RequireHouseholdTags(ctx, tx, "h1", nil); err != nil {
			t.Fatalf("empty tag list should pass: %v", err)
		}
		if err := RequireHouseholdTags(ctx, tx, "h1", []string{"tag-1", "tag-2"}); err != nil {
			t.Fatalf("own tags should pass: %v", err)
		}

		err := RequireHouseholdTags(ctx, tx, "h1", []string{"tag-1", "no-such-tag"})
		if model.KindOf(err) != model.KindNotFound {
			t.Fatalf("kind = %q, want not_found", model.KindOf(err))
		}

		err = RequireHouseholdTags(ctx, tx, "h1", []string{"tag-foreign"})
		if model.KindOf(err) != model.KindValidation {
			t.Fatalf("kind = %q, want validation for foreign tag", model.KindOf(err))
		}
		return nil
	})
}
