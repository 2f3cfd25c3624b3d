package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/AlyssaMarisDev/ohana-backend-sub001/internal/database"
	"github.com/AlyssaMarisDev/ohana-backend-sub001/internal/model"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestMember(t *testing.T, db *sql.DB, id, email string) *model.Member {
	t.Helper()
	m, err := NewMemberStore(db).Create(context.Background(), &model.Member{
		ID:           id,
		Name:         "Test Member",
		Email:        email,
		PasswordHash: "x",
	})
	if err != nil {
		t.Fatalf("create member: %v", err)
	}
	return m
}

func createTestHousehold(t *testing.T, db *sql.DB, id, createdBy string) *model.Household {
	t.Helper()
	h, err := NewHouseholdStore(db).Create(context.Background(), &model.Household{
		ID:        id,
		Name:      "Test Household",
		CreatedBy: createdBy,
	})
	if err != nil {
		t.Fatalf("create household: %v", err)
	}
	return h
}

func addTestMembership(t *testing.T, db *sql.DB, id, householdID, memberID string, role model.Role, active bool) *model.HouseholdMember {
	t.Helper()
	hm := &model.HouseholdMember{
		ID:          id,
		HouseholdID: householdID,
		MemberID:    memberID,
		Role:        role,
		IsActive:    active,
		InvitedBy:   memberID,
	}
	if active {
		now := time.Now().UTC()
		hm.JoinedAt = &now
	}
	created, err := NewHouseholdStore(db).AddMember(context.Background(), hm)
	if err != nil {
		t.Fatalf("add membership: %v", err)
	}
	return created
}
