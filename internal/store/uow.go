package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Tx is the repository capability set handed to one logical request. Every
// store shares the same underlying transaction, so the request's reads and
// writes commit or roll back together.
type Tx struct {
	Members        *MemberStore
	Households     *HouseholdStore
	Permissions    *PermissionStore
	TagPermissions *TagPermissionStore
	Tags           *TagStore
	Tasks          *TaskStore
}

func newTx(q Querier) *Tx {
	return &Tx{
		Members:        NewMemberStore(q),
		Households:     NewHouseholdStore(q),
		Permissions:    NewPermissionStore(q),
		TagPermissions: NewTagPermissionStore(q),
		Tags:           NewTagStore(q),
		Tasks:          NewTaskStore(q),
	}
}

// UnitOfWork opens one transaction per request. It is never shared across
// requests and never retries a failed commit.
type UnitOfWork struct {
	db *sql.DB
}

func NewUnitOfWork(db *sql.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

// Run begins a transaction, calls fn with a Tx bound to it, and commits iff
// fn returns nil. Any error from fn or from the commit propagates unchanged.
func (u *UnitOfWork) Run(ctx context.Context, fn func(tx *Tx) error) error {
	sqlTx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer sqlTx.Rollback()

	if err := fn(newTx(sqlTx)); err != nil {
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
