package database_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SergeyKozhin/studyspot-backend/internal/database"
	"github.com/SergeyKozhin/studyspot-backend/internal/database/dbtest"
)

func TestInTx(t *testing.T) {
	errFailed := errors.New("failed")

	tests := []struct {
		name          string
		fn            func(tx database.Tx) error
		wantErr       error
		wantCommits   int
		wantRollbacks int
	}{
		{"commit", func(database.Tx) error { return nil }, nil, 1, 0},
		{"rollback", func(database.Tx) error { return errFailed }, errFailed, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := &dbtest.PGX{}

			err := database.InTx(context.Background(), db, tt.fn)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("InTx() err = %v, want %v", err, tt.wantErr)
			}
			if db.Commits != tt.wantCommits || db.Rollbacks != tt.wantRollbacks {
				t.Errorf("commits = %d rollbacks = %d, want %d and %d", db.Commits, db.Rollbacks, tt.wantCommits, tt.wantRollbacks)
			}
		})
	}
}
