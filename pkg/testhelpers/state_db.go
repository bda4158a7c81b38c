package testhelpers

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/evanterry/surveyor/pkg/database"
)

// NewStateDB returns a fresh in-memory state database with migrations applied.
// It is closed when the test ends.
func NewStateDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.OpenInMemory(context.Background(), zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to open state database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}
