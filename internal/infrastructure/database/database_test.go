package database

import (
	"testing"

	"github.com/iliri/iliri-api/internal/config"
	"github.com/iliri/iliri-api/internal/domain/entity"
)

func TestNewDBSQLiteAndMigrate(t *testing.T) {
	db, err := NewDB(&config.DatabaseConfig{
		Driver: "sqlite",
		Path:   "file:" + t.Name() + "?mode=memory&cache=shared",
	}, false)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	for _, model := range []interface{}{&entity.StoredValue{}, &entity.IdempotencyKey{}} {
		if !db.Migrator().HasTable(model) {
			t.Errorf("missing table for %T", model)
		}
	}
}

func TestNewDBUnknownDriver(t *testing.T) {
	if _, err := NewDB(&config.DatabaseConfig{Driver: "mysql"}, false); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}
