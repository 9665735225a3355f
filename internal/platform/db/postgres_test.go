package db

import (
	"context"
	"testing"
)

func TestConnectRequiresDSN(t *testing.T) {
	if _, err := Connect(""); err == nil {
		t.Fatalf("expected error for empty dsn")
	}
}

func TestMigrateRequiresConnection(t *testing.T) {
	var pg *Postgres
	if err := pg.Migrate(context.Background()); err == nil {
		t.Fatalf("expected error for nil postgres")
	}
}

func TestCloseNilIsNoop(t *testing.T) {
	var pg *Postgres
	if err := pg.Close(); err != nil {
		t.Fatalf("expected nil close error, got %v", err)
	}
}
