package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(sql.ErrNoRows) {
		t.Fatal("sql.ErrNoRows should be a not-found error")
	}
	if isNotFound(errors.New("connection refused")) {
		t.Fatal("arbitrary error misclassified as not found")
	}
	if isNotFound(fmt.Errorf("wrapped: %w", sql.ErrNoRows)) {
		t.Fatal("wrapped rows error should not match the sentinel comparison")
	}
}

func TestNullIfEmpty(t *testing.T) {
	if v := nullIfEmpty(""); v != (sql.NullString{}) {
		t.Fatalf("empty string should map to null, got %#v", v)
	}
	if v := nullIfEmpty("p-1"); v != "p-1" {
		t.Fatalf("non-empty string should pass through, got %#v", v)
	}
}
