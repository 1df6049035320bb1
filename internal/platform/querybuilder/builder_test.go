package querybuilder

import (
	"reflect"
	"testing"
)

func TestSelect_ToSQL(t *testing.T) {
	t.Parallel()

	query, args, err := Select("id", "family_name").
		From("players").
		Where(Eq("team_id", "team-1"), Eq("active", true), IsNull("deleted_at")).
		OrderBy("shirt_number ASC NULLS LAST").
		ToSQL()
	if err != nil {
		t.Fatalf("build select: %v", err)
	}

	want := "SELECT id, family_name FROM players WHERE team_id = $1 AND active = $2 AND deleted_at IS NULL ORDER BY shirt_number ASC NULLS LAST"
	if query != want {
		t.Fatalf("unexpected query:\n got %s\nwant %s", query, want)
	}
	if !reflect.DeepEqual(args, []any{"team-1", true}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestSelect_InWithEmptyList(t *testing.T) {
	t.Parallel()

	query, args, err := Select("id").
		From("players").
		Where(In("id", nil)).
		ToSQL()
	if err != nil {
		t.Fatalf("build select: %v", err)
	}

	if query != "SELECT id FROM players WHERE 1=0" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 0 {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestInsert_WithReturningSuffix(t *testing.T) {
	t.Parallel()

	query, args, err := InsertInto("match_events").
		Columns("match_id", "team_id", "event_type", "minute").
		Values("match-1", "team-1", "goal", 10).
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert: %v", err)
	}

	want := "INSERT INTO match_events (match_id, team_id, event_type, minute) VALUES ($1, $2, $3, $4) RETURNING id"
	if query != want {
		t.Fatalf("unexpected query:\n got %s\nwant %s", query, want)
	}
	if len(args) != 4 {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestInsert_ColumnValueMismatch(t *testing.T) {
	t.Parallel()

	if _, _, err := InsertInto("t").Columns("a", "b").Values(1).ToSQL(); err == nil {
		t.Fatal("expected mismatch error")
	}
}

func TestUpdate_ToSQL(t *testing.T) {
	t.Parallel()

	query, args, err := Update("matches").
		Set("home_score", 2).
		Set("away_score", 1).
		Set("status", "FINISHED").
		Where(Eq("id", "match-1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update: %v", err)
	}

	want := "UPDATE matches SET home_score = $1, away_score = $2, status = $3 WHERE id = $4"
	if query != want {
		t.Fatalf("unexpected query:\n got %s\nwant %s", query, want)
	}
	if !reflect.DeepEqual(args, []any{2, 1, "FINISHED", "match-1"}) {
		t.Fatalf("unexpected args: %v", args)
	}
}
