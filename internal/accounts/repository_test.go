package accounts

import (
	"strings"
	"testing"
)

// TestCountWhereClause_RemapsFilterPlaceholders tests that the count query's
// placeholders line up with its argument positions. The data query binds
// LIMIT/OFFSET first, so its filters start at $3; the count query binds the
// filters alone, starting at $1.
func TestCountWhereClause_RemapsFilterPlaceholders(t *testing.T) {
	whereClause := `WHERE 1=1 AND (username ILIKE $3 OR email ILIKE $3) AND role = $4`

	got := countWhereClause(whereClause)

	want := `WHERE 1=1 AND (username ILIKE $1 OR email ILIKE $1) AND role = $2`
	if got != want {
		t.Errorf("Expected '%s', got '%s'", want, got)
	}
}

func TestCountWhereClause_SingleFilter(t *testing.T) {
	got := countWhereClause(`WHERE 1=1 AND role = $3`)

	if got != `WHERE 1=1 AND role = $1` {
		t.Errorf("Unexpected clause: '%s'", got)
	}
	if strings.Contains(got, "$3") {
		t.Errorf("Clause still carries a data-query placeholder: '%s'", got)
	}
}
