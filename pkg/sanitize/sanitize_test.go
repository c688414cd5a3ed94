package sanitize

import (
	"errors"
	"testing"
)

func TestClauseValid(t *testing.T) {
	valid := []string{
		"col = 1",
		"1 = 1",
		"col IN (SELECT id FROM allowed)",
		"(a = 1 OR b = 2) AND c = 3",
		"country = 'US'",
		"a = 'semi;colon'",
		"a = 1 /* closed */ AND b = 2",
	}
	for _, clause := range valid {
		got, err := Clause(clause)
		if err != nil {
			t.Errorf("Clause(%q): unexpected error %v", clause, err)
			continue
		}
		if got != clause {
			t.Errorf("Clause(%q) = %q, want unchanged", clause, got)
		}
	}
}

func TestClauseErrors(t *testing.T) {
	tests := []struct {
		clause string
		kind   Kind
	}{
		{"1 = 1; DROP TABLE users", KindMultipleStatements},
		{"a = 1) OR (1 = 1", KindCloseParen},
		{"(a = 1", KindOpenParen},
		{"a = 1 */ b", KindCommentClose},
		{"a = 1 /* sneaky", KindCommentOpen},
		{"a = 1 /* sneaky\n AND b = 2", KindCommentOpen},
	}
	for _, tt := range tests {
		_, err := Clause(tt.clause)
		if err == nil {
			t.Errorf("Clause(%q): expected error", tt.clause)
			continue
		}
		var serr *Error
		if !errors.As(err, &serr) {
			t.Errorf("Clause(%q): error type %T", tt.clause, err)
			continue
		}
		if serr.Kind != tt.kind {
			t.Errorf("Clause(%q): kind = %v, want %v", tt.clause, serr.Kind, tt.kind)
		}
	}
}

func TestClauseTrailingComment(t *testing.T) {
	got, err := Clause("col = 1 -- comment")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "col = 1 -- comment\n" {
		t.Errorf("Clause = %q, want trailing newline", got)
	}

	got, err = Clause("col = 1 -- comment\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "col = 1 -- comment\n" {
		t.Errorf("Clause = %q, want unchanged", got)
	}
}
