package token

import "testing"

func TestLookupIdent(t *testing.T) {
	tests := []struct {
		ident string
		want  TokenType
	}{
		{"select", SELECT},
		{"SELECT", SELECT},
		{"SeLeCt", SELECT},
		{"with", WITH},
		{"qualify", QUALIFY},
		{"users", IDENT},
		{"selection", IDENT},
	}
	for _, tt := range tests {
		if got := LookupIdent(tt.ident); got != tt.want {
			t.Errorf("LookupIdent(%q) = %v, want %v", tt.ident, got, tt.want)
		}
	}
}

func TestClassifiers(t *testing.T) {
	for _, tok := range []TokenType{SELECT, INSERT, UPDATE, DELETE, MERGE, REPLACE} {
		if !IsDML(tok) {
			t.Errorf("IsDML(%v) = false", tok)
		}
		if IsDDL(tok) {
			t.Errorf("IsDDL(%v) = true", tok)
		}
	}
	for _, tok := range []TokenType{CREATE, ALTER, DROP, TRUNCATE, GRANT, REVOKE} {
		if !IsDDL(tok) {
			t.Errorf("IsDDL(%v) = false", tok)
		}
	}
	if !IsTrivia(WHITESPACE) || !IsTrivia(LINE_COMMENT) || !IsTrivia(BLOCK_COMMENT) {
		t.Error("trivia classifier missed a trivia token")
	}
	if IsTrivia(SELECT) || IsComment(WHITESPACE) {
		t.Error("trivia classifier too broad")
	}
	if !IsKeyword(SELECT) || IsKeyword(IDENT) || IsKeyword(NUMBER) {
		t.Error("keyword classifier wrong")
	}
}

func TestTokenUpper(t *testing.T) {
	tok := Token{Type: IDENT, Literal: "löwer_Case1"}
	if got := tok.Upper(); got != "LöWER_CASE1" {
		t.Errorf("Upper() = %q", got)
	}
}

func TestRegisterDynamicKeyword(t *testing.T) {
	typ := Register("ILIKE")
	if !IsDynamic(typ) {
		t.Fatal("registered token not dynamic")
	}
	got, ok := LookupDynamicKeyword("ilike")
	if !ok || got != typ {
		t.Errorf("LookupDynamicKeyword = %v, %v", got, ok)
	}
	if typ.String() != "ILIKE" {
		t.Errorf("String() = %q", typ.String())
	}
	if got := LookupIdent("iLike"); got != typ {
		t.Errorf("LookupIdent after registration = %v, want %v", got, typ)
	}
	if !IsKeyword(SELECT) || IsKeyword(typ) {
		t.Error("dynamic keywords live outside the builtin keyword range")
	}
}
