package query

import "strings"

// Table is a fully qualified table reference conforming to
// [[catalog.]schema.]table. The zero value is not meaningful; at minimum
// Name must be set.
type Table struct {
	Name    string
	Schema  string
	Catalog string
}

// NewTable builds a Table from name parts in written order, i.e.
// catalog, schema, table for three parts, schema, table for two.
func NewTable(parts ...string) Table {
	var t Table
	switch len(parts) {
	case 1:
		t.Name = parts[0]
	case 2:
		t.Schema, t.Name = parts[0], parts[1]
	case 3:
		t.Catalog, t.Schema, t.Name = parts[0], parts[1], parts[2]
	}
	return t
}

// String returns the canonical dotted form with each part percent-encoded,
// including literal dots inside a part. The encoding makes the string safe
// to split on "." and usable as a map key.
func (t Table) String() string {
	var parts []string
	for _, part := range []string{t.Catalog, t.Schema, t.Name} {
		if part != "" {
			parts = append(parts, encodePart(part))
		}
	}
	return strings.Join(parts, ".")
}

const upperhex = "0123456789ABCDEF"

// encodePart percent-encodes every byte outside the unreserved set, and
// encodes "." as well so part boundaries stay unambiguous.
func encodePart(s string) string {
	if !needsEncoding(s) {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			sb.WriteByte(c)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(upperhex[c>>4])
		sb.WriteByte(upperhex[c&0xf])
	}
	return sb.String()
}

func needsEncoding(s string) bool {
	for i := 0; i < len(s); i++ {
		if !unreserved(s[i]) {
			return true
		}
	}
	return false
}

func unreserved(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' ||
		c == '_' || c == '-' || c == '~'
}
