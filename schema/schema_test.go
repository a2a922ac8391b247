package schema

import "testing"

func TestPostgresTypeString(t *testing.T) {
	tests := []struct {
		typ  PostgresType
		want string
	}{
		{PostgresType{Kind: PUUID}, "UUID"},
		{PostgresType{Kind: PTimestamp}, "TIMESTAMP WITH TIME ZONE"},
		{PostgresType{Kind: PDouble}, "DOUBLE PRECISION"},
		{CustomType("MY_ENUM_TYPE"), "MY_ENUM_TYPE"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("String(%v) = %q, want %q", tt.typ.Kind, got, tt.want)
		}
	}
}

func TestOnDeleteString(t *testing.T) {
	tests := []struct {
		action OnDelete
		want   string
	}{
		{NoAction, "NO ACTION"},
		{Restrict, "RESTRICT"},
		{SetNull, "SET NULL"},
		{Cascade, "CASCADE"},
	}
	for _, tt := range tests {
		if got := tt.action.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
