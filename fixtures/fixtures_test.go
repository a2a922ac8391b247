package fixtures

import (
	"reflect"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/forkkit/ihp/parser"
	"github.com/forkkit/ihp/schema"
)

const testSchema = `CREATE TYPE mood AS ENUM ('sad', 'ok', 'happy');

-- count: 3
CREATE TABLE users (
    id UUID PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    current_mood mood
);

CREATE TABLE posts (
    id UUID PRIMARY KEY,
    author_id UUID NOT NULL
);

ALTER TABLE posts ADD CONSTRAINT fk_author FOREIGN KEY (author_id) REFERENCES users (id) ON DELETE CASCADE;
`

func parseTables(t *testing.T, src string) []*Table {
	t.Helper()
	stmts, err := parser.Parse("test.sql", src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	tables, err := Tables(stmts)
	if err != nil {
		t.Fatalf("Tables: %v", err)
	}
	return tables
}

func TestTables(t *testing.T) {
	tables := parseTables(t, testSchema)
	if len(tables) != 2 {
		t.Fatalf("got %d tables, want 2", len(tables))
	}

	users, posts := tables[0], tables[1]
	if users.Name != "users" || posts.Name != "posts" {
		t.Fatalf("table order = %s, %s, want users, posts", users.Name, posts.Name)
	}

	if users.RowsCount != 3 {
		t.Errorf("users.RowsCount = %d, want 3", users.RowsCount)
	}
	if posts.RowsCount != 0 {
		t.Errorf("posts.RowsCount = %d, want 0", posts.RowsCount)
	}
	if !reflect.DeepEqual(users.PrimaryKey, []string{"id"}) {
		t.Errorf("users.PrimaryKey = %v, want [id]", users.PrimaryKey)
	}
	if !reflect.DeepEqual(users.Unique, [][]string{{"email"}}) {
		t.Errorf("users.Unique = %v, want [[email]]", users.Unique)
	}

	moodCol := users.Columns[2]
	if moodCol.Name != "current_mood" {
		t.Fatalf("third users column = %s, want current_mood", moodCol.Name)
	}
	if !reflect.DeepEqual(moodCol.EnumValues, []string{"sad", "ok", "happy"}) {
		t.Errorf("current_mood.EnumValues = %v, want the mood members", moodCol.EnumValues)
	}

	if len(posts.ForeignKeys) != 1 {
		t.Fatalf("posts has %d foreign keys, want 1", len(posts.ForeignKeys))
	}
	fk := posts.ForeignKeys[0]
	if fk.Column != "author_id" || fk.RefTable != users || fk.RefColumn != "id" {
		t.Errorf("foreign key = {%s %s %s}, want {author_id users id}", fk.Column, fk.RefTable.Name, fk.RefColumn)
	}
}

func TestTablesDefaultReferenceColumn(t *testing.T) {
	tables := parseTables(t, `CREATE TABLE users (uid UUID PRIMARY KEY);
CREATE TABLE posts (author_id UUID);
ALTER TABLE posts ADD CONSTRAINT fk FOREIGN KEY (author_id) REFERENCES users;
`)
	if got := tables[1].ForeignKeys[0].RefColumn; got != "uid" {
		t.Errorf("RefColumn = %q, want the referenced primary key %q", got, "uid")
	}

	tables = parseTables(t, `CREATE TABLE users (uid UUID);
CREATE TABLE posts (author_id UUID);
ALTER TABLE posts ADD CONSTRAINT fk FOREIGN KEY (author_id) REFERENCES users;
`)
	if got := tables[1].ForeignKeys[0].RefColumn; got != "id" {
		t.Errorf("RefColumn = %q, want fallback %q", got, "id")
	}
}

func TestTablesUnknownReference(t *testing.T) {
	stmts, err := parser.Parse("test.sql", `CREATE TABLE posts (author_id UUID);
ALTER TABLE posts ADD CONSTRAINT fk FOREIGN KEY (author_id) REFERENCES users;
`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, err := Tables(stmts); err == nil {
		t.Fatal("Tables succeeded with an unknown referenced table")
	}
}

func TestOrder(t *testing.T) {
	tables := parseTables(t, testSchema)
	order, err := Order(tables)
	if err != nil {
		t.Fatalf("Order: %v", err)
	}
	if len(order) != 2 || order[0].Name != "users" || order[1].Name != "posts" {
		names := make([]string, len(order))
		for i, table := range order {
			names[i] = table.Name
		}
		t.Errorf("order = %v, want [users posts]", names)
	}
}

func TestOrderCycle(t *testing.T) {
	a := &Table{Name: "a"}
	b := &Table{Name: "b"}
	a.ForeignKeys = []*ForeignKey{{Column: "b_id", RefTable: b, RefColumn: "id"}}
	b.ForeignKeys = []*ForeignKey{{Column: "a_id", RefTable: a, RefColumn: "id"}}

	_, err := Order([]*Table{a, b})
	if err == nil {
		t.Fatal("Order succeeded on a cycle")
	}
	if !strings.Contains(err.Error(), "cycle detected") {
		t.Errorf("error = %q, want it to name the cycle", err)
	}
}

func TestGenerateValue(t *testing.T) {
	enum := &Column{
		Name:       "current_mood",
		Type:       schema.CustomType("mood"),
		EnumValues: []string{"sad", "ok", "happy"},
	}
	v, ok := enum.GenerateValue().(string)
	if !ok {
		t.Fatalf("enum value is %T, want string", enum.GenerateValue())
	}
	if v != "sad" && v != "ok" && v != "happy" {
		t.Errorf("enum value = %q, want a member of mood", v)
	}

	id := &Column{Name: "id", Type: schema.PostgresType{Kind: schema.PUUID}}
	if _, ok := id.GenerateValue().(uuid.UUID); !ok {
		t.Errorf("uuid value is %T, want uuid.UUID", id.GenerateValue())
	}

	unknown := &Column{Name: "data", Type: schema.CustomType("jsonb")}
	if v := unknown.GenerateValue(); v != nil {
		t.Errorf("unknown custom type value = %v, want nil", v)
	}
}

func TestPlan(t *testing.T) {
	tables := parseTables(t, testSchema)
	order, err := Order(tables)
	if err != nil {
		t.Fatalf("Order: %v", err)
	}

	inserts, err := Plan(order, 5)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if len(inserts) != 2 {
		t.Fatalf("got %d inserts, want 2", len(inserts))
	}

	users, posts := inserts[0], inserts[1]
	if users.Table != "users" || posts.Table != "posts" {
		t.Fatalf("insert order = %s, %s, want users, posts", users.Table, posts.Table)
	}
	if !strings.HasPrefix(users.SQL, "INSERT INTO users ") {
		t.Errorf("users SQL = %q, want an INSERT INTO users", users.SQL)
	}
	// 3 rows from the count hint, 3 columns each.
	if len(users.Args) != 9 {
		t.Errorf("users has %d args, want 9", len(users.Args))
	}
	// 5 rows from the rows argument, 2 columns each.
	if len(posts.Args) != 10 {
		t.Errorf("posts has %d args, want 10", len(posts.Args))
	}

	// Every generated author_id must come from a generated users id.
	ids := map[interface{}]bool{}
	for i := 0; i < len(users.Args); i += 3 {
		ids[users.Args[i]] = true
	}
	for i := 1; i < len(posts.Args); i += 2 {
		if !ids[posts.Args[i]] {
			t.Errorf("author_id %v does not reference a generated users row", posts.Args[i])
		}
	}
}

func TestPlanRetriesExhausted(t *testing.T) {
	// A single-member enum primary key cannot yield two distinct rows.
	tables := parseTables(t, `CREATE TYPE only AS ENUM ('one');
CREATE TABLE t (v only PRIMARY KEY);
`)
	if _, err := Plan(tables, 2); err == nil {
		t.Fatal("Plan succeeded, want a unique-row failure")
	}
}
