package architecture

import (
	"strings"
	"testing"

	"archdsl/internal/dsl"
)

func TestComponent_DSL_NameOnly(t *testing.T) {
	c := NewComponent("Foo")

	got := c.DSL("").String()
	if want := `foo = component "Foo"`; got != want {
		t.Errorf("DSL() = %q, want %q", got, want)
	}
}

func TestComponent_DSL_AllFields(t *testing.T) {
	c := &Component{
		Name:        "Order Service",
		Description: "Takes orders",
		Technology:  "Go",
		URL:         "https://example.com/orders",
		Tags:        []string{"core", "sync"},
	}
	c.Properties.Set("owner", "team-a")
	c.Properties.Set("tier", "1")
	c.Perspectives.Set("security", "handles PII")

	want := strings.Join([]string{
		`shop_order_service = component "Order Service" {`,
		`  description "Takes orders"`,
		`  technology "Go"`,
		`  url "https://example.com/orders"`,
		`  tags "core" "sync"`,
		`  properties {`,
		`    owner "team-a"`,
		`    tier "1"`,
		`  }`,
		`  perspectives {`,
		`    security "handles PII"`,
		`  }`,
		`}`,
	}, "\n")

	if got := c.DSL("shop").String(); got != want {
		t.Errorf("DSL() =\n%s\nwant\n%s", got, want)
	}
}

func TestComponent_DSL_OmitsEmptySubElements(t *testing.T) {
	c := &Component{Name: "Foo", Technology: "Python"}
	c.Properties.Set("empty", "")

	got := c.DSL("").String()
	want := "foo = component \"Foo\" {\n  technology \"Python\"\n  properties {\n    empty\n  }\n}"
	if got != want {
		t.Errorf("DSL() =\n%s\nwant\n%s", got, want)
	}
	for _, kw := range []string{"description", "url", "tags", "perspectives"} {
		if strings.Contains(got, kw) {
			t.Errorf("output should not contain %q:\n%s", kw, got)
		}
	}
}

func TestComponent_DSL_RelationsUseSamePrefix(t *testing.T) {
	db := NewComponent("DB")
	api := NewComponent("API")
	api.AddRelation(&Relation{Source: api, Target: db, Description: "reads", Tags: []string{"sql"}})

	stmts := api.DSL("backend")
	if len(stmts) != 2 {
		t.Fatalf("len(DSL()) = %d, want 2", len(stmts))
	}
	rel, ok := stmts[1].(dsl.Relationship)
	if !ok {
		t.Fatalf("second statement is %T, want dsl.Relationship", stmts[1])
	}
	if rel.Source != "backend_api" || rel.Target != "backend_db" {
		t.Errorf("relationship = %s -> %s, want backend_api -> backend_db", rel.Source, rel.Target)
	}
	if got, want := rel.String(), `backend_api -> backend_db "reads" "sql"`; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestComponent_DuplicateRelationsKept(t *testing.T) {
	a := NewComponent("a")
	b := NewComponent("b")
	a.AddRelation(&Relation{Source: a, Target: b, Description: "uses"})
	a.AddRelation(&Relation{Source: a, Target: b, Description: "uses"})

	got := a.DSL("").String()
	if strings.Count(got, `a -> b "uses"`) != 2 {
		t.Errorf("duplicate relation should render twice:\n%s", got)
	}
}

func TestComponent_EscapesDescription(t *testing.T) {
	c := &Component{Name: "Foo", Description: "He said \"hi\"\nBye"}
	got := c.DSL("").String()
	if !strings.Contains(got, `description "He said \"hi\"\nBye"`) {
		t.Errorf("description not escaped:\n%s", got)
	}
}

func TestIdentifier(t *testing.T) {
	if Identifier("X", "a") == Identifier("X", "b") {
		t.Error("same name under different prefixes must differ")
	}
	if Identifier("X", "a") != Identifier("X", "a") {
		t.Error("identifier must be stable")
	}
	if got := Identifier("", "grp"); got != "grp" {
		t.Errorf("Identifier(\"\", \"grp\") = %q, want %q", got, "grp")
	}
	if got := Identifier("Foo Bar", ""); got != "foo_bar" {
		t.Errorf("Identifier(\"Foo Bar\", \"\") = %q, want %q", got, "foo_bar")
	}
}

func TestOrderedMap(t *testing.T) {
	var m OrderedMap
	m.Set("b", "1")
	m.Set("a", "2")
	m.Set("b", "3")

	if m.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", m.Len())
	}
	keys := m.Keys()
	if keys[0] != "b" || keys[1] != "a" {
		t.Errorf("Keys() = %v, want [b a]", keys)
	}
	if v, _ := m.Get("b"); v != "3" {
		t.Errorf("Get(b) = %q, want 3", v)
	}
}
