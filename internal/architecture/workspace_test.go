package architecture

import (
	"strings"
	"testing"
)

func TestWorkspace_DSL(t *testing.T) {
	g := NewGroup[*Component]("core")
	a := NewComponent("a")
	b := NewComponent("b")
	a.AddRelation(&Relation{Source: a, Target: b, Description: "uses"})
	g.AddElement(a)
	g.AddElement(b)

	ws := Workspace{
		Name:      "Shop",
		System:    "Shop",
		Container: "Backend",
		Elements:  []Element{g},
	}

	want := strings.Join([]string{
		`workspace "Shop" {`,
		`  model {`,
		`    shop = softwareSystem "Shop" {`,
		`      shop_backend = container "Backend" {`,
		`        core = group "core" {`,
		`          core_a = component "a"`,
		`          core_b = component "b"`,
		`        }`,
		``,
		`        core_a -> core_b "uses"`,
		`      }`,
		`    }`,
		`  }`,
		`}`,
	}, "\n")

	if got := ws.DSL().String(); got != want {
		t.Errorf("DSL() =\n%s\nwant\n%s", got, want)
	}
}

func TestRender_MatchesBareGroupOutput(t *testing.T) {
	g := NewGroup[*Component]("g")
	g.AddElement(NewComponent("c"))

	if Render(g) != g.DSL("").String() {
		t.Error("Render should match the group's own rendering")
	}
}
