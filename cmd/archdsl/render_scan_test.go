//go:build cgo

package main

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestRender_ScanWithCache(t *testing.T) {
	root := newProject(t)
	writeFile(t, root, "svc/orders/api.go", `package orders

// Fetch loads an order.
//
// arch:group shop
// arch:uses gateway.Route "is called by"
func Fetch() {}
`)
	writeFile(t, root, "arch.hcl", `package = "gateway"

component "Route" {
  description = "Routes requests."
}
`)

	render := func() RenderResponse {
		t.Helper()
		code, stdout, stderr := execute(t, "--root", root, "render", "svc", "-m", "arch.hcl", "--format", "json")
		if code != 0 {
			t.Fatalf("exit code %d, stderr:\n%s", code, stderr)
		}
		var resp RenderResponse
		if err := json.Unmarshal([]byte(stdout), &resp); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, stdout)
		}
		return resp
	}

	first := render()
	want := `shop = group "shop" {
  shop_fetch = component "Fetch" {
    description "Fetch loads an order."
  }
}

shop_fetch -> shop_route "is called by"
route = component "Route" {
  description "Routes requests."
}`
	if first.DSL != want {
		t.Errorf("got:\n%s\nwant:\n%s", first.DSL, want)
	}
	if first.Files != 1 || first.CacheHits != 0 || len(first.RunIDs) != 1 {
		t.Errorf("first run: files=%d hits=%d runs=%v", first.Files, first.CacheHits, first.RunIDs)
	}

	second := render()
	if second.CacheHits != 1 {
		t.Errorf("second run should hit the cache, hits=%d", second.CacheHits)
	}
	if second.DSL != first.DSL {
		t.Error("cached render differs from the first render")
	}
	if second.RunIDs[0] == first.RunIDs[0] {
		t.Error("each run should get its own id")
	}
}

func TestRender_CacheIsScopedPerRoot(t *testing.T) {
	root := newProject(t)
	writeFile(t, root, "svc/main.go", "package main\n\n// arch:group svc\nfunc Main() {}\n")
	writeFile(t, root, "tools/main.go", "package main\n\n// arch:group tools\nfunc Main() {}\n")

	hits := func(dir string) int {
		t.Helper()
		code, stdout, stderr := execute(t, "--root", root, "render", dir, "--format", "json")
		if code != 0 {
			t.Fatalf("render %s: exit code %d, stderr:\n%s", dir, code, stderr)
		}
		var resp RenderResponse
		if err := json.Unmarshal([]byte(stdout), &resp); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if !strings.Contains(resp.DSL, dir+" = group") {
			t.Errorf("render %s used another root's entry:\n%s", dir, resp.DSL)
		}
		return resp.CacheHits
	}

	if got := hits("svc"); got != 0 {
		t.Errorf("first svc render hits = %d", got)
	}
	if got := hits("tools"); got != 0 {
		t.Errorf("tools/main.go must not reuse svc/main.go, hits = %d", got)
	}
	if got := hits("svc"); got != 1 {
		t.Errorf("rendering tools pruned the svc entry, hits = %d", got)
	}
}
