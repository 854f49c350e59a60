package manifest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archdsl/internal/architecture"
	"archdsl/internal/testutil"
)

func TestLoad_AllFormatsRenderTheSame(t *testing.T) {
	for _, name := range []string{"shop.yaml", "shop.toml", "shop.hcl"} {
		t.Run(name, func(t *testing.T) {
			m, err := Load(filepath.Join("testdata", name))
			require.NoError(t, err)

			assert.Equal(t, "platform", m.Package)
			require.Len(t, m.Components, 3)
			require.Len(t, m.Components[0].Uses, 2)
			assert.Equal(t, []string{"sql"}, m.Components[0].Uses[0].Tags)

			elements, err := m.Build(architecture.NewBuilder(nil))
			require.NoError(t, err)

			testutil.Golden(t, filepath.Join("testdata", "shop.dsl"), architecture.Render(elements...))
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"arch.yaml", FormatYAML, false},
		{"arch.YML", FormatYAML, false},
		{"dir/arch.toml", FormatTOML, false},
		{"arch.hcl", FormatHCL, false},
		{"arch.json", "", true},
	}

	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrUnsupportedFormat, tt.path)
			continue
		}
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		data   string
		msg    string
	}{
		{"unknown yaml field", FormatYAML, "components:\n  - name: A\n    colour: red\n", "colour"},
		{"unknown toml field", FormatTOML, "[[components]]\nname = \"A\"\ncolour = \"red\"\n", "strict mode"},
		{"bad hcl", FormatHCL, "component {\n", "HCL"},
		{"missing name", FormatYAML, "components:\n  - description: x\n", "has no name"},
		{"duplicate", FormatYAML, "components:\n  - name: A\n  - name: A\n", "duplicate component"},
		{"empty target", FormatTOML, "[[components]]\nname = \"A\"\n[[components.uses]]\ndescription = \"x\"\n", "without target"},
		{"unknown member", FormatYAML, "groups:\n  - name: g\n    components: [Nope]\n", "unknown component"},
		{"unnamed nested group", FormatYAML, "groups:\n  - name: g\n    groups:\n      - components: []\n", "unnamed group"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.format, "inline")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestBuild_StrictRejectsFreeTargets(t *testing.T) {
	m := &Manifest{Components: []Component{{
		Name: "A",
		Uses: []Use{{Target: "Somewhere"}},
	}}}

	b := architecture.NewBuilder(nil)
	b.Strict = true

	_, err := m.Build(b)
	assert.ErrorIs(t, err, architecture.ErrUndeclaredTarget)
}

func TestBuild_ReachesAnnotatedEntities(t *testing.T) {
	b := architecture.NewBuilder(nil)
	b.Declare(architecture.Entity{Ref: architecture.EntityRef{Package: "orders", Name: "Fetch"}, Doc: "Fetch loads orders."})

	m := &Manifest{Components: []Component{{
		Name: "Gateway",
		Uses: []Use{{Target: "orders.Fetch", Description: "routes to"}},
	}}}

	elements, err := m.Build(b)
	require.NoError(t, err)
	require.Len(t, elements, 1)

	assert.Equal(t, `gateway = component "Gateway"
gateway -> fetch "routes to"`, architecture.Render(elements...))
}
