package generator

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() fstest.MapFS {
	return fstest.MapFS{
		"Anchor.toml.hbs":                        {Data: []byte("[programs.localnet]\n{{projectName}} = \"{{programId}}\"\n")},
		"config.json.hbs":                        {Data: []byte("{{projectName}}")},
		"gitignore":                              {Data: []byte("target\nnode_modules\n")},
		"programs/anchor_init/Cargo.toml.hbs":    {Data: []byte("[package]\nname = \"{{projectName}}\"\n")},
		"programs/anchor_init/src/lib.rs.hbs":    {Data: []byte("pub mod {{projectName}} {}\npub struct {{PascalCase projectName}};\n")},
		"tests/anchor_init_client.ts":            {Data: []byte("// {{projectName}} stays literal\n")},
		"scripts/setup.sh":                       {Data: []byte("#!/bin/sh\necho hi\n"), Mode: 0755},
		"migrations/deploy.ts":                   {Data: []byte{0x00, 0x01, 0xff}},
	}
}

func materializer(t *testing.T, project string) *Materializer {
	t.Helper()
	return NewMaterializer(testRenderer(t, project))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestMaterialize(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "demo")

	ops, err := materializer(t, "demo").Materialize(context.Background(), sampleTree(), dest, MaterializeOptions{})
	require.NoError(t, err)
	assert.NotEmpty(t, ops)

	assert.Equal(t, "demo", readFile(t, filepath.Join(dest, "config.json")))
	assert.Equal(t, "[programs.localnet]\ndemo = \""+testProgramID+"\"\n", readFile(t, filepath.Join(dest, "Anchor.toml")))
	assert.Equal(t, "target\nnode_modules\n", readFile(t, filepath.Join(dest, ".gitignore")))
	assert.Equal(t, "[package]\nname = \"demo\"\n", readFile(t, filepath.Join(dest, "programs", "demo", "Cargo.toml")))
	assert.Equal(t, "pub mod demo {}\npub struct Demo;\n", readFile(t, filepath.Join(dest, "programs", "demo", "src", "lib.rs")))

	// Files without the marker are copied verbatim
	assert.Equal(t, "// {{projectName}} stays literal\n", readFile(t, filepath.Join(dest, "tests", "demo_client.ts")))
	assert.Equal(t, string([]byte{0x00, 0x01, 0xff}), readFile(t, filepath.Join(dest, "migrations", "deploy.ts")))

	assert.NoFileExists(t, filepath.Join(dest, "gitignore"))
	assert.NoFileExists(t, filepath.Join(dest, "config.json.hbs"))
	assert.NoDirExists(t, filepath.Join(dest, "programs", "anchor_init"))

	info, err := os.Stat(filepath.Join(dest, "scripts", "setup.sh"))
	require.NoError(t, err)
	assert.NotZero(t, info.Mode().Perm()&0100, "executable bit should be kept")
}

func TestMaterialize_TargetExists(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "demo")
	require.NoError(t, os.Mkdir(dest, 0755))

	_, err := materializer(t, "demo").Materialize(context.Background(), sampleTree(), dest, MaterializeOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTargetExists)

	entries, err := os.ReadDir(dest)
	require.NoError(t, err)
	assert.Empty(t, entries, "nothing may be written into an existing target")
}

func TestMaterialize_TargetExistsAsFile(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "demo")
	require.NoError(t, os.WriteFile(dest, []byte("keep"), 0644))

	_, err := materializer(t, "demo").Materialize(context.Background(), sampleTree(), dest, MaterializeOptions{})
	assert.ErrorIs(t, err, ErrTargetExists)
	assert.Equal(t, "keep", readFile(t, dest))
}

func TestMaterialize_TemplateErrorWritesNothing(t *testing.T) {
	tree := sampleTree()
	tree["programs/anchor_init/src/state.rs.hbs"] = &fstest.MapFile{Data: []byte("{{accountName}}")}

	dest := filepath.Join(t.TempDir(), "demo")
	_, err := materializer(t, "demo").Materialize(context.Background(), tree, dest, MaterializeOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTemplate)

	var te *TemplateError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "programs/anchor_init/src/state.rs.hbs", te.Name)

	assert.NoDirExists(t, dest)
}

func TestMaterialize_NameTemplateError(t *testing.T) {
	tree := fstest.MapFS{
		"src/{{unknown}}.rs": {Data: []byte("x")},
	}

	dest := filepath.Join(t.TempDir(), "demo")
	_, err := materializer(t, "demo").Materialize(context.Background(), tree, dest, MaterializeOptions{})

	var te *TemplateError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "src/{{unknown}}.rs", te.Name)
	assert.NoDirExists(t, dest)
}

func TestMaterialize_Collision(t *testing.T) {
	tree := fstest.MapFS{
		"README.md":     {Data: []byte("a")},
		"README.md.hbs": {Data: []byte("b")},
	}

	dest := filepath.Join(t.TempDir(), "demo")
	_, err := materializer(t, "demo").Materialize(context.Background(), tree, dest, MaterializeOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTemplate)
	assert.Contains(t, err.Error(), "already produced by")
	assert.NoDirExists(t, dest)
}

func TestMaterialize_ExecutionFailureRemovesCreatedTarget(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "vault")
	m := materializer(t, "vault")

	ops, err := m.Plan(sampleTree(), dest)
	require.NoError(t, err)
	ops = append(ops, &failingOp{executeErr: errors.New("disk full")})

	err = m.execute(context.Background(), ops, MaterializeOptions{Writer: &bytes.Buffer{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.NoDirExists(t, dest)
}

func TestMaterialize_TargetCreatedAfterPlanIsKept(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "vault")
	m := materializer(t, "vault")

	ops, err := m.Plan(sampleTree(), dest)
	require.NoError(t, err)

	require.NoError(t, os.Mkdir(dest, 0755))
	keep := filepath.Join(dest, "notes.txt")
	require.NoError(t, os.WriteFile(keep, []byte("mine"), 0644))

	err = m.execute(context.Background(), ops, MaterializeOptions{Writer: &bytes.Buffer{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Equal(t, "mine", readFile(t, keep))
}

func TestMaterialize_DryRun(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "demo")
	var out bytes.Buffer

	ops, err := materializer(t, "demo").Materialize(context.Background(), sampleTree(), dest, MaterializeOptions{
		DryRun: true,
		Writer: &out,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, ops)

	assert.NoDirExists(t, dest)
	assert.Contains(t, out.String(), "[DRY RUN]")
	assert.Contains(t, out.String(), filepath.Join(dest, "programs", "demo", "src", "lib.rs"))
}

func TestPlan_ParentsBeforeChildren(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "demo")

	ops, err := materializer(t, "demo").Plan(sampleTree(), dest)
	require.NoError(t, err)

	created := make(map[string]bool)
	for _, op := range ops {
		var path string
		switch o := op.(type) {
		case *MkdirOp:
			path = o.Path
		case *WriteFileOp:
			path = o.Path
		case *CopyFileOp:
			path = o.Path
		}

		if path != dest {
			assert.True(t, created[filepath.Dir(path)], "parent of %s planned after child", path)
		}
		created[path] = true
	}
}
