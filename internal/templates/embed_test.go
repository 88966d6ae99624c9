package templates_test

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/anchor-init/internal/generator"
	"github.com/simonhull/anchor-init/internal/naming"
	"github.com/simonhull/anchor-init/internal/templates"
)

const programID = "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin"

func TestAnchor_Tree(t *testing.T) {
	tree := templates.Anchor()

	for _, path := range []string{
		"Anchor.toml.hbs",
		"Cargo.toml",
		"package.json.hbs",
		"gitignore",
		"programs/anchor_init/src/lib.rs.hbs",
		"tests/anchor_init.ts.hbs",
	} {
		_, err := fs.Stat(tree, path)
		assert.NoError(t, err, path)
	}
}

func TestAnchor_Materializes(t *testing.T) {
	ctx, err := generator.NewContext(naming.ProjectName("token_vault"), programID)
	require.NoError(t, err)

	m := generator.NewMaterializer(generator.NewRenderer(ctx, generator.DefaultHelpers()))
	dest := filepath.Join(t.TempDir(), "token_vault")

	_, err = m.Materialize(context.Background(), templates.Anchor(), dest, generator.MaterializeOptions{})
	require.NoError(t, err)

	read := func(rel string) string {
		t.Helper()
		data, err := os.ReadFile(filepath.Join(dest, filepath.FromSlash(rel)))
		require.NoError(t, err, rel)
		return string(data)
	}

	lib := read("programs/token_vault/src/lib.rs")
	assert.Contains(t, lib, `declare_id!("`+programID+`");`)
	assert.Contains(t, lib, "pub mod token_vault {")
	assert.Contains(t, lib, `msg!("Greetings from: {:?}", ctx.program_id);`)

	assert.Contains(t, read("Anchor.toml"), `token_vault = "`+programID+`"`)
	assert.Contains(t, read("programs/token_vault/Cargo.toml"), `name = "token_vault"`)
	assert.Contains(t, read("package.json"), `"deploy:local"`)
	assert.Contains(t, read("tests/token_vault.ts"), "anchor.workspace.TokenVault as Program<TokenVault>")
	assert.Contains(t, read("README.md"), "`TokenVault`")
	assert.Contains(t, read(".gitignore"), "target")
	read("Cargo.toml")
	read("programs/token_vault/Xargo.toml")
	read("migrations/deploy.ts")

	assert.NoDirExists(t, filepath.Join(dest, "programs", "anchor_init"))
	assert.NoFileExists(t, filepath.Join(dest, "gitignore"))
	assert.NoFileExists(t, filepath.Join(dest, "Anchor.toml.hbs"))
}
