package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/simonhull/anchor-init/internal/pipeline"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "anchor-init.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(Options{SearchPaths: []string{t.TempDir()}})
	require.NoError(t, err)

	assert.Equal(t, "yarn", cfg.PackageManager)
	assert.Equal(t, "Initial commit", cfg.CommitMessage)
	assert.Equal(t, "deploy:local", cfg.Scripts.Deploy)
	assert.Equal(t, "test:local", cfg.Scripts.Test)
	assert.False(t, cfg.Quiet)
	assert.False(t, cfg.Strict)
	assert.Empty(t, cfg.Source)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
package_manager: pnpm
quiet: true
commit_message: "chore: scaffold"
scripts:
  test: test
`)

	cfg, err := Load(Options{SearchPaths: []string{dir}})
	require.NoError(t, err)

	assert.Equal(t, "pnpm", cfg.PackageManager)
	assert.True(t, cfg.Quiet)
	assert.Equal(t, "chore: scaffold", cfg.CommitMessage)
	assert.Equal(t, "test", cfg.Scripts.Test)
	assert.Equal(t, "deploy:local", cfg.Scripts.Deploy, "unset keys keep defaults")
	assert.Equal(t, path, cfg.Source)
}

func TestLoad_ExplicitFileMustExist(t *testing.T) {
	_, err := Load(Options{ConfigFile: filepath.Join(t.TempDir(), "missing.yml")})
	assert.ErrorContains(t, err, "failed to read")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "package_manager: pnpm\n")
	t.Setenv("ANCHOR_INIT_PACKAGE_MANAGER", "npm")
	t.Setenv("ANCHOR_INIT_SCRIPTS_DEPLOY", "deploy:devnet")

	cfg, err := Load(Options{SearchPaths: []string{dir}})
	require.NoError(t, err)
	assert.Equal(t, "npm", cfg.PackageManager)
	assert.Equal(t, "deploy:devnet", cfg.Scripts.Deploy)
}

func TestLoad_FlagsOverrideEverything(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "package_manager: pnpm\nstrict: false\n")
	t.Setenv("ANCHOR_INIT_PACKAGE_MANAGER", "npm")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("package-manager", "", "")
	flags.Bool("strict", false, "")
	flags.Bool("quiet", false, "")
	require.NoError(t, flags.Parse([]string{"--package-manager=yarn", "--strict"}))

	cfg, err := Load(Options{SearchPaths: []string{dir}, Flags: flags})
	require.NoError(t, err)
	assert.Equal(t, "yarn", cfg.PackageManager)
	assert.True(t, cfg.Strict)
	assert.False(t, cfg.Quiet, "unchanged flags do not override")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "unknown package manager",
			content: "package_manager: bun\n",
			want:    `package_manager must be one of [yarn npm pnpm], got "bun"`,
		},
		{
			name:    "empty commit message",
			content: "commit_message: \"\"\n",
			want:    "commit_message is required",
		},
		{
			name:    "missing template dir",
			content: "template_dir: /definitely/not/here\n",
			want:    "template_dir",
		},
		{
			name:    "empty script",
			content: "scripts:\n  deploy: \"\"\n",
			want:    "scripts.deploy is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.content)

			_, err := Load(Options{SearchPaths: []string{dir}})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid config")
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestConfig_Catalog(t *testing.T) {
	cfg := Defaults()
	cfg.PackageManager = "npm"
	cfg.Scripts.Test = "test"

	catalog := cfg.Catalog()
	cmd, ok := catalog.Get(pipeline.StepInstall)
	require.True(t, ok)
	assert.Equal(t, "npm install", cmd.Line)

	cmd, _ = catalog.Get(pipeline.StepTest)
	assert.Equal(t, "npm run test", cmd.Line)
}

func TestConfig_YAML(t *testing.T) {
	cfg := Defaults()
	cfg.Source = "/somewhere/anchor-init.yml"

	data, err := cfg.YAML()
	require.NoError(t, err)
	assert.NotContains(t, string(data), "somewhere")
	assert.NotContains(t, string(data), "template_dir")

	var decoded Config
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, "yarn", decoded.PackageManager)
	assert.Equal(t, "test:local", decoded.Scripts.Test)
}
