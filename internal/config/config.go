// Package config loads anchor-init settings from file, environment and flags.
//
// Precedence, highest first: command-line flags, ANCHOR_INIT_* environment
// variables, anchor-init.yml, built-in defaults. The file is looked up in the
// working directory and then in ~/.config/anchor-init.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/simonhull/anchor-init/internal/pipeline"
)

const (
	fileName  = "anchor-init"
	fileType  = "yaml"
	envPrefix = "ANCHOR_INIT"
)

// Config holds the effective settings
type Config struct {
	PackageManager string  `mapstructure:"package_manager" yaml:"package_manager" validate:"required,oneof=yarn npm pnpm"`
	TemplateDir    string  `mapstructure:"template_dir" yaml:"template_dir,omitempty" validate:"omitempty,dir"`
	Quiet          bool    `mapstructure:"quiet" yaml:"quiet"`
	Strict         bool    `mapstructure:"strict" yaml:"strict"`
	CommitMessage  string  `mapstructure:"commit_message" yaml:"commit_message" validate:"required"`
	Scripts        Scripts `mapstructure:"scripts" yaml:"scripts"`

	// Source is the config file that was read, empty if none.
	Source string `mapstructure:"-" yaml:"-"`
}

// Scripts names the package.json scripts the pipeline runs
type Scripts struct {
	Deploy string `mapstructure:"deploy" yaml:"deploy" validate:"required"`
	Test   string `mapstructure:"test" yaml:"test" validate:"required"`
}

// Options controls where Load looks for settings
type Options struct {
	// ConfigFile is an explicit config path. It must exist when set.
	ConfigFile string

	// SearchPaths overrides the default lookup directories.
	SearchPaths []string

	// Flags are bound over every other source when changed.
	Flags *pflag.FlagSet
}

// flagKeys maps command-line flag names to config keys
var flagKeys = map[string]string{
	"package-manager": "package_manager",
	"template-dir":    "template_dir",
	"quiet":           "quiet",
	"strict":          "strict",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report config keys rather than Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Defaults returns the built-in settings
func Defaults() *Config {
	return &Config{
		PackageManager: "yarn",
		CommitMessage:  "Initial commit",
		Scripts: Scripts{
			Deploy: "deploy:local",
			Test:   "test:local",
		},
	}
}

// Load reads and validates the effective configuration.
func Load(opts Options) (*Config, error) {
	v := viper.New()

	d := Defaults()
	v.SetDefault("package_manager", d.PackageManager)
	v.SetDefault("template_dir", d.TemplateDir)
	v.SetDefault("quiet", d.Quiet)
	v.SetDefault("strict", d.Strict)
	v.SetDefault("commit_message", d.CommitMessage)
	v.SetDefault("scripts.deploy", d.Scripts.Deploy)
	v.SetDefault("scripts.test", d.Scripts.Test)

	// Enable environment variable overrides
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", opts.ConfigFile, err)
		}
	} else {
		v.SetConfigName(fileName)
		v.SetConfigType(fileType)
		paths := opts.SearchPaths
		if paths == nil {
			paths = defaultSearchPaths()
		}
		for _, p := range paths {
			v.AddConfigPath(p)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read %s config: %w", fileName, err)
			}
		}
	}

	if opts.Flags != nil {
		for name, key := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind --%s: %w", name, err)
				}
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Source = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid config: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	key := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", key)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", key, fe.Param(), fe.Value())
	case "dir":
		return fmt.Sprintf("%s %q is not a directory", key, fe.Value())
	}
	return fmt.Sprintf("%s failed %s validation", key, fe.Tag())
}

// Catalog builds the pipeline command catalog for these settings.
func (c *Config) Catalog() *pipeline.Catalog {
	return pipeline.DefaultCatalog(pipeline.CatalogConfig{
		PackageManager: c.PackageManager,
		DeployScript:   c.Scripts.Deploy,
		TestScript:     c.Scripts.Test,
		CommitMessage:  c.CommitMessage,
	})
}

// YAML renders the configuration in file format.
func (c *Config) YAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

func defaultSearchPaths() []string {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", fileName))
	}
	return paths
}
