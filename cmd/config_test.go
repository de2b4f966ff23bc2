package cmd

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/fifo/docs"
	"github.com/google/go-cmp/cmp"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fifo.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func env(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestDefaultConfig_IsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v, want nil", err)
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, "currency: EUR\nlog:\n  format: json\n")

	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() unexpected error: %v", err)
	}
	want := Config{Currency: "EUR", Style: "auto", Log: LogConfig{Level: "info", Format: "json"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadConfig() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("LoadConfig(missing) error = %v, want fs.ErrNotExist", err)
	}
	if _, err := LoadConfig(writeConfig(t, "currency: [EUR")); err == nil {
		t.Error("LoadConfig(invalid yaml) succeeded, want error")
	}
}

func TestSettings(t *testing.T) {
	file := writeConfig(t, "currency: EUR\nstyle: dark\n")

	testCases := []struct {
		name  string
		flags Flags
		env   map[string]string
		want  Config
	}{
		{
			name: "defaults",
			want: DefaultConfig(),
		},
		{
			name:  "file from flag",
			flags: Flags{Config: file},
			want:  Config{Currency: "EUR", Style: "dark", Log: LogConfig{Level: "info", Format: "console"}},
		},
		{
			name: "file from environment",
			env:  map[string]string{EnvConfig: file},
			want: Config{Currency: "EUR", Style: "dark", Log: LogConfig{Level: "info", Format: "console"}},
		},
		{
			name:  "environment overrides file",
			flags: Flags{Config: file},
			env:   map[string]string{EnvCurrency: "gbp", EnvVerbose: "true"},
			want:  Config{Currency: "GBP", Style: "dark", Log: LogConfig{Level: "debug", Format: "console"}},
		},
		{
			name:  "flags override environment",
			flags: Flags{Config: file, Currency: "JPY", Style: "raw", Verbose: true},
			env:   map[string]string{EnvCurrency: "GBP", EnvStyle: "light"},
			want:  Config{Currency: "JPY", Style: "raw", Log: LogConfig{Level: "debug", Format: "console"}},
		},
		{
			name: "verbose false keeps the level",
			env:  map[string]string{EnvVerbose: "false"},
			want: DefaultConfig(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Settings(tc.flags, env(tc.env))
			if err != nil {
				t.Fatalf("Settings() unexpected error: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Settings() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSettings_Errors(t *testing.T) {
	testCases := []struct {
		name  string
		flags Flags
		env   map[string]string
		want  string
	}{
		{"unknown currency", Flags{Currency: "XYZ"}, nil, `unknown currency "XYZ"`},
		{"unknown style", Flags{Style: "neon"}, nil, `unknown style "neon"`},
		{"invalid verbose", Flags{}, map[string]string{EnvVerbose: "maybe"}, `invalid FIFO_VERBOSE "maybe"`},
		{"missing file", Flags{Config: "/does/not/exist.yaml"}, nil, "read config file"},
		{"invalid level", Flags{Config: writeConfig(t, "log:\n  level: loud\n")}, nil, "invalid log level"},
		{"invalid format", Flags{Config: writeConfig(t, "log:\n  format: xml\n")}, nil, `unknown log format "xml"`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Settings(tc.flags, env(tc.env))
			if err == nil {
				t.Fatalf("Settings() succeeded, want error containing %q", tc.want)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Settings() error = %q, want it to contain %q", err.Error(), tc.want)
			}
		})
	}
}

func TestValidate_ReportsAllErrors(t *testing.T) {
	cfg := Config{Currency: "XYZ", Style: "neon", Log: LogConfig{Level: "loud", Format: "xml"}}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() succeeded, want errors")
	}
	if got := len(strings.Split(err.Error(), "\n")); got != 4 {
		t.Errorf("Validate() reported %d errors, want 4:\n%v", got, err)
	}
}

// TestDocumentedConfig checks that the configuration file documented in the config topic is valid.
func TestDocumentedConfig(t *testing.T) {
	md, err := docs.GetTopic("config")
	if err != nil {
		t.Fatalf("GetTopic(config) error: %v", err)
	}
	src := []byte(md)
	root := goldmark.New().Parser().Parse(text.NewReader(src))

	var blocks []string
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if block, ok := n.(*ast.FencedCodeBlock); ok && entering && string(block.Language(src)) == "yaml" {
			var b strings.Builder
			for i := 0; i < block.Lines().Len(); i++ {
				segment := block.Lines().At(i)
				b.Write(segment.Value(src))
			}
			blocks = append(blocks, b.String())
		}
		return ast.WalkContinue, nil
	})
	if len(blocks) != 1 {
		t.Fatalf("config topic has %d yaml blocks, want 1", len(blocks))
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal([]byte(blocks[0]), &cfg); err != nil {
		t.Fatalf("documented config is not valid YAML: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("documented config is invalid: %v", err)
	}
	if cfg.Currency != "EUR" {
		t.Errorf("documented currency = %q, want EUR", cfg.Currency)
	}
}
