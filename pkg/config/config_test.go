package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultProject(t *testing.T) {
	p := DefaultProject("/work")

	assert.Equal(t, "/work", p.BaseDir)
	assert.Equal(t, []string{"src/main/kotlin"}, p.SourceRoots)
	assert.Equal(t, []string{"src/test/kotlin"}, p.TestSourceRoots)
	assert.Equal(t, []string{"**/*.kt", "**/*.kts"}, p.Includes)
	assert.True(t, p.IncludeTestSources)
	assert.True(t, p.FailOnViolation)
	assert.False(t, p.Skip)
	assert.False(t, p.Experimental)
	assert.Equal(t, "/work/target/site", p.OutputDir())
	assert.NoError(t, p.Validate())
}

func TestLoadFromDir_NoProjectFile(t *testing.T) {
	dir := t.TempDir()

	p, err := LoadFromDir(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, p.BaseDir)
	assert.Empty(t, p.File)
	assert.Equal(t, DefaultProject(dir).SourceRoots, p.SourceRoots)
}

func TestLoadFromDir_ProjectFile(t *testing.T) {
	dir := t.TempDir()
	content := `
skip: true
experimental: true
sourceRoots:
  - app/src
includes:
  - "**/*.kt"
reporters:
  - name: checkstyle
    output: build/ktlint.xml
cache:
  size: 16
  ttl: 5m
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ktlint.yaml"), []byte(content), 0644))

	p, err := LoadFromDir(dir)
	require.NoError(t, err)

	assert.True(t, p.Skip)
	assert.True(t, p.Experimental)
	assert.Equal(t, []string{"app/src"}, p.SourceRoots)
	assert.Equal(t, []string{"src/test/kotlin"}, p.TestSourceRoots)
	assert.Equal(t, []string{"**/*.kt"}, p.Includes)
	require.Len(t, p.Reporters, 1)
	assert.Equal(t, "checkstyle", p.Reporters[0].Name)
	assert.Equal(t, 16, p.Cache.Size)
	assert.Equal(t, 5*time.Minute, p.Cache.TTL)
	assert.Equal(t, filepath.Join(dir, "ktlint.yaml"), p.File)
}

func TestLoadFromDir_AlternateName(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".ktlint.yml"), []byte("android: true\n"), 0644))

	p, err := LoadFromDir(dir)
	require.NoError(t, err)
	assert.True(t, p.Android)
}

func TestLoadFromDir_Errors(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		_, err := LoadFromDir(filepath.Join(t.TempDir(), "nope"))
		assert.Error(t, err)
	})

	t.Run("malformed file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "ktlint.yaml"), []byte("skip: [oops"), 0644))

		_, err := LoadFromDir(dir)
		assert.Error(t, err)
	})
}

func TestProject_Roots(t *testing.T) {
	p := DefaultProject("/work")
	assert.Equal(t, []string{"src/main/kotlin", "src/test/kotlin"}, p.Roots())

	p.IncludeTestSources = false
	assert.Equal(t, []string{"src/main/kotlin"}, p.Roots())
}

func TestProject_Resolve(t *testing.T) {
	p := DefaultProject("/work")

	assert.Equal(t, "/work/src", p.Resolve("src"))
	assert.Equal(t, "/abs", p.Resolve("/abs"))
	assert.Equal(t, "", p.Resolve(""))
}

func TestProject_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Project)
	}{
		{"no base dir", func(p *Project) { p.BaseDir = "" }},
		{"no includes", func(p *Project) { p.Includes = nil }},
		{"unnamed reporter", func(p *Project) { p.Reporters = []ReporterConfig{{Output: "x"}} }},
		{"negative cache", func(p *Project) { p.Cache.Size = -1 }},
		{"telemetry without endpoint", func(p *Project) {
			p.Telemetry.Enabled = true
			p.Telemetry.Endpoint = ""
		}},
		{"publish without bucket", func(p *Project) { p.Publish.Prefix = "reports" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultProject("/work")
			tt.mutate(p)
			assert.ErrorIs(t, p.Validate(), ErrInvalidProject)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("KTLINT_SKIP", "true")
	t.Setenv("KTLINT_EXPERIMENTAL", "1")
	t.Setenv("KTLINT_OUTPUT_DIR", "build/reports")
	t.Setenv("KTLINT_CACHE_SIZE", "12")
	t.Setenv("KTLINT_CACHE_TTL", "90s")
	t.Setenv("KTLINT_REDIS_URL", "redis://cache:6379/1")
	t.Setenv("KTLINT_HISTORY_DSN", "history.db")
	t.Setenv("KTLINT_S3_BUCKET", "lint")
	t.Setenv("KTLINT_S3_USE_PATH_STYLE", "true")
	t.Setenv("KTLINT_OTEL_ENABLED", "true")

	p := DefaultProject("/work")
	p.ApplyEnv()

	assert.True(t, p.Skip)
	assert.True(t, p.Experimental)
	assert.Equal(t, "build/reports", p.OutputDirectory)
	assert.Equal(t, 12, p.Cache.Size)
	assert.Equal(t, 90*time.Second, p.Cache.TTL)
	assert.Equal(t, "redis://cache:6379/1", p.Cache.RedisURL)
	assert.Equal(t, "history.db", p.History.DSN)
	assert.Equal(t, "lint", p.Publish.Bucket)
	assert.True(t, p.Publish.UsePathStyle)
	assert.True(t, p.Telemetry.Enabled)
	assert.NoError(t, p.Validate())
}

// TestGetEnv tests the getEnv helper function
func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		envValue     string
		want         string
	}{
		{
			name:         "returns env value when set",
			key:          "KTLINT_TEST_VAR",
			defaultValue: "default",
			envValue:     "custom",
			want:         "custom",
		},
		{
			name:         "returns default when env not set",
			key:          "KTLINT_TEST_VAR_NOT_SET",
			defaultValue: "default",
			want:         "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				t.Setenv(tt.key, tt.envValue)
			}

			assert.Equal(t, tt.want, getEnv(tt.key, tt.defaultValue))
		})
	}
}

func TestGetEnvHelpers_InvalidValues(t *testing.T) {
	t.Setenv("KTLINT_TEST_INT", "twelve")
	t.Setenv("KTLINT_TEST_DURATION", "soon")
	t.Setenv("KTLINT_TEST_BOOL", "nope")

	assert.Equal(t, 7, getEnvInt("KTLINT_TEST_INT", 7))
	assert.Equal(t, time.Second, getEnvDuration("KTLINT_TEST_DURATION", time.Second))
	assert.False(t, getEnvBool("KTLINT_TEST_BOOL", true))
}
