package cli

import (
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/ktlint-report/pkg/config"
	"github.com/platinummonkey/ktlint-report/pkg/log"
)

func TestParseReporter(t *testing.T) {
	tests := []struct {
		value    string
		expected config.ReporterConfig
		wantErr  bool
	}{
		{value: "plain", expected: config.ReporterConfig{Name: "plain"}},
		{value: "json,output=target/ktlint.json", expected: config.ReporterConfig{Name: "json", Output: "target/ktlint.json"}},
		{value: "plain,verbose,group-by-file", expected: config.ReporterConfig{Name: "plain", Verbose: true, GroupByFile: true}},
		{value: " checkstyle , output=out.xml", expected: config.ReporterConfig{Name: "checkstyle", Output: "out.xml"}},
		{value: "", wantErr: true},
		{value: ",output=x", wantErr: true},
		{value: "plain,color", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			rc, err := parseReporter(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, rc)
		})
	}
}

func projectCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()

	cmd := &cobra.Command{Use: "test"}
	addProjectFlags(cmd)
	cmd.Flags().Bool("debug", false, "")
	cmd.Flags().String("log-level", "", "")
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestLoadProject_Flags(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"ktlint.yaml": "experimental: false\noutputDirectory: target/site\nreporters:\n  - name: json\n",
	})

	cmd := projectCmd(t,
		"--experimental",
		"--android",
		"--output-dir", "build/site",
		"--metrics-file", "build/ktlint.prom",
		"--reporter", "plain,verbose",
		"--reporter", "checkstyle,output=build/ktlint.xml",
	)

	project, err := loadProject(cmd, []string{dir})
	require.NoError(t, err)

	assert.True(t, project.Experimental)
	assert.True(t, project.Android)
	assert.False(t, project.Skip)
	assert.Equal(t, filepath.Join(dir, "build", "site"), project.OutputDir())
	assert.Equal(t, "build/ktlint.prom", project.MetricsFile)
	assert.Equal(t, []config.ReporterConfig{
		{Name: "plain", Verbose: true},
		{Name: "checkstyle", Output: "build/ktlint.xml"},
	}, project.Reporters)
}

func TestLoadProject_UnsetFlagsKeepProject(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"ktlint.yaml": "experimental: true\nreporters:\n  - name: json\n",
	})

	project, err := loadProject(projectCmd(t), []string{dir})
	require.NoError(t, err)

	assert.True(t, project.Experimental)
	assert.Equal(t, []config.ReporterConfig{{Name: "json"}}, project.Reporters)
}

func TestLoadProject_ExplicitFalse(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"ktlint.yaml": "experimental: true\n",
	})

	project, err := loadProject(projectCmd(t, "--experimental=false"), []string{dir})
	require.NoError(t, err)
	assert.False(t, project.Experimental)
}

func TestLoadProject_Environment(t *testing.T) {
	dir := writeProject(t, map[string]string{})
	t.Setenv("KTLINT_ANDROID", "true")
	t.Setenv("KTLINT_OUTPUT_DIR", "env/site")

	project, err := loadProject(projectCmd(t, "--output-dir", "flag/site"), []string{dir})
	require.NoError(t, err)

	assert.True(t, project.Android)
	assert.Equal(t, "flag/site", project.OutputDirectory)
}

func TestLoadProject_InvalidReporter(t *testing.T) {
	dir := writeProject(t, map[string]string{})

	_, err := loadProject(projectCmd(t, "--reporter", "plain,unknown"), []string{dir})
	assert.ErrorContains(t, err, "unknown option")
}

func TestLogLevel(t *testing.T) {
	project := config.DefaultProject(t.TempDir())
	project.LogLevel = "warn"

	tests := []struct {
		name     string
		args     []string
		expected log.Level
	}{
		{"project", nil, log.LevelWarn},
		{"flag", []string{"--log-level", "error"}, log.LevelError},
		{"debug wins", []string{"--log-level", "error", "--debug"}, log.LevelDebug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, err := logLevel(projectCmd(t, tt.args...), project)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, level)
		})
	}

	level, err := logLevel(projectCmd(t), nil)
	require.NoError(t, err)
	assert.Equal(t, log.LevelInfo, level)
}

func TestHistoryDSN(t *testing.T) {
	project := config.DefaultProject("/work/app")

	tests := []struct {
		dsn      string
		expected string
	}{
		{"sqlite://target/history.db", "sqlite:///work/app/target/history.db"},
		{"target/history.db", "sqlite:///work/app/target/history.db"},
		{"/var/lib/ktlint/history.db", "sqlite:///var/lib/ktlint/history.db"},
		{":memory:", ":memory:"},
		{"postgres://ci@db/ktlint", "postgres://ci@db/ktlint"},
	}

	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			project.History.DSN = tt.dsn
			assert.Equal(t, tt.expected, historyDSN(project))
		})
	}
}
