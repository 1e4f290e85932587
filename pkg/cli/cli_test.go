package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

const editorconfig = `root = true

[*]
indent_style = space
indent_size = 4
insert_final_newline = true
`

// writeProject creates a project directory holding the given files
func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	files[".editorconfig"] = editorconfig
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir
}

// semicolonProject has one file with a single no-semi violation at 3:10
func semicolonProject(t *testing.T) string {
	return writeProject(t, map[string]string{
		"src/main/kotlin/example/Example.kt": "package example\n\nval x = 1;\n",
	})
}

// execute runs the root command with args, returning stdout and the log output
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func findCommand(t *testing.T, root *cobra.Command, name string) *cobra.Command {
	t.Helper()

	cmd, _, err := root.Find([]string{name})
	require.NoError(t, err)
	require.Equal(t, name, cmd.Name())
	return cmd
}

var separatorCell = regexp.MustCompile(`^:?-+:?$`)

// tableRows parses the markdown table rows of s into trimmed cells,
// skipping separator rows
func tableRows(s string) [][]string {
	var rows [][]string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "|") || !strings.HasSuffix(line, "|") {
			continue
		}

		var cells []string
		var cur strings.Builder
		body := line[1 : len(line)-1]
		for i := 0; i < len(body); i++ {
			switch {
			case body[i] == '\\' && i+1 < len(body) && body[i+1] == '|':
				cur.WriteString(`\|`)
				i++
			case body[i] == '|':
				cells = append(cells, strings.TrimSpace(cur.String()))
				cur.Reset()
			default:
				cur.WriteByte(body[i])
			}
		}
		cells = append(cells, strings.TrimSpace(cur.String()))

		separator := true
		for _, c := range cells {
			if !separatorCell.MatchString(c) {
				separator = false
				break
			}
		}
		if !separator {
			rows = append(rows, cells)
		}
	}
	return rows
}

// rowIndex returns the index of the first row starting with prefix, or -1.
// Header cells compare case-insensitively.
func rowIndex(rows [][]string, prefix ...string) int {
	for i, row := range rows {
		if len(row) < len(prefix) {
			continue
		}
		match := true
		for j, p := range prefix {
			if !strings.EqualFold(row[j], p) {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
