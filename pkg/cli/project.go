package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/platinummonkey/ktlint-report/pkg/config"
	"github.com/platinummonkey/ktlint-report/pkg/log"
)

// addProjectFlags registers the flags overriding the project file
func addProjectFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("skip", false, "Skip the goal")
	cmd.Flags().Bool("experimental", false, "Enable the experimental rule set")
	cmd.Flags().Bool("android", false, "Use the Android Kotlin style guide")
	cmd.Flags().StringArray("reporter", nil,
		"Reporter as name[,output=path][,verbose][,group-by-file] (repeatable)")
	cmd.Flags().String("output-dir", "", "Report output directory")
	cmd.Flags().String("metrics-file", "", "Write Prometheus metrics to this textfile")
}

// loadProject loads the project of the directory given as first argument,
// then applies the environment and the flags
func loadProject(cmd *cobra.Command, args []string) (*config.Project, error) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	project, err := config.LoadFromDir(dir)
	if err != nil {
		return nil, err
	}
	project.ApplyEnv()

	if err := applyFlags(cmd, project); err != nil {
		return nil, err
	}
	return project, nil
}

func applyFlags(cmd *cobra.Command, p *config.Project) error {
	flags := cmd.Flags()

	for name, target := range map[string]*bool{
		"skip":         &p.Skip,
		"experimental": &p.Experimental,
		"android":      &p.Android,
	} {
		if flags.Lookup(name) == nil || !flags.Changed(name) {
			continue
		}
		v, err := flags.GetBool(name)
		if err != nil {
			return err
		}
		*target = v
	}

	for name, target := range map[string]*string{
		"output-dir":   &p.OutputDirectory,
		"metrics-file": &p.MetricsFile,
	} {
		if flags.Lookup(name) == nil || !flags.Changed(name) {
			continue
		}
		v, err := flags.GetString(name)
		if err != nil {
			return err
		}
		*target = v
	}

	if flags.Lookup("reporter") != nil && flags.Changed("reporter") {
		values, err := flags.GetStringArray("reporter")
		if err != nil {
			return err
		}
		reporters := make([]config.ReporterConfig, 0, len(values))
		for _, value := range values {
			rc, err := parseReporter(value)
			if err != nil {
				return err
			}
			reporters = append(reporters, rc)
		}
		p.Reporters = reporters
	}

	return nil
}

// parseReporter parses name[,output=path][,verbose][,group-by-file]
func parseReporter(value string) (config.ReporterConfig, error) {
	parts := strings.Split(value, ",")
	rc := config.ReporterConfig{Name: strings.TrimSpace(parts[0])}
	if rc.Name == "" {
		return rc, fmt.Errorf("invalid reporter %q: missing name", value)
	}

	for _, part := range parts[1:] {
		key, opt, _ := strings.Cut(strings.TrimSpace(part), "=")
		switch key {
		case "output":
			rc.Output = opt
		case "verbose":
			rc.Verbose = true
		case "group-by-file":
			rc.GroupByFile = true
		default:
			return rc, fmt.Errorf("invalid reporter %q: unknown option %q", value, key)
		}
	}
	return rc, nil
}

// logLevel resolves the level from --debug, --log-level and the project
func logLevel(cmd *cobra.Command, p *config.Project) (log.Level, error) {
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		return log.LevelDebug, nil
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		return log.ParseLevel(level)
	}
	if p == nil {
		return log.LevelInfo, nil
	}
	return log.ParseLevel(p.LogLevel)
}
