package mojo

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	md "github.com/nao1215/markdown"

	"github.com/platinummonkey/ktlint-report/pkg/config"
)

// SiteName is the base name of the site report written to the output directory
const SiteName = "ktlint"

// SitePath returns the site report path of a project
func SitePath(p *config.Project) string {
	return filepath.Join(p.OutputDir(), SiteName+".md")
}

func writeSite(p *config.Project, outcome *Outcome) error {
	var buf bytes.Buffer
	if err := renderSite(&buf, outcome); err != nil {
		return fmt.Errorf("failed to render site report: %w", err)
	}

	path := SitePath(p)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write site report: %w", err)
	}
	return nil
}

func renderSite(w io.Writer, outcome *Outcome) error {
	summary := outcome.Summary()
	doc := md.NewMarkdown(w).
		H1("Ktlint Report").
		PlainTextf("Run %s, %s", md.Code(outcome.RunID), outcome.StartedAt.UTC().Format("2006-01-02 15:04:05 MST")).
		LF().
		H2("Summary").
		Table(md.TableSet{
			Header:    []string{"Files", "Files with violations", "Violations"},
			Rows:      [][]string{{strconv.Itoa(summary.TotalFiles), strconv.Itoa(summary.FilesWithErrors), strconv.Itoa(summary.TotalViolations)}},
			Alignment: []md.TableAlignment{md.AlignRight, md.AlignRight, md.AlignRight},
		})

	if summary.TotalViolations == 0 {
		doc.PlainText("No style violations found.")
		return doc.Build()
	}

	rules := make([]string, 0, len(summary.ByRule))
	for rule := range summary.ByRule {
		rules = append(rules, rule)
	}
	sort.Strings(rules)
	ruleRows := make([][]string, 0, len(rules))
	for _, rule := range rules {
		ruleRows = append(ruleRows, []string{md.Code(rule), strconv.Itoa(summary.ByRule[rule])})
	}
	doc.H2("Rules").Table(md.TableSet{
		Header:    []string{"Rule", "Violations"},
		Rows:      ruleRows,
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
	})

	doc.H2("Files")
	for _, result := range outcome.Results {
		if len(result.Violations) == 0 {
			continue
		}
		rows := make([][]string, 0, len(result.Violations))
		for _, v := range result.Violations {
			rows = append(rows, []string{
				strconv.Itoa(v.Line),
				strconv.Itoa(v.Column),
				md.Code(v.Rule),
				cell(v.Message),
			})
		}
		doc.H3(result.FilePath).Table(md.TableSet{
			Header:    []string{"Line", "Column", "Rule", "Message"},
			Rows:      rows,
			Alignment: []md.TableAlignment{md.AlignRight, md.AlignRight, md.AlignLeft, md.AlignLeft},
		})
	}

	return doc.Build()
}

func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
