package reporter

import (
	"fmt"
	"io"
	"strconv"

	"github.com/beevik/etree"

	"github.com/platinummonkey/ktlint-report/pkg/linter"
)

// checkstyleVersion is the format version written to the root element
const checkstyleVersion = "8.0"

// Checkstyle collects violations and writes a checkstyle XML report
type Checkstyle struct {
	out  io.Writer
	doc  *etree.Document
	root *etree.Element
	file *etree.Element
}

// NewCheckstyle creates a checkstyle reporter
func NewCheckstyle(out io.Writer, _ Options) Reporter {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)
	root := doc.CreateElement("checkstyle")
	root.CreateAttr("version", checkstyleVersion)

	return &Checkstyle{out: out, doc: doc, root: root}
}

func (c *Checkstyle) OnLintError(file string, v linter.Violation, corrected bool) {
	if corrected {
		return
	}
	if c.file == nil || c.file.SelectAttrValue("name", "") != file {
		c.file = c.root.CreateElement("file")
		c.file.CreateAttr("name", file)
	}

	e := c.file.CreateElement("error")
	e.CreateAttr("line", strconv.Itoa(v.Line))
	e.CreateAttr("column", strconv.Itoa(v.Column))
	e.CreateAttr("severity", "error")
	e.CreateAttr("message", v.Message)
	e.CreateAttr("source", v.Rule)
}

func (c *Checkstyle) AfterFile(string) {
	c.file = nil
}

// AfterAll writes the document
func (c *Checkstyle) AfterAll() error {
	c.doc.Indent(4)
	if _, err := c.doc.WriteTo(c.out); err != nil {
		return fmt.Errorf("failed to write checkstyle report: %w", err)
	}
	return nil
}
