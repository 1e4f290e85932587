// Package reporter formats lint violations.
//
// Reporters are discovered from a static Registry in a fixed order: maven,
// plain, json, checkstyle. The maven reporter writes "Style error" lines to the
// goal's Log; the others write to an io.Writer, usually a file named by the
// project's reporters configuration.
//
// A run calls OnLintError for every violation of a file, AfterFile once the
// file is done, and AfterAll when every file has been reported. Multi fans the
// calls out to several reporters.
package reporter
