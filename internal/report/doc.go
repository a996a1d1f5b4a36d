// Package report renders the pet dashboard: a summary of the whole
// collection and a Markdown status report per pet, optionally converted to
// HTML and saved under the report directory.
package report
