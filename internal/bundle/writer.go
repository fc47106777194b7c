// Package bundle assembles located source files into a single Markdown
// document with fenced code blocks.
package bundle

import (
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/calebws/srcmd/internal/locate"
	"github.com/calebws/srcmd/internal/output"
)

// baseTitle is the fixed document title. A project name, when known,
// is appended after a dash.
const baseTitle = "Combined source files"

// Writer produces the output document. The zero value is usable; the
// fields exist so tests can pin the clock and capture diagnostics.
type Writer struct {
	// Now supplies the header timestamp. Nil means time.Now.
	Now func() time.Time

	// Warn receives skip diagnostics. Nil discards them.
	Warn func(format string, args ...any)
}

// Result reports what a write produced.
type Result struct {
	// Output is the path of the written document.
	Output string `json:"output"`

	// Written is the number of file sections actually emitted.
	Written int `json:"files_written"`

	// Skipped lists display paths of files omitted for read or
	// decode failures.
	Skipped []string `json:"skipped,omitempty"`
}

// Title returns the document title, including the project name when known.
func Title(projectName string) string {
	if projectName == "" {
		return baseTitle
	}
	return baseTitle + " - " + projectName
}

// WriteDocument writes one Markdown document for the given candidates,
// truncating any existing file at outPath. Files that cannot be read or
// are not valid UTF-8 are skipped with a warning; everything else is
// fatal (the output handle is closed on all paths).
//
// Callers are expected to check for an empty candidate list before
// calling: an empty list still produces a header-only document.
func (w *Writer) WriteDocument(files []locate.File, outPath, title string) (Result, error) {
	out, err := os.Create(outPath)
	if err != nil {
		return Result{}, output.NewSystemErrorWithCause(
			fmt.Sprintf("creating output file %s", outPath), err)
	}

	result, writeErr := w.writeAll(out, files, outPath, title)
	if closeErr := out.Close(); writeErr == nil && closeErr != nil {
		writeErr = output.NewSystemErrorWithCause(
			fmt.Sprintf("closing output file %s", outPath), closeErr)
	}
	if writeErr != nil {
		return Result{}, writeErr
	}
	return result, nil
}

// writeAll emits the header and every section to the open handle.
func (w *Writer) writeAll(out *os.File, files []locate.File, outPath, title string) (Result, error) {
	result := Result{Output: outPath}

	if _, err := out.WriteString(w.header(title)); err != nil {
		return result, writeFailure(outPath, err)
	}

	for _, file := range files {
		content, ok := w.readText(file.Path)
		if !ok {
			result.Skipped = append(result.Skipped, locate.DisplayPath(file.Path))
			continue
		}
		if _, err := out.WriteString(formatSection(file, content)); err != nil {
			return result, writeFailure(outPath, err)
		}
		result.Written++
	}

	return result, nil
}

// header renders the title line and UTC generation timestamp.
func (w *Writer) header(title string) string {
	now := time.Now
	if w.Now != nil {
		now = w.Now
	}
	stamp := now().UTC().Format("2006-01-02T15:04:05") + "Z"
	return fmt.Sprintf("# %s\n\nGenerated: %s\n\n", title, stamp)
}

// readText reads a candidate file, reporting ok=false for read errors
// and content that is not valid UTF-8. Both cases warn and continue;
// per-file failures never abort the run.
func (w *Writer) readText(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		w.warnf("skipping unreadable file %s: %v", path, err)
		return "", false
	}
	if !utf8.Valid(data) {
		w.warnf("skipping non-text file %s", path)
		return "", false
	}
	return string(data), true
}

// warnf forwards to the Warn hook when set.
func (w *Writer) warnf(format string, args ...any) {
	if w.Warn != nil {
		w.Warn(format, args...)
	}
}

// formatSection renders one file section: separator rule, path heading,
// line count, and the fenced code block. Content is right-trimmed and
// emitted with exactly one trailing newline before the closing fence.
func formatSection(file locate.File, content string) string {
	var builder strings.Builder

	builder.WriteString("---\n\n")
	fmt.Fprintf(&builder, "## `%s`\n\n", locate.DisplayPath(file.Path))
	fmt.Fprintf(&builder, "_Size: %d lines_  \n\n", lineCount(content))
	fmt.Fprintf(&builder, "```%s\n", file.Language)
	builder.WriteString(strings.TrimRight(content, " \t\r\n"))
	builder.WriteString("\n```\n\n")

	return builder.String()
}

// lineCount counts line-break-delimited segments. A trailing newline
// does not start a new segment; empty content has zero lines.
func lineCount(content string) int {
	if content == "" {
		return 0
	}
	count := strings.Count(content, "\n")
	if !strings.HasSuffix(content, "\n") {
		count++
	}
	return count
}

// writeFailure wraps an output write error as a fatal system error.
func writeFailure(outPath string, err error) error {
	return output.NewSystemErrorWithCause(
		fmt.Sprintf("writing output file %s", outPath), err)
}
