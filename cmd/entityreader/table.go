package main

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/width"

	"github.com/syssam/entityreader/export"
	"github.com/syssam/entityreader/property"
)

var kindColors = map[string]*color.Color{
	property.Identifier.String():    color.New(color.FgYellow, color.Bold),
	property.Column.String():        color.New(color.Reset),
	property.ReferenceOne.String():  color.New(color.FgCyan),
	property.ReferenceMany.String(): color.New(color.FgMagenta),
}

// renderTable prints one table per entity.
func renderTable(w io.Writer, snap *export.Snapshot) {
	heading := color.New(color.Bold)
	tw := tableWriter{upper: cases.Upper(language.Und), title: cases.Title(language.English)}
	for i, e := range snap.Entities {
		if i > 0 {
			fmt.Fprintln(w)
		}
		heading.Fprintln(w, e.Name)
		rows := make([][]string, 0, len(e.Properties))
		for _, p := range e.Properties {
			rows = append(rows, []string{p.Name, p.Kind, p.Target, annotations(p)})
		}
		tw.writeRows(w, []string{"property", "kind", "target", "annotations"}, rows)
	}
}

// tableWriter holds casers, which are not safe for concurrent use.
type tableWriter struct {
	upper cases.Caser
	title cases.Caser
}

func (tw tableWriter) writeRows(w io.Writer, headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = cellWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], cellWidth(tw.displayCell(i, cell)))
		}
	}

	bold := color.New(color.Bold, color.FgCyan)
	for i, h := range headers {
		bold.Fprint(w, padRight(tw.upper.String(h), widths[i]))
		if i < len(headers)-1 {
			fmt.Fprint(w, "  ")
		}
	}
	fmt.Fprintln(w)

	for _, row := range rows {
		for i, cell := range row {
			text := padRight(tw.displayCell(i, cell), widths[i])
			if c, ok := kindColors[cell]; ok && i == 1 {
				text = c.Sprint(text)
			}
			if i < len(row)-1 {
				text += "  "
			} else {
				text = strings.TrimRight(text, " ")
			}
			fmt.Fprint(w, text)
		}
		fmt.Fprintln(w)
	}
}

// displayCell renders kinds as words, e.g. "Reference One".
func (tw tableWriter) displayCell(col int, cell string) string {
	if col == 1 {
		return tw.title.String(strings.ReplaceAll(cell, "_", " "))
	}
	return cell
}

// annotations formats the defining annotation followed by the extras.
func annotations(p export.Property) string {
	parts := []string{formatAnnotation(p.Annotation)}
	for _, a := range p.Extras {
		parts = append(parts, "+"+formatAnnotation(a))
	}
	return strings.Join(parts, " ")
}

func formatAnnotation(a export.Annotation) string {
	if len(a.Attrs) == 0 {
		return a.Tag
	}
	attrs := make([]string, 0, len(a.Attrs))
	for _, k := range slices.Sorted(maps.Keys(a.Attrs)) {
		attrs = append(attrs, k+"="+a.Attrs[k])
	}
	return a.Tag + "(" + strings.Join(attrs, ",") + ")"
}

func padRight(s string, n int) string {
	if w := cellWidth(s); w < n {
		return s + strings.Repeat(" ", n-w)
	}
	return s
}

// cellWidth is the number of terminal columns s occupies. Wide and
// fullwidth runes take two.
func cellWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}
