package libdiff

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

type Op int

const (
	Equal Op = iota
	Insert
	Delete
)

// Line is one line of a line diff, without its newline.
type Line struct {
	Op   Op
	Text string
}

// Lines diffs two texts by whole lines.
func Lines(from, to string) []Line {
	dmp := diffpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lineArray)
	var res []Line
	for _, d := range diffs {
		op := Equal
		switch d.Type {
		case diffpatch.DiffInsert:
			op = Insert
		case diffpatch.DiffDelete:
			op = Delete
		}
		text := strings.TrimSuffix(d.Text, "\n")
		for _, ln := range strings.Split(text, "\n") {
			res = append(res, Line{Op: op, Text: ln})
		}
	}
	return res
}

// Changed reports whether any line differs.
func Changed(lines []Line) bool {
	for _, ln := range lines {
		if ln.Op != Equal {
			return true
		}
	}
	return false
}

// Format renders changed lines with context lines around them, each
// hunk headed by the 1-based line number in the old text.
func Format(lines []Line, context int, useColor bool) string {
	keep := make([]bool, len(lines))
	for i, ln := range lines {
		if ln.Op == Equal {
			continue
		}
		for j := max(0, i-context); j <= min(len(lines)-1, i+context); j++ {
			keep[j] = true
		}
	}
	add, del, hunk := color.GreenString, color.RedString, color.CyanString
	if !useColor {
		add, del, hunk = fmt.Sprintf, fmt.Sprintf, fmt.Sprintf
	}
	var b strings.Builder
	oldLine := 1
	prev := false
	for i, ln := range lines {
		if keep[i] {
			if !prev {
				b.WriteString(hunk("@@ line %s @@", strconv.Itoa(oldLine)))
				b.WriteByte('\n')
			}
			switch ln.Op {
			case Insert:
				b.WriteString(add("+%s", ln.Text))
			case Delete:
				b.WriteString(del("-%s", ln.Text))
			default:
				b.WriteString(" " + ln.Text)
			}
			b.WriteByte('\n')
		}
		prev = keep[i]
		if ln.Op != Insert {
			oldLine++
		}
	}
	return b.String()
}
