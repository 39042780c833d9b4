package routes

import (
	"sort"
	"strings"
)

// ReportHeader is the first line of every route report.
const ReportHeader = "The following paths were found for the configured controllers:"

const noneLine = "   NONE"

// Lines derives the ordered log lines for the attribute-routed descriptors.
// Exact duplicates are dropped; ties keep their input order.
func Lines(descriptors []Descriptor) []LogLine {
	seen := make(map[LogLine]struct{}, len(descriptors))
	lines := make([]LogLine, 0, len(descriptors))
	for _, d := range descriptors {
		if d.AttributeRouteInfo == nil {
			continue
		}
		line := FromDescriptor(d)
		if _, dup := seen[line]; dup {
			continue
		}
		seen[line] = struct{}{}
		lines = append(lines, line)
	}

	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].Compare(lines[j]) < 0
	})
	return lines
}

// Render formats lines as a report. Every line, including the last, ends
// in "\n".
func Render(lines []LogLine) string {
	var b strings.Builder
	b.Grow(1024)

	b.WriteString(ReportHeader)
	b.WriteString("\n\n")

	if len(lines) == 0 {
		b.WriteString(noneLine)
		b.WriteString("\n")
		return b.String()
	}
	for _, l := range lines {
		b.WriteString(l.String())
		b.WriteString("\n")
	}
	return b.String()
}

// Report renders the report for descriptors.
func Report(descriptors []Descriptor) string {
	return Render(Lines(descriptors))
}
