package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jwalton/go-supportscolor"

	"github.com/vertti/ragcheck/pkg/check"
)

var (
	green  = "\033[32m"
	red    = "\033[31m"
	yellow = "\033[33m"
	dim    = "\033[2m"
	reset  = "\033[0m"
)

func init() {
	if !supportscolor.Stdout().SupportsColor {
		green, red, yellow, dim, reset = "", "", "", "", ""
	}
}

// PrintResult writes a check result with a coloured status marker, its
// detail lines and its metadata sorted by key.
func PrintResult(w io.Writer, r check.Result) {
	var marker, color string
	switch r.Status {
	case check.StatusOK:
		marker, color = "[OK]", green
	case check.StatusError:
		marker, color = "[ERROR]", yellow
	default:
		marker, color = "[FAIL]", red
	}
	indent := strings.Repeat(" ", len(marker)+1)

	_, _ = fmt.Fprintf(w, "%s%s%s %s\n", color, marker, reset, r.Name)
	for _, d := range r.Details {
		_, _ = fmt.Fprintf(w, "%s%s\n", indent, formatLabel(d))
	}

	keys := make([]string, 0, len(r.Metadata))
	for k := range r.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		_, _ = fmt.Fprintf(w, "%s%s\n", indent, formatLabel(k+": "+r.Metadata[k]))
	}
}

// PrintSummary writes the one-line aggregate.
func PrintSummary(w io.Writer, passed, total, failed, errored int) {
	color := green
	if passed != total {
		color = red
	}
	line := fmt.Sprintf("%d/%d checks succeeded", passed, total)
	if failed > 0 {
		line += fmt.Sprintf(", %d failed", failed)
	}
	if errored > 0 {
		line += fmt.Sprintf(", %d errored", errored)
	}
	_, _ = fmt.Fprintf(w, "\n%s%s%s\n", color, line, reset)
}

// formatLabel dims the "label:" prefix of a detail line.
func formatLabel(s string) string {
	idx := strings.Index(s, ": ")
	if idx <= 0 {
		return s
	}
	return dim + s[:idx+1] + reset + s[idx+1:]
}
