package batch

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/pdiddy/pdfrename/internal/rename"
	"github.com/pdiddy/pdfrename/pkg/types"
)

// summaryOrder fixes the order outcomes appear in the summary line.
var summaryOrder = []types.Outcome{
	types.OutcomeRenamed,
	types.OutcomeRenamedCustom,
	types.OutcomePlanned,
	types.OutcomeSkippedExists,
	types.OutcomeSkippedCancelled,
	types.OutcomeMarkedBroken,
	types.OutcomeRemovedEmpty,
	types.OutcomeFailed,
}

// Summary counts outcomes across one run.
type Summary struct {
	Counts map[types.Outcome]int

	// NotDispatched counts files left unprocessed after cancellation.
	NotDispatched int
}

func newSummary() Summary {
	return Summary{Counts: make(map[types.Outcome]int)}
}

// Total returns the number of files handled.
func (s Summary) Total() int {
	n := 0
	for _, c := range s.Counts {
		n += c
	}
	return n
}

// Count returns the number of files with outcome o.
func (s Summary) Count(o types.Outcome) int {
	return s.Counts[o]
}

// HasFailures reports whether any file failed.
func (s Summary) HasFailures() bool {
	return s.Counts[types.OutcomeFailed] > 0
}

// String renders the counts in a fixed order, omitting zeros.
func (s Summary) String() string {
	var parts []string
	for _, o := range summaryOrder {
		if n := s.Counts[o]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, o))
		}
	}
	if len(parts) == 0 {
		parts = append(parts, "nothing to do")
	}
	line := fmt.Sprintf("Batch summary: %s (total: %d)", strings.Join(parts, ", "), s.Total())
	if s.NotDispatched > 0 {
		line += fmt.Sprintf(", %d not processed (interrupted)", s.NotDispatched)
	}
	return line
}

var outcomeStyles = map[types.Outcome]lipgloss.Style{
	types.OutcomeRenamed:          lipgloss.NewStyle().Foreground(lipgloss.Color("#00D787")),
	types.OutcomeRenamedCustom:    lipgloss.NewStyle().Foreground(lipgloss.Color("#00D787")),
	types.OutcomePlanned:          lipgloss.NewStyle().Foreground(lipgloss.Color("#5FAFD7")),
	types.OutcomeSkippedExists:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FFAF00")),
	types.OutcomeSkippedCancelled: lipgloss.NewStyle().Foreground(lipgloss.Color("#6C6C6C")),
	types.OutcomeMarkedBroken:     lipgloss.NewStyle().Foreground(lipgloss.Color("#FF87AF")),
	types.OutcomeRemovedEmpty:     lipgloss.NewStyle().Foreground(lipgloss.Color("#6C6C6C")),
	types.OutcomeFailed:           lipgloss.NewStyle().Foreground(lipgloss.Color("#FF005F")).Bold(true),
}

// tally serializes progress lines and summary updates from concurrent
// workers.
type tally struct {
	mu      sync.Mutex
	w       io.Writer
	quiet   bool
	total   int
	done    int
	summary Summary
}

func newTally(w io.Writer, total int, quiet bool) *tally {
	return &tally{w: w, total: total, quiet: quiet, summary: newSummary()}
}

// record counts one finished file and prints its progress line.
func (t *tally) record(outcome types.Outcome, path, detail string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.done++
	t.summary.Counts[outcome]++
	if t.quiet {
		return
	}
	label := string(outcome)
	if style, ok := outcomeStyles[outcome]; ok {
		label = style.Render(label)
	}
	line := fmt.Sprintf("[%d/%d] %s %s", t.done, t.total, label, path)
	if detail != "" {
		line += " -> " + detail
	}
	fmt.Fprintln(t.w, line)
}

func (t *tally) result() Summary {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.summary
}

// Summarize counts the outcomes of results produced outside a Runner, such
// as keyword stripping or retitling.
func Summarize(results []rename.Result) Summary {
	s := newSummary()
	for _, r := range results {
		s.Counts[r.Outcome]++
	}
	return s
}
