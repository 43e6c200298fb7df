package pipeline

import (
	"fmt"
	"strings"

	"github.com/mattfenwick/proxysieve/pkg/filter"
	"github.com/mattfenwick/proxysieve/pkg/probe"
	"github.com/olekukonko/tablewriter"
)

type Report struct {
	RunID          string
	OutputPath     string
	Window         filter.Window
	SourceURLs     int
	SourceFailures []error
	Aggregated     int
	Results        []*probe.Result
	Kept           int
}

// ProbeCounts returns how many nodes were reachable, unreachable and skipped.
func (r *Report) ProbeCounts() (int, int, int) {
	reachable, unreachable, skipped := 0, 0, 0
	for _, result := range r.Results {
		switch result.Outcome() {
		case "reachable":
			reachable++
		case "skipped":
			skipped++
		default:
			unreachable++
		}
	}
	return reachable, unreachable, skipped
}

func (r *Report) Summary() string {
	tableString := &strings.Builder{}
	tableString.WriteString(fmt.Sprintf("Summary for run %s:\n", r.RunID))
	table := tablewriter.NewWriter(tableString)
	table.SetHeader([]string{"Sources", "Failed", "Aggregated", "Reachable", "Unreachable", "Skipped", "Kept"})

	reachable, unreachable, skipped := r.ProbeCounts()
	table.Append([]string{
		intToString(r.SourceURLs),
		intToString(len(r.SourceFailures)),
		intToString(r.Aggregated),
		intToString(reachable),
		intToString(unreachable),
		intToString(skipped),
		intToString(r.Kept),
	})
	table.Render()
	return tableString.String()
}

// Table lists every probed node with its outcome and whether it survived the latency window.
func (r *Report) Table() string {
	tableString := &strings.Builder{}
	table := tablewriter.NewWriter(tableString)
	table.SetHeader([]string{"Name", "Type", "Address", "Result", "Kept"})
	table.SetAutoWrapText(false)

	for _, result := range r.Results {
		node := result.Node
		kept := "-"
		if r.Window.Accepts(result) {
			kept = "yes"
		}
		table.Append([]string{node.Name, node.Type, node.Address(), result.String(), kept})
	}
	table.Render()
	return tableString.String()
}

func (r *Report) FailureTable() string {
	tableString := &strings.Builder{}
	table := tablewriter.NewWriter(tableString)
	table.SetHeader([]string{"Source failure"})
	table.SetAutoWrapText(false)
	for _, err := range r.SourceFailures {
		table.Append([]string{err.Error()})
	}
	table.Render()
	return tableString.String()
}

func intToString(i int) string {
	return fmt.Sprintf("%d", i)
}
