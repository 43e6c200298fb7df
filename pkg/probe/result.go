package probe

import (
	"fmt"

	"github.com/mattfenwick/proxysieve/pkg/nodes"
)

type SkipReason string

const (
	NotSkipped     SkipReason = ""
	SkipNoEndpoint SkipReason = "no-endpoint"
	SkipProtocol   SkipReason = "protocol"
)

// Result is the probe outcome for one node.  LatencyMs is the mean over Samples and is nil
// unless Reachable.
type Result struct {
	Node      *nodes.ProxyNode
	Reachable bool
	LatencyMs *float64
	Samples   []float64
	Attempts  int
	Skipped   SkipReason
}

func (r *Result) Outcome() string {
	switch {
	case r.Skipped != NotSkipped:
		return "skipped"
	case r.Reachable:
		return "reachable"
	default:
		return "unreachable"
	}
}

func (r *Result) String() string {
	switch {
	case r.Skipped != NotSkipped:
		return fmt.Sprintf("skipped (%s)", r.Skipped)
	case r.Reachable:
		return fmt.Sprintf("reachable, %.2f ms (%d/%d)", *r.LatencyMs, len(r.Samples), r.Attempts)
	default:
		return fmt.Sprintf("unreachable (0/%d)", r.Attempts)
	}
}

func mean(samples []float64) *float64 {
	if len(samples) == 0 {
		return nil
	}
	total := 0.0
	for _, s := range samples {
		total += s
	}
	avg := total / float64(len(samples))
	return &avg
}
