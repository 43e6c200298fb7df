package filter

import (
	"github.com/mattfenwick/proxysieve/pkg/nodes"
	"github.com/mattfenwick/proxysieve/pkg/probe"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultMinLatencyMs = 1.0
	DefaultMaxLatencyMs = 30.0
)

// Window is an inclusive latency range in milliseconds.
type Window struct {
	MinMs float64
	MaxMs float64
}

func DefaultWindow() Window {
	return Window{MinMs: DefaultMinLatencyMs, MaxMs: DefaultMaxLatencyMs}
}

func (w Window) Validate() error {
	if w.MinMs < 0 {
		return errors.Errorf("minimum latency must not be negative, found %v", w.MinMs)
	}
	if w.MinMs > w.MaxMs {
		return errors.Errorf("minimum latency %v is greater than maximum latency %v", w.MinMs, w.MaxMs)
	}
	return nil
}

func (w Window) Contains(latencyMs float64) bool {
	return w.MinMs <= latencyMs && latencyMs <= w.MaxMs
}

// Accepts reports whether a probe result qualifies: reachable, with latency inside the window.
func (w Window) Accepts(result *probe.Result) bool {
	return result != nil && result.Reachable && result.LatencyMs != nil && w.Contains(*result.LatencyMs)
}

// Keep returns the nodes of c whose result (results[i] for c.Proxies[i]) the window accepts,
// in their original relative order.  Neither input is modified.  Unreachable nodes and
// reachable nodes outside the window are both dropped.  A nil collection keeps nothing.
func (w Window) Keep(c *nodes.Collection, results []*probe.Result) *nodes.Collection {
	kept := nodes.NewCollection()
	if c == nil {
		return kept
	}
	for i, node := range c.Proxies {
		var result *probe.Result
		if i < len(results) {
			result = results[i]
		}
		if w.Accepts(result) {
			log.Infof("node (%s): %s is available, latency %.2f ms", node.Name, node.Address(), *result.LatencyMs)
			kept.Append(node)
		} else if result != nil && result.Reachable {
			log.Infof("node (%s): %s latency %.2f ms out of range [%v, %v]", node.Name, node.Address(), *result.LatencyMs, w.MinMs, w.MaxMs)
		} else {
			log.Infof("node (%s): %s unavailable", node.Name, node.Address())
		}
	}
	return kept
}
