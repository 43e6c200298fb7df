package probe

import (
	"context"
	"time"

	"github.com/mattfenwick/proxysieve/pkg/metrics"
	"github.com/mattfenwick/proxysieve/pkg/nodes"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultWorkers  = 10
	DefaultAttempts = 3
	DefaultTimeout  = 5 * time.Second
)

type Runner struct {
	Connector Connector
	Policy    Policy
	Workers   int
	Attempts  int
	Timeout   time.Duration
	Metrics   *metrics.Metrics
}

func NewRunner(connector Connector, workers int, attempts int, timeout time.Duration) *Runner {
	if connector == nil {
		connector = NewTCPConnector()
	}
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if attempts <= 0 {
		attempts = DefaultAttempts
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Runner{
		Connector: connector,
		Policy:    DefaultPolicy(),
		Workers:   workers,
		Attempts:  attempts,
		Timeout:   timeout,
	}
}

type job struct {
	Index int
	Node  *nodes.ProxyNode
}

type jobResult struct {
	Index  int
	Result *Result
}

// ProbeAll probes every node of the collection with at most p.Workers probes in flight
// (at least one).  results[i] belongs to c.Proxies[i].  Nodes without a usable server and
// port are never handed to a worker.
func (p *Runner) ProbeAll(ctx context.Context, c *nodes.Collection) []*Result {
	if c == nil {
		return []*Result{}
	}
	results := make([]*Result, c.Len())

	var jobs []*job
	for i, node := range c.Proxies {
		if !node.HasEndpoint() {
			log.Debugf("not probing %s: missing server or port", node.Name)
			results[i] = &Result{Node: node, Skipped: SkipNoEndpoint}
			p.Metrics.RecordProbe(results[i].Outcome(), nil)
			continue
		}
		jobs = append(jobs, &job{Index: i, Node: node})
	}

	size := len(jobs)
	jobsChan := make(chan *job, size)
	resultsChan := make(chan *jobResult, size)
	for i := 0; i < workerCount(p.Workers); i++ {
		go p.worker(ctx, jobsChan, resultsChan)
	}
	for _, j := range jobs {
		jobsChan <- j
	}
	close(jobsChan)

	for i := 0; i < size; i++ {
		r := <-resultsChan
		results[r.Index] = r.Result
	}
	return results
}

func workerCount(workers int) int {
	if workers < 1 {
		return 1
	}
	return workers
}

// worker probes until the jobs channel is closed, and only ever reports results: a failure
// for one node must not escape the goroutine and take its siblings with it.
func (p *Runner) worker(ctx context.Context, jobs <-chan *job, results chan<- *jobResult) {
	for j := range jobs {
		result := p.probeSafely(ctx, j.Node)
		p.Metrics.RecordProbe(result.Outcome(), result.LatencyMs)
		results <- &jobResult{Index: j.Index, Result: result}
	}
}

func (p *Runner) probeSafely(ctx context.Context, node *nodes.ProxyNode) (result *Result) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("probe of %s panicked: %v", node, r)
			result = &Result{Node: node, Attempts: p.Attempts}
		}
	}()
	return p.Probe(ctx, node)
}

// Probe measures a single node: Attempts independent connects, each bounded by Timeout,
// averaged over the ones that succeed.  Protocols the policy marks as not probeable are
// reported unreachable without any connection being made.
func (p *Runner) Probe(ctx context.Context, node *nodes.ProxyNode) *Result {
	if !p.Policy.IsProbeable(node.Type) {
		log.Infof("skipping %s: protocol %s can't be checked over tcp", node.Name, node.Type)
		return &Result{Node: node, Skipped: SkipProtocol}
	}

	address := node.Address()
	var samples []float64
	for attempt := 1; attempt <= p.Attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			log.Debugf("abandoning probe of %s: %v", address, errors.Wrapf(err, "context done"))
			break
		}
		elapsed, err := p.Connector.Connect(ctx, address, p.Timeout)
		if err != nil {
			log.Debugf("attempt %d/%d to %s failed: %v", attempt, p.Attempts, address, err)
			continue
		}
		samples = append(samples, float64(elapsed)/float64(time.Millisecond))
	}

	latency := mean(samples)
	return &Result{
		Node:      node,
		Reachable: latency != nil,
		LatencyMs: latency,
		Samples:   samples,
		Attempts:  p.Attempts,
	}
}
