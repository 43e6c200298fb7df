package pipeline

import (
	"context"

	"github.com/google/uuid"
	"github.com/mattfenwick/proxysieve/pkg/fetch"
	"github.com/mattfenwick/proxysieve/pkg/metrics"
	"github.com/mattfenwick/proxysieve/pkg/nodes"
	"github.com/mattfenwick/proxysieve/pkg/probe"
	"github.com/mattfenwick/proxysieve/pkg/sources"
	"github.com/mattfenwick/proxysieve/pkg/utils"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Pipeline runs the two sequential phases of a collection: fetching and merging every source,
// then probing and filtering the merged nodes.  Each phase is internally concurrent.
type Pipeline struct {
	Config  *Config
	Fetcher *fetch.Fetcher
	Runner  *probe.Runner
	Metrics *metrics.Metrics
	RunID   string

	log *logrus.Entry
}

func NewPipeline(config *Config) (*Pipeline, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.WithMessagef(err, "invalid configuration")
	}
	runID := uuid.NewString()
	m := metrics.NewMetrics()

	fetcher := fetch.NewFetcher(config.FetchTimeout, config.FetchWorkers, config.FetchRate)
	fetcher.Metrics = m

	runner := probe.NewRunner(probe.NewTCPConnector(), config.ProbeWorkers, config.ProbeAttempts, config.ProbeTimeout)
	for _, protocol := range config.SkipProtocols {
		runner.Policy = runner.Policy.With(protocol, false)
	}
	runner.Metrics = m

	return &Pipeline{
		Config:  config,
		Fetcher: fetcher,
		Runner:  runner,
		Metrics: m,
		RunID:   runID,
		log:     utils.RunLogger(runID),
	}, nil
}

func (p *Pipeline) newReport() *Report {
	return &Report{RunID: p.RunID, OutputPath: p.Config.OutputPath, Window: p.Config.Window()}
}

// Collect runs the whole pipeline: sources -> fetch -> merge -> write -> read -> probe -> filter -> write.
// Only failing to write (or re-read) the output file is an error; every per-source and
// per-node failure is absorbed and reported.
func (p *Pipeline) Collect(ctx context.Context) (*Report, error) {
	report := p.newReport()
	if err := p.aggregate(ctx, report); err != nil {
		return report, err
	}
	if err := p.check(ctx, p.Config.OutputPath, report); err != nil {
		return report, err
	}
	p.writeMetrics()
	return report, nil
}

// Aggregate fetches and merges every source and writes the merged, unprobed list.
func (p *Pipeline) Aggregate(ctx context.Context) (*Report, error) {
	report := p.newReport()
	if err := p.aggregate(ctx, report); err != nil {
		return report, err
	}
	p.writeMetrics()
	return report, nil
}

// Check probes and filters the nodes stored at inputPath and writes the survivors to the output path.
func (p *Pipeline) Check(ctx context.Context, inputPath string) (*Report, error) {
	report := p.newReport()
	if err := p.check(ctx, inputPath, report); err != nil {
		return report, err
	}
	p.writeMetrics()
	return report, nil
}

func (p *Pipeline) aggregate(ctx context.Context, report *Report) error {
	urls, err := sources.LoadURLs(p.Config.SourceFiles)
	if err != nil {
		p.log.Warnf("some source lists could not be read: %v", err)
	}
	report.SourceURLs = len(urls)
	p.log.Infof("processing %d urls", len(urls))

	results := p.Fetcher.FetchAll(ctx, urls)
	collection, failures := fetch.Aggregate(results)
	report.SourceFailures = failures
	report.Aggregated = collection.Len()
	if collection.Len() == 0 {
		p.log.Warnf("no proxies collected from %d sources, writing an empty list", len(urls))
	}

	if err := nodes.WriteFile(p.Config.OutputPath, collection); err != nil {
		p.log.Errorf("unable to save %d merged proxies to %s: %+v", collection.Len(), p.Config.OutputPath, err)
		return errors.WithMessagef(err, "unable to save merged proxies")
	}
	p.log.Infof("aggregation completed: %d proxies saved to %s", collection.Len(), p.Config.OutputPath)
	return nil
}

func (p *Pipeline) check(ctx context.Context, inputPath string, report *Report) error {
	collection, err := nodes.ReadFile(inputPath)
	if err != nil {
		p.log.Errorf("unable to load proxies from %s: %+v", inputPath, err)
		return errors.WithMessagef(err, "unable to load proxies to check")
	}
	if collection.Len() == 0 {
		p.log.Warnf("no proxies found to check in %s", inputPath)
		if inputPath != p.Config.OutputPath {
			return p.save(collection, report)
		}
		return nil
	}

	p.log.Infof("probing %d proxies with %d workers", collection.Len(), p.Runner.Workers)
	results := p.Runner.ProbeAll(ctx, collection)
	report.Results = results

	kept := report.Window.Keep(collection, results)
	return p.save(kept, report)
}

func (p *Pipeline) save(kept *nodes.Collection, report *Report) error {
	report.Kept = kept.Len()
	p.Metrics.SetKept(kept.Len())
	if err := nodes.WriteFile(p.Config.OutputPath, kept); err != nil {
		p.log.Errorf("unable to save %d available proxies to %s: %+v", kept.Len(), p.Config.OutputPath, err)
		return errors.WithMessagef(err, "unable to save available proxies")
	}
	p.log.Infof("available proxies updated and saved to %s: kept %d", p.Config.OutputPath, kept.Len())
	return nil
}

func (p *Pipeline) writeMetrics() {
	if p.Config.MetricsPath == "" {
		return
	}
	if err := p.Metrics.WriteTextfile(p.Config.MetricsPath); err != nil {
		p.log.Warnf("%v", err)
	}
}
