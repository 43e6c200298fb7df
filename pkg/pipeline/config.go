package pipeline

import (
	"time"

	"github.com/mattfenwick/proxysieve/pkg/fetch"
	"github.com/mattfenwick/proxysieve/pkg/filter"
	"github.com/mattfenwick/proxysieve/pkg/probe"
	"github.com/pkg/errors"
)

const (
	DefaultSourceFile = "./urls/clash.txt"
	DefaultOutputPath = "./sub/merged_proxies.yaml"
)

type Config struct {
	SourceFiles []string
	OutputPath  string

	FetchTimeout time.Duration
	FetchWorkers int
	// FetchRate caps fetch starts per second; 0 means unlimited.
	FetchRate float64

	ProbeTimeout  time.Duration
	ProbeWorkers  int
	ProbeAttempts int
	// SkipProtocols adds tags to the set of protocols that are never probed.
	SkipProtocols []string

	MinLatencyMs float64
	MaxLatencyMs float64

	// MetricsPath, if set, receives a prometheus textfile after the run.
	MetricsPath string
}

func DefaultConfig() *Config {
	return &Config{
		SourceFiles:   []string{DefaultSourceFile},
		OutputPath:    DefaultOutputPath,
		FetchTimeout:  fetch.DefaultTimeout,
		FetchWorkers:  fetch.DefaultWorkers,
		ProbeTimeout:  probe.DefaultTimeout,
		ProbeWorkers:  probe.DefaultWorkers,
		ProbeAttempts: probe.DefaultAttempts,
		MinLatencyMs:  filter.DefaultMinLatencyMs,
		MaxLatencyMs:  filter.DefaultMaxLatencyMs,
	}
}

func (c *Config) Window() filter.Window {
	return filter.Window{MinMs: c.MinLatencyMs, MaxMs: c.MaxLatencyMs}
}

func (c *Config) Validate() error {
	if c.OutputPath == "" {
		return errors.Errorf("output path must not be empty")
	}
	if c.FetchWorkers < 1 || c.ProbeWorkers < 1 {
		return errors.Errorf("worker counts must be at least 1, found fetch=%d probe=%d", c.FetchWorkers, c.ProbeWorkers)
	}
	if c.ProbeAttempts < 1 {
		return errors.Errorf("probe attempts must be at least 1, found %d", c.ProbeAttempts)
	}
	if c.FetchTimeout <= 0 || c.ProbeTimeout <= 0 {
		return errors.Errorf("timeouts must be positive, found fetch=%s probe=%s", c.FetchTimeout, c.ProbeTimeout)
	}
	if c.FetchRate < 0 {
		return errors.Errorf("fetch rate must not be negative, found %v", c.FetchRate)
	}
	return c.Window().Validate()
}
