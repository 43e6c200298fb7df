package cli

import (
	"time"

	"github.com/mattfenwick/proxysieve/pkg/pipeline"
	"github.com/spf13/cobra"
)

type SourceArgs struct {
	SourceFiles  []string
	FetchTimeout time.Duration
	FetchWorkers int
	FetchRate    float64
}

type ProbeArgs struct {
	ProbeTimeout  time.Duration
	ProbeWorkers  int
	ProbeAttempts int
	SkipProtocols []string
	MinLatencyMs  float64
	MaxLatencyMs  float64
	Noisy         bool
}

type OutputArgs struct {
	OutputPath  string
	MetricsPath string
}

func (a *SourceArgs) addFlags(command *cobra.Command) {
	defaults := pipeline.DefaultConfig()
	command.Flags().StringSliceVarP(&a.SourceFiles, "source-file", "s", defaults.SourceFiles, "newline-delimited files of subscription urls; blank lines and lines starting with '#' are ignored")
	command.Flags().DurationVar(&a.FetchTimeout, "fetch-timeout", defaults.FetchTimeout, "timeout for fetching a single source")
	command.Flags().IntVar(&a.FetchWorkers, "fetch-workers", defaults.FetchWorkers, "number of sources to fetch simultaneously")
	command.Flags().Float64Var(&a.FetchRate, "fetch-rate", defaults.FetchRate, "maximum source fetches started per second; 0 for no limit")
}

func (a *SourceArgs) apply(config *pipeline.Config) {
	config.SourceFiles = a.SourceFiles
	config.FetchTimeout = a.FetchTimeout
	config.FetchWorkers = a.FetchWorkers
	config.FetchRate = a.FetchRate
}

func (a *ProbeArgs) addFlags(command *cobra.Command) {
	defaults := pipeline.DefaultConfig()
	command.Flags().DurationVar(&a.ProbeTimeout, "probe-timeout", defaults.ProbeTimeout, "timeout for a single tcp connect attempt")
	command.Flags().IntVar(&a.ProbeWorkers, "probe-workers", defaults.ProbeWorkers, "number of nodes to probe simultaneously")
	command.Flags().IntVar(&a.ProbeAttempts, "probe-attempts", defaults.ProbeAttempts, "tcp connect attempts per node")
	command.Flags().StringSliceVar(&a.SkipProtocols, "skip-protocol", nil, "additional protocol types that can't be checked with a tcp connect")
	command.Flags().Float64Var(&a.MinLatencyMs, "min-latency", defaults.MinLatencyMs, "smallest acceptable mean latency, in milliseconds (inclusive)")
	command.Flags().Float64Var(&a.MaxLatencyMs, "max-latency", defaults.MaxLatencyMs, "largest acceptable mean latency, in milliseconds (inclusive)")
	command.Flags().BoolVar(&a.Noisy, "noisy", false, "if true, print the result for every node")
}

func (a *ProbeArgs) apply(config *pipeline.Config) {
	config.ProbeTimeout = a.ProbeTimeout
	config.ProbeWorkers = a.ProbeWorkers
	config.ProbeAttempts = a.ProbeAttempts
	config.SkipProtocols = a.SkipProtocols
	config.MinLatencyMs = a.MinLatencyMs
	config.MaxLatencyMs = a.MaxLatencyMs
}

func (a *OutputArgs) addFlags(command *cobra.Command) {
	command.Flags().StringVarP(&a.OutputPath, "output", "o", pipeline.DefaultOutputPath, "path of the proxies file to write")
	command.Flags().StringVar(&a.MetricsPath, "metrics-path", "", "if set, write prometheus metrics for the run to this textfile")
}

func (a *OutputArgs) apply(config *pipeline.Config) {
	config.OutputPath = a.OutputPath
	config.MetricsPath = a.MetricsPath
}
