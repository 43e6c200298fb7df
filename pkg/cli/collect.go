package cli

import (
	"fmt"

	"github.com/mattfenwick/proxysieve/pkg/pipeline"
	"github.com/mattfenwick/proxysieve/pkg/utils"
	"github.com/spf13/cobra"
)

type CollectArgs struct {
	Sources SourceArgs
	Probe   ProbeArgs
	Output  OutputArgs
}

func SetupCollectCommand() *cobra.Command {
	args := &CollectArgs{}

	command := &cobra.Command{
		Use:   "collect",
		Short: "fetch and merge every source, then keep only the nodes inside the latency window",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, as []string) {
			RunCollectCommand(cmd, args)
		},
	}

	args.Sources.addFlags(command)
	args.Probe.addFlags(command)
	args.Output.addFlags(command)

	return command
}

func RunCollectCommand(cmd *cobra.Command, args *CollectArgs) {
	config := pipeline.DefaultConfig()
	args.Sources.apply(config)
	args.Probe.apply(config)
	args.Output.apply(config)

	p, err := pipeline.NewPipeline(config)
	utils.DoOrDie(err)

	report, err := p.Collect(cmd.Context())
	utils.DoOrDie(err)

	printReport(report, args.Probe.Noisy)
}

func printReport(report *pipeline.Report, noisy bool) {
	if noisy {
		if len(report.SourceFailures) > 0 {
			fmt.Println(report.FailureTable())
		}
		if len(report.Results) > 0 {
			fmt.Println(report.Table())
		}
	}
	fmt.Println(report.Summary())
}
