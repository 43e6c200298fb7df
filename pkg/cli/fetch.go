package cli

import (
	"github.com/mattfenwick/proxysieve/pkg/pipeline"
	"github.com/mattfenwick/proxysieve/pkg/utils"
	"github.com/spf13/cobra"
)

type FetchArgs struct {
	Sources SourceArgs
	Output  OutputArgs
	Noisy   bool
}

func SetupFetchCommand() *cobra.Command {
	args := &FetchArgs{}

	command := &cobra.Command{
		Use:   "fetch",
		Short: "fetch and merge every source without probing",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, as []string) {
			RunFetchCommand(cmd, args)
		},
	}

	args.Sources.addFlags(command)
	args.Output.addFlags(command)
	command.Flags().BoolVar(&args.Noisy, "noisy", false, "if true, print every source failure")

	return command
}

func RunFetchCommand(cmd *cobra.Command, args *FetchArgs) {
	config := pipeline.DefaultConfig()
	args.Sources.apply(config)
	args.Output.apply(config)

	p, err := pipeline.NewPipeline(config)
	utils.DoOrDie(err)

	report, err := p.Aggregate(cmd.Context())
	utils.DoOrDie(err)

	printReport(report, args.Noisy)
}
