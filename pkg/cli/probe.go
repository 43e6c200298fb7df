package cli

import (
	"github.com/mattfenwick/proxysieve/pkg/pipeline"
	"github.com/mattfenwick/proxysieve/pkg/utils"
	"github.com/spf13/cobra"
)

type CheckArgs struct {
	InputPath string
	Probe     ProbeArgs
	Output    OutputArgs
}

func SetupProbeCommand() *cobra.Command {
	args := &CheckArgs{}

	command := &cobra.Command{
		Use:   "probe",
		Short: "probe the nodes of an existing proxies file and keep the ones inside the latency window",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, as []string) {
			RunProbeCommand(cmd, args)
		},
	}

	command.Flags().StringVarP(&args.InputPath, "input", "i", "", "proxies file to probe; defaults to the output path, which is then rewritten in place")
	args.Probe.addFlags(command)
	args.Output.addFlags(command)

	return command
}

func RunProbeCommand(cmd *cobra.Command, args *CheckArgs) {
	config := pipeline.DefaultConfig()
	args.Probe.apply(config)
	args.Output.apply(config)

	input := args.InputPath
	if input == "" {
		input = config.OutputPath
	}

	p, err := pipeline.NewPipeline(config)
	utils.DoOrDie(err)

	report, err := p.Check(cmd.Context(), input)
	utils.DoOrDie(err)

	printReport(report, args.Probe.Noisy)
}
