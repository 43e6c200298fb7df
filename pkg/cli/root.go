package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattfenwick/proxysieve/pkg/utils"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func RunRootCommand() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	command := setupRootCommand()
	if err := errors.Wrapf(command.ExecuteContext(ctx), "run root command"); err != nil {
		log.Fatalf("unable to run root command: %+v", err)
		os.Exit(1)
	}
}

type Flags struct {
	Verbosity string
}

func setupRootCommand() *cobra.Command {
	flags := &Flags{}
	command := &cobra.Command{
		Use:   "proxysieve",
		Short: "merge proxy subscriptions and keep the nodes that answer quickly",
		Long:  "fetch proxy subscription documents, merge their nodes into one list, and keep only the nodes whose tcp connect latency falls inside a window",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return utils.SetUpLogger(flags.Verbosity)
		},
	}

	command.PersistentFlags().StringVarP(&flags.Verbosity, "verbosity", "v", "info", "log level; one of [info, debug, trace, warn, error, fatal, panic]")

	command.AddCommand(SetupCollectCommand())
	command.AddCommand(SetupFetchCommand())
	command.AddCommand(SetupProbeCommand())
	command.AddCommand(SetupVersionCommand())

	return command
}
