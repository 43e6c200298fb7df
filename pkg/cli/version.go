package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/mattfenwick/proxysieve/pkg/utils"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Overridden at build time with -ldflags "-X github.com/mattfenwick/proxysieve/pkg/cli.version=...".
var (
	version   = "development"
	gitSHA    = "development"
	buildTime = "development"
)

type BuildInfo struct {
	Version   string
	GitSHA    string
	BuildTime string
	GoVersion string
	Platform  string
}

func CurrentBuildInfo() *BuildInfo {
	return &BuildInfo{
		Version:   version,
		GitSHA:    gitSHA,
		BuildTime: buildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

func (b *BuildInfo) Table() string {
	tableString := &strings.Builder{}
	table := tablewriter.NewWriter(tableString)
	table.SetHeader([]string{"Version", "Git SHA", "Built", "Go", "Platform"})
	table.Append([]string{b.Version, b.GitSHA, b.BuildTime, b.GoVersion, b.Platform})
	table.Render()
	return tableString.String()
}

type VersionArgs struct {
	JSON bool
}

func SetupVersionCommand() *cobra.Command {
	args := &VersionArgs{}

	command := &cobra.Command{
		Use:   "version",
		Short: "print the proxysieve build this binary came from",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, as []string) error {
			return RunVersionCommand(cmd.OutOrStdout(), args)
		},
	}

	command.Flags().BoolVar(&args.JSON, "json", false, "print build information as json instead of a table")

	return command
}

func RunVersionCommand(out io.Writer, args *VersionArgs) error {
	info := CurrentBuildInfo()
	var err error
	if args.JSON {
		_, err = fmt.Fprintln(out, utils.JsonString(info))
	} else {
		_, err = fmt.Fprint(out, info.Table())
	}
	return errors.Wrapf(err, "unable to print build information")
}
