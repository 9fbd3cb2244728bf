// Package cmd provides the root command and CLI setup for cup.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/rezi-labs/cup/internal/adapter"
	"github.com/rezi-labs/cup/internal/controller"
	"github.com/rezi-labs/cup/internal/domain"
	m "github.com/rezi-labs/cup/internal/model"
)

// verboseFlag forces debug logging.
var verboseFlag bool

// logFileFlag overrides the log file path.
var logFileFlag string

var (
	parallelFlag int
	dryRunFlag   bool
	reportFlag   string
	markerFlag   string
	remoteFlag   string
)

// newWorkflow builds the update workflow for one run. Tests replace it.
var newWorkflow = buildWorkflow

func init() {
	configureRootFlags(rootCmd)
}

const annotationHelp = `Annotate a line holding a version with a trailing comment:

  image: "nginx:1.25.0"     # [cup] GitHub nginx/nginx
  version = "0.3.1"         // [cup] owner/repo

Every annotated line is rewritten with the latest release (or tag) of the
named repository, keeping its quoting and trailing comment.`

const rootLongDescription = `Cup keeps version literals in source and config files up to date with the
latest GitHub releases.

` + annotationHelp

const updateLongDescription = `Scan the given directory (default: current directory) for annotations
and update every annotated version literal.

` + annotationHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "cup [path]",
		Short:        "Update annotated version literals to the latest release",
		Long:         rootLongDescription,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(logFileFlag, verboseFlag)
		},
		RunE: runUpdate,
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "enable debug logging")
	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, "", "log file path (default .cup.log)")

	cmd.PersistentFlags().IntVarP(&parallelFlag, parallelFlagName, "p", viper.GetInt(parallelConfigKey), "number of files processed in parallel (0 uses every CPU)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(parallelFlagName), parallelConfigKey)

	cmd.PersistentFlags().BoolVar(&dryRunFlag, dryRunFlagName, viper.GetBool(dryRunConfigKey), "show the changes as a diff without writing files")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(dryRunFlagName), dryRunConfigKey)

	cmd.PersistentFlags().StringVar(&reportFlag, reportFlagName, viper.GetString(reportConfigKey), "write a YAML report of the run to this file")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(reportFlagName), reportConfigKey)

	cmd.PersistentFlags().StringVar(&markerFlag, markerFlagName, viper.GetString(markerConfigKey), "token that introduces an annotation")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(markerFlagName), markerConfigKey)

	cmd.PersistentFlags().StringVar(&remoteFlag, remoteFlagName, viper.GetString(remoteConfigKey), "remote used when an annotation names none")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(remoteFlagName), remoteConfigKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// runUpdate is shared by the root command and the update subcommand.
func runUpdate(cmd *cobra.Command, args []string) error {
	cfg := loadRunConfig()

	return newWorkflow(cmd, cfg).Update(cmd.Context(), domain.UpdateArgs{
		Root:    parseRoot(args),
		Threads: cfg.Threads,
		DryRun:  cfg.DryRun,
		Report:  cfg.Report,
	})
}

// buildWorkflow wires the production adapters for one run.
func buildWorkflow(cmd *cobra.Command, cfg runConfig) domain.Workflow {
	fsAdapter := newSourceFSAdapter()
	resolver := adapter.NewRegistry().
		Register(m.RemoteGitHub, githubResolver(cfg))

	return domain.NewWorkflow(
		fsAdapter,
		adapter.NewReportStore(cfg.DryRun),
		controller.NewUI(cmd, isTerminal(cmd)),
		domain.NewAnnotationParser(domain.AnnotationConfig{
			Marker:        cfg.Marker,
			DefaultRemote: cfg.Remote,
		}),
		domain.NewOrchestrator(fsAdapter, resolver, domain.WithDryRun(cfg.DryRun)),
	)
}

// newSourceFSAdapter keeps cup's own configuration and log files out of the scan.
func newSourceFSAdapter() *adapter.LocalSourceFSAdapter {
	return adapter.NewLocalSourceFSAdapter(adapter.WithExcludedFiles(
		m.Path(configFilePath()),
		m.Path(activeLogPath),
	))
}

// githubResolver selects the GitHub lookup backend named by github.resolver.
func githubResolver(cfg runConfig) adapter.Resolver {
	switch cfg.Backend {
	case githubBackendGh:
		return adapter.NewGhCLIResolver(adapter.NewLocalCommandRunner(cfg.GitHub.Timeout))
	case "", githubBackendAPI:
	default:
		slog.Warn("unknown GitHub resolver, using the REST API", "resolver", cfg.Backend)
	}

	return adapter.NewGitHubResolver(cfg.GitHub)
}

func isTerminal(cmd *cobra.Command) bool {
	out, ok := cmd.OutOrStdout().(*os.File)
	return ok && controller.IsTTY(out)
}

func parseRoot(args []string) m.Path {
	if len(args) == 0 || args[0] == "" {
		return m.Path(".")
	}

	return m.Path(args[0])
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}
