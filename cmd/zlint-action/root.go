package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/DonIsaac/zlint-action/internal/domain-adapters/gateways"
	orchestrators "github.com/DonIsaac/zlint-action/internal/domain-orchestrators"
	"github.com/DonIsaac/zlint-action/internal/domain/entities"
	"github.com/DonIsaac/zlint-action/internal/domain/interfaces"
	"github.com/DonIsaac/zlint-action/internal/external-adapters/actions"
	"github.com/DonIsaac/zlint-action/internal/external-adapters/slogger"
	"github.com/DonIsaac/zlint-action/internal/external-adapters/yaml"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type options struct {
	envFile    string
	actionFile string
	gitPath    string
	workDir    string
	debug      bool
}

// reportedError marks an error that has already been logged
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "zlint-action",
		Short: "Run ZLint on a repository from GitHub Actions",
		Long: `zlint-action locates or downloads a ZLint binary and lints the repository.

Inputs are read from flags, then INPUT_* environment variables, then the
defaults declared in action.yml. On pull requests with diff-only enabled,
only files changed relative to the base branch are linted.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAction(cmd.Context(), cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.String(entities.InputBinary, "", "Path to an existing ZLint binary")
	flags.String(entities.InputVersion, "", "ZLint release to download (vX.Y.Z or latest)")
	flags.Bool(entities.InputDiffOnly, false, "Only lint files changed by the pull request")
	flags.String(entities.InputChecksum, "", "Expected SHA256 of the downloaded binary")
	flags.String(entities.InputPublicKey, "", "Armored OpenPGP public key, or a path to one, used to verify the download")
	flags.String(entities.InputSignature, "", "URL of the detached signature checked with --public-key (default <artifact url>.asc)")
	flags.StringVar(&opts.envFile, "env-file", "", "Load environment variables from a dotenv file")
	flags.StringVar(&opts.actionFile, "action-file", "", "action.yml to read input defaults from (default $GITHUB_ACTION_PATH/action.yml)")
	flags.StringVar(&opts.gitPath, "git", "git", "git executable")
	flags.StringVarP(&opts.workDir, "directory", "C", "", "Directory to lint (default current directory)")
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug logging outside GitHub Actions")

	return cmd
}

func runAction(ctx context.Context, cmd *cobra.Command, opts *options) error {
	if opts.envFile != "" {
		if err := godotenv.Load(opts.envFile); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", opts.envFile, err)
		}
	}

	logger := newLogger(opts.debug)
	logger.Debug("zlint-action " + Version)
	if err := execute(ctx, cmd, opts, logger); err != nil {
		logger.Error(err.Error())
		return &reportedError{err: err}
	}
	return nil
}

func execute(ctx context.Context, cmd *cobra.Command, opts *options, logger interfaces.Logger) error {
	meta, err := loadMetadata(opts.actionFile)
	if err != nil {
		return err
	}
	if meta == nil {
		logger.Debug("No action.yml found, using built-in defaults")
	}

	inputs := actions.Chain(
		newFlagInputs(cmd.Flags()),
		actions.NewEnvInputs(),
		actions.Defaults(meta),
	)

	downloader := gateways.NewDownloader("", "zlint-action/"+Version, logger)
	locator := gateways.NewBinaryLocator(downloader, gateways.NewArtifactVerifier(), logger, gateways.BinaryLocatorConfig{})

	cfg, err := orchestrators.NewConfigAssembler(inputs, locator, logger).Assemble(ctx)
	if err != nil {
		return err
	}

	event, err := actions.EventFromEnv()
	if err != nil {
		logger.Warn("Could not read the workflow event payload", interfaces.F("error", err))
	}

	runner := orchestrators.NewInvocationOrchestrator(
		gateways.NewProcessLauncher(),
		event,
		logger,
		orchestrators.InvocationOrchestratorConfig{
			GitPath:    opts.gitPath,
			WorkingDir: opts.workDir,
		},
	)
	return runner.Run(ctx, cfg)
}

// loadMetadata reads action.yml. A missing file at the default location is
// not an error; an explicitly requested one is.
func loadMetadata(actionFile string) (*entities.ActionMetadata, error) {
	explicit := actionFile != ""
	if !explicit {
		dir := os.Getenv("GITHUB_ACTION_PATH")
		if dir == "" {
			return nil, nil
		}
		actionFile = filepath.Join(dir, "action.yml")
	}

	meta, err := yaml.NewActionParser().ParseFile(actionFile)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return meta, nil
}

func newLogger(debug bool) interfaces.Logger {
	if actions.IsActions() {
		return actions.NewLogger(os.Stdout)
	}
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slogger.New(os.Stderr, level)
}
