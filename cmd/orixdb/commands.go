package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/orixdb/orixdb"
	"github.com/orixdb/orixdb/internal/config"
	"github.com/spf13/cobra"
)

// app holds state shared by all subcommands.
type app struct {
	stdin          io.Reader
	stdout, stderr io.Writer

	configPath string
	logLevel   string
	logFormat  string

	cfg    *config.Config
	logger *orixdb.Logger
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:           "orixdb",
		Short:         "Manage OrixDB stores",
		Long:          "orixdb creates store directories, checks their indexes and holds them open for serving.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig(cmd)
		},
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/orixdb/config.yaml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: DEBUG, INFO, WARN or ERROR")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "log format: text or json")

	root.AddCommand(
		newCreateCmd(a),
		newServeCmd(a),
		newInspectCmd(a),
	)
	return root
}

func (a *app) loadConfig(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" || a.logFormat != "" {
		if a.logLevel != "" {
			cfg.Logging.Level = a.logLevel
		}
		if a.logFormat != "" {
			cfg.Logging.Format = a.logFormat
		}
		config.ApplyDefaults(cfg)
		if err := config.Validate(cfg); err != nil {
			return err
		}
	}
	a.cfg = cfg

	opts := &slog.HandlerOptions{Level: cfg.Logging.SlogLevel()}
	if cfg.Logging.Format == "json" {
		a.logger = orixdb.NewLogger(slog.NewJSONHandler(a.stderr, opts))
	} else {
		a.logger = orixdb.NewLogger(slog.NewTextHandler(a.stderr, opts))
	}
	return nil
}

// storeDir picks the folder argument, then the configured store directory.
// An empty result means the working directory.
func (a *app) storeDir(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return a.cfg.Store.Directory
}

// openOptions builds the options shared by serve and inspect. The process
// logger replaces the manifest's logging mode only when the log flags were
// given on the command line.
func (a *app) openOptions(cmd *cobra.Command) []orixdb.Option {
	opts := []orixdb.Option{
		orixdb.WithConfirmer(a.confirmer()),
		orixdb.WithIOLimit(a.cfg.IO.ReadLimitBytesPerSec),
		orixdb.WithMaxConcurrentLoads(a.cfg.IO.MaxConcurrentLoads),
	}
	if cmd.Flags().Changed("log-level") || cmd.Flags().Changed("log-format") {
		opts = append(opts, orixdb.WithLogger(a.logger))
	}
	return opts
}

func (a *app) confirmer() orixdb.Confirmer {
	if a.cfg.Prompt.AssumeYes {
		return orixdb.Accept
	}
	return orixdb.ConfirmFunc(func(ctx context.Context, store, engine orixdb.Version) (bool, error) {
		if !a.interactive() {
			fmt.Fprintf(a.stderr, "%s store version %s is newer than engine version %s; set prompt.assume_yes to open it\n",
				styles.Warning.Render("Warning:"), store, engine)
			return false, nil
		}
		ok := false
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Store version %s is newer than engine version %s.", store, engine)).
				Description("Some features may be unavailable. Open it anyway?").
				Affirmative("Open").
				Negative("Cancel").
				Value(&ok),
		)).WithInput(a.stdin).WithOutput(a.stderr)
		if err := form.RunWithContext(ctx); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return false, nil
			}
			return false, err
		}
		return ok, nil
	})
}

// interactive reports whether stdin is a terminal a prompt can be shown on.
func (a *app) interactive() bool {
	f, ok := a.stdin.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
