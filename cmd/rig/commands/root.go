// Package commands implements the CLI commands for the rig build tool.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.trai.ch/rig/internal/adapters/config"
	"go.trai.ch/rig/internal/build"
	"go.trai.ch/rig/internal/core/domain"
	"go.trai.ch/rig/internal/core/ports"
)

// CLI represents the command line interface for rig.
type CLI struct {
	app     Application
	opts    Options
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Run(ctx context.Context, actionNames []string) error
	Actions() ([]*domain.Action, error)
	SetConfigLoader(loader ports.ConfigLoader)
}

// Options holds the global CLI options.
type Options struct {
	// ConfigFile is the manifest to load instead of rig.yaml.
	ConfigFile string
}

// RegisterFlags adds the global options to the given [*pflag.FlagSet].
func (o *Options) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&o.ConfigFile, "config", "c", config.DefaultFilename, "Manifest file to load")
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "rig",
		Short:         "Profiling and formatting actions for native build trees",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}
	c.opts.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		if c.opts.ConfigFile != config.DefaultFilename {
			a.SetConfigLoader(&config.FileConfigLoader{Filename: c.opts.ConfigFile})
		}
	}

	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput redirects command output. Used for testing.
func (c *CLI) SetOutput(w io.Writer) {
	c.rootCmd.SetOut(w)
	c.rootCmd.SetErr(w)
}
