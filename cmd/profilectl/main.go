// profilectl signs in to the learning platform from the command line and
// writes the rendered profile to an HTML file.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/zoneprofile/internal/adapters/platform"
	"github.com/okian/zoneprofile/internal/adapters/tokenstore"
	"github.com/okian/zoneprofile/internal/app"
	"github.com/okian/zoneprofile/internal/config"
	"github.com/okian/zoneprofile/internal/snapshot"
	"github.com/okian/zoneprofile/pkg/logger"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
)

// ctrl is built by the root command before any subcommand runs.
var ctrl *app.Controller

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "profilectl",
		Short:         "Sign in and snapshot a learning platform profile",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return setup(cmd)
		},
	}
	root.PersistentFlags().String("config", "", "YAML config file (default: $"+config.EnvConfigFile+")")
	root.PersistentFlags().String("token-file", "", "token file (overrides token_file)")
	root.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	root.AddCommand(newLoginCmd(), newLogoutCmd(), newSnapshotCmd(), newVersionCmd())
	return root
}

// setup loads config, initializes logging and wires the controller to the
// token file.
func setup(cmd *cobra.Command) error {
	ctx := cmd.Context()

	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = os.Getenv(config.EnvConfigFile)
	}
	cfg, err := config.LoadFile(ctx, path)
	if err != nil {
		return err
	}
	if tf, _ := cmd.Flags().GetString("token-file"); tf != "" {
		cfg.TokenFile = tf
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}

	if err := logger.InitWith(cmd.ErrOrStderr(), cfg.LogFormat); err != nil {
		return err
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		return err
	}

	store, err := tokenstore.OpenFile(cfg.TokenFile)
	if err != nil {
		return err
	}

	l := logger.Named("profilectl")
	clientOpts := []platform.Option{
		platform.WithTimeout(cfg.RequestTimeout()),
		platform.WithLogger(l.Named("platform")),
	}
	ctrl = app.New(
		platform.NewAuthClient(cfg.AuthURL, clientOpts...),
		platform.NewGraphQLClient(cfg.GraphQLURL, clientOpts...),
		store,
		app.WithLogger(l),
		// A one-shot command has nothing to time out.
		app.WithErrorLogoutDelay(0),
		app.WithEnhancedCharts(cfg.EnhancedCharts),
	)
	return nil
}

func newLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Exchange credentials for a token and store it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			identifier, _ := cmd.Flags().GetString("identifier")
			password, _ := cmd.Flags().GetString("password")
			if password == "" {
				password = os.Getenv("ZONEPROFILE_PASSWORD")
			}
			if identifier == "" || password == "" {
				return fmt.Errorf("%w: identifier and password are required", snapshot.ErrLogin)
			}
			view, err := snapshot.Login(cmd.Context(), ctrl, identifier, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", view.Profile.Stats.FullName())
			return nil
		},
	}
	cmd.Flags().StringP("identifier", "u", "", "username or email")
	cmd.Flags().StringP("password", "p", "", "password (default: $ZONEPROFILE_PASSWORD)")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return snapshot.Logout(cmd.Context(), ctrl)
		},
	}
}

func newSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render the profile of the signed-in user to an HTML file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, _ := cmd.Flags().GetString("out")
			charts, _ := cmd.Flags().GetString("charts-dir")
			stats, err := snapshot.Run(cmd.Context(), ctrl, &snapshot.Config{OutputFile: out, ChartsDir: charts})
			if err != nil {
				return err
			}
			for _, f := range stats.Files {
				fmt.Fprintln(cmd.OutOrStdout(), f)
			}
			return nil
		},
	}
	cmd.Flags().StringP("out", "o", "", "HTML output file (default: profile_<timestamp>.html)")
	cmd.Flags().String("charts-dir", "", "also write skills.svg and audit.svg to this directory")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "profilectl %s (%s)\n", version, commit)
		},
	}
}
