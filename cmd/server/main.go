// Package main is the entry point for the SkillSync server.
//
// Commands:
//
//	skillsync serve                         run the HTTP server
//	skillsync resolve --email a@b.com       print the profile a login would get
//
// Flags override SKILLSYNC_* environment variables, which override
// skillsync.yaml, which overrides built-in defaults (see internal/config).
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sakif/skillsync/internal/auth"
	"github.com/sakif/skillsync/internal/config"
	"github.com/sakif/skillsync/internal/identity"
	"github.com/sakif/skillsync/internal/server"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. All output goes to out so tests can
// capture it.
func newRootCmd(out io.Writer) *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:          "skillsync",
		Short:        "SkillSync peer-to-peer skill swap server",
		SilenceUsage: true,
	}
	root.SetOut(out)
	root.SetErr(out)

	root.PersistentFlags().String("config", "", "path to a YAML config file (default: ./skillsync.yaml if present)")
	root.PersistentFlags().String("env", "", "environment: development, production or test")
	root.PersistentFlags().String("admin-email", "", "the reserved administrator address")
	_ = v.BindPFlag("config", root.PersistentFlags().Lookup("config"))
	_ = v.BindPFlag("environment", root.PersistentFlags().Lookup("env"))
	_ = v.BindPFlag("adminemail", root.PersistentFlags().Lookup("admin-email"))

	root.AddCommand(newServeCmd(v), newResolveCmd(v, out))
	return root
}

func newServeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			logger := newLogger(cfg, cmd.OutOrStdout())

			if cfg.Session.Secret == config.DevSecret {
				logger.Warn("using the development session secret; set SKILLSYNC_SESSION_SECRET")
			}

			srv, err := server.New(cmd.Context(), cfg, logger)
			if err != nil {
				logger.Error("failed to create server", slog.String("error", err.Error()))
				return err
			}

			// Start blocks until Ctrl+C or SIGTERM.
			if err := srv.Start(cmd.Context()); err != nil {
				logger.Error("server error", slog.String("error", err.Error()))
				return err
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.Int("port", 0, "HTTP port (default 8080)")
	flags.String("storage", "", "session storage driver: sqlite, postgres, redis or memory")
	flags.String("db", "", "SQLite database path")
	flags.Duration("login-delay", 0, "simulated identity provider latency")
	_ = v.BindPFlag("http.port", flags.Lookup("port"))
	_ = v.BindPFlag("storage.driver", flags.Lookup("storage"))
	_ = v.BindPFlag("storage.sqlitepath", flags.Lookup("db"))
	_ = v.BindPFlag("session.logindelay", flags.Lookup("login-delay"))

	return cmd
}

// newResolveCmd prints the Session User the identity resolver would build
// for an email, which is handy for checking the admin address in a deployed
// config.
func newResolveCmd(v *viper.Viper, out io.Writer) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the profile a login with --email would produce",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			u := identity.NewResolver(cfg.AdminEmail).Resolve(email, "")

			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(u); err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "admin: %t\n", auth.IsAdmin(u))
			return err
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "login email to resolve")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

// newLogger returns a JSON logger in production and a human-readable text
// logger otherwise.
func newLogger(cfg *config.Config, out io.Writer) *slog.Logger {
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
