// Command mumcompanion runs the New Mum Companion API.
//
//	mumcompanion            # same as "serve"
//	mumcompanion serve
//	mumcompanion migrate    # create/upgrade SQL tables and exit
//
// Configuration comes from the environment (see internal/config), optionally
// seeded from a dotenv file.
//
// @title       New Mum Companion API
// @version     1.0
// @description Pregnancy companion backend: mother profiles, weekly content, birth guidance and notes.
// @BasePath    /
package main

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tbourn/newmum-companion/internal/config"
	"github.com/tbourn/newmum-companion/internal/sysutil"
)

// version is stamped at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		log.Error().Err(err).Msg("mumcompanion failed")
		os.Exit(1)
	}
}

type app struct {
	envFile string
	cfg     config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "mumcompanion",
		Short:         "New Mum Companion API",
		Version:       appVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "dotenv file read before the environment")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the SQL schema and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.migrate(cmd.Context())
		},
	})
	return root
}

// setup loads the dotenv file (a missing file is fine), reads the config and
// sets up the global logger.
func (a *app) setup() error {
	if err := loadEnvFile(a.envFile); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg
	sysutil.ConfigureLogging(os.Stdout, cfg.LogLevel, cfg.LogPretty)
	log.Logger = log.With().Str("version", appVersion()).Logger()
	return nil
}

func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func appVersion() string {
	return sysutil.FirstNonEmpty(os.Getenv("APP_VERSION"), version)
}
