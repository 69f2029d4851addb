package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/magnifact/pdf-table-extractor/bootstrap"
	"github.com/magnifact/pdf-table-extractor/config"
	"github.com/magnifact/pdf-table-extractor/domain"
)

// userEnvFile is the dotenv file looked up in the XDG config directories.
const userEnvFile = "pdf2xlsx/.env"

// cli holds state shared by the subcommands.
type cli struct {
	envFile  string
	strategy string

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "pdf2xlsx",
		Short: "Extract tables from PDF documents into XLSX workbooks",
		Long: `pdf2xlsx runs the same extraction pipeline as the Lambda function.
Configuration is read from the environment, optionally seeded from a dotenv file.`,
		SilenceUsage:      true,
		PersistentPreRunE: c.load,
	}

	root.PersistentFlags().StringVar(&c.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	root.PersistentFlags().StringVar(&c.strategy, "strategy", "", "table detection strategy: lattice, stream or auto (overrides TABLE_STRATEGY)")

	root.AddCommand(
		c.convertCmd(),
		c.tablesCmd(),
		c.processCmd(),
		versionCmd(),
	)
	return root
}

// load reads the dotenv file and the configuration. Without --env-file a
// missing ./.env falls back to $XDG_CONFIG_HOME/pdf2xlsx/.env, and a missing
// fallback is not an error.
func (c *cli) load(cmd *cobra.Command, _ []string) error {
	envFile := c.envFile
	explicit := cmd.Flags().Changed("env-file")
	if !explicit {
		if _, err := os.Stat(envFile); errors.Is(err, fs.ErrNotExist) {
			if found, err := xdg.SearchConfigFile(userEnvFile); err == nil {
				envFile = found
			}
		}
	}

	if err := godotenv.Load(envFile); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	if c.strategy != "" {
		cfg.Strategy = domain.TableStrategy(strings.ToLower(strings.TrimSpace(c.strategy)))
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	c.cfg = cfg
	c.logger = bootstrap.NewLogger(cfg, cmd.ErrOrStderr())
	return nil
}
