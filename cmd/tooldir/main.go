// Command tooldir serves the tool directory API and manages its database.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"tooldir/internal/config"
)

// rootOptions holds the persistent flags shared by every subcommand
type rootOptions struct {
	configPath string
	envFile    string

	cfg     *config.Config
	cfgPath string
}

func newRootCmd() *cobra.Command {
	o := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "tooldir",
		Short: "Tool directory server",
		Long: `tooldir serves a directory of tools, articles, resources and a guestbook,
with a maker programme on top, over an HTTP JSON API.

Configuration is read from --config, $TOOLDIR_CONFIG or the standard search
paths, then overridden by TOOLDIR_* environment variables. A .env file is
loaded first when present.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.load()
		},
	}

	cmd.PersistentFlags().StringVarP(&o.configPath, "config", "c", "", "config file (default: search paths)")
	cmd.PersistentFlags().StringVar(&o.envFile, "env-file", ".env", "dotenv file loaded before the config")

	cmd.AddCommand(
		newServeCmd(o),
		newExportCmd(o),
		newImportCmd(o),
		newAuthCodeCmd(o),
		newHashPasswordCmd(),
		newConfigCmd(o),
	)
	return cmd
}

// load reads the dotenv file and the config, then applies the environment
func (o *rootOptions) load() error {
	if o.envFile != "" {
		if err := godotenv.Load(o.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", o.envFile, err)
		}
	}

	var err error
	if o.configPath != "" {
		o.cfg, o.cfgPath, err = config.LoadFromPath(o.configPath)
	} else {
		o.cfg, o.cfgPath, err = config.Load()
	}
	if err != nil {
		return err
	}
	o.cfg.ApplyEnv(os.Getenv)
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
