package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"tooldir/internal/auth"
	"tooldir/internal/config"
)

func newAuthCodeCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "authcode",
		Short: "Manage maker invitation codes",
	}

	var points int
	generate := &cobra.Command{
		Use:   "generate",
		Short: "Issue a new invitation code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := o.open()
			if err != nil {
				return err
			}
			defer a.close()

			code, err := a.repos.AuthCodes.Generate(cmd.Context(), points)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d points)\n", code.Code, code.InitialPoints)
			return nil
		},
	}
	generate.Flags().IntVarP(&points, "points", "p", 0, "points credited on redemption (default 100)")

	list := &cobra.Command{
		Use:   "list",
		Short: "List invitation codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := o.open()
			if err != nil {
				return err
			}
			defer a.close()

			codes, err := a.repos.AuthCodes.List(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CODE\tPOINTS\tUSED BY\tUSED AT")
			for _, c := range codes {
				usedAt := "-"
				if c.UsedAt != nil {
					usedAt = c.UsedAt.Format(time.RFC3339)
				}
				usedBy := c.UsedBy
				if !c.IsUsed {
					usedBy = "-"
				}
				fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", c.Code, c.InitialPoints, usedBy, usedAt)
			}
			return tw.Flush()
		},
	}

	cmd.AddCommand(generate, list)
	return cmd
}

// newHashPasswordCmd prints a bcrypt hash for auth.admin_password_hash
func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print a bcrypt hash for the administrator password",
		Long: `Print a bcrypt hash suitable for auth.admin_password_hash or
TOOLDIR_ADMIN_PASSWORD_HASH. The password is read from standard input when
not given as an argument.`,
		Args: cobra.MaximumNArgs(1),
		// No config needed
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			var password string
			if len(args) == 1 {
				password = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("failed to read password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}
			if password == "" {
				return errors.New("password must not be empty")
			}
			hash, err := auth.HashPassword(password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

func newConfigCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if o.cfgPath == "" {
				fmt.Fprintln(w, "Config: defaults (no file found)")
			} else {
				fmt.Fprintf(w, "Config: %s\n", o.cfgPath)
			}
			fmt.Fprintln(w, o.cfg.Summary())
			return nil
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a default configuration file",
		Args:  cobra.MaximumNArgs(1),
		// Runs without an existing config
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.ConfigFileName
			if len(args) == 1 {
				path = args[0]
			}
			if !force && fileExists(path) {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.DefaultConfig().Save(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	cmd.AddCommand(show, initCmd)
	return cmd
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
