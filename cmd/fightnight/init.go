package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ersonp/fightnight/internal/infrastructure/config"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize fightnight in the current directory",
		Long:  "Creates a .fightnight directory with default configuration and prepares the cache store.",
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	if config.Exists(cwd) {
		return fmt.Errorf("fightnight already initialized in %s", cwd)
	}

	if err := config.WriteDefault(cwd); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created %s\n", config.ConfigFilePath(cwd))

	err = withCache(cmd.Context(), func(c *cacheDeps) error {
		fmt.Fprintf(out, "Cache backend ready: %s\n", c.Config.Cache.Backend)
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "fightnight initialized successfully!")
	return nil
}
