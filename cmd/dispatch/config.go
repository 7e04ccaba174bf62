package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/dispatch/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage dispatch configuration",
}

var configInitFlags struct {
	global bool
	force  bool
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a dispatch configuration file",
	Long: `Create a dispatch configuration file with sensible defaults.

By default, creates a project config at ./dispatch.yml.
Use --global to create ~/.config/dispatch/dispatch.yml instead.`,
	RunE: runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		fmt.Print(string(out))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	configInitCmd.Flags().BoolVarP(&configInitFlags.global, "global", "g", false, "Create the global config instead of a project one")
	configInitCmd.Flags().BoolVarP(&configInitFlags.force, "force", "f", false, "Overwrite existing config file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	// Determine target path
	targetPath := config.ProjectPath()
	if configInitFlags.global {
		targetPath = config.GlobalPath()
	}

	if !configInitFlags.force && fileExists(targetPath) {
		return fmt.Errorf("config file already exists at %s\n\nUse --force to overwrite", targetPath)
	}

	// Start from the loaded values so flags and env carry over
	out := *cfg

	var err error
	if configInitFlags.global {
		err = config.WriteGlobal(&out)
	} else {
		err = config.WriteProject(&out)
	}
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Printf("Config written to: %s\n\n", targetPath)
	fmt.Println("Run 'dispatch call new' to get started.")
	return nil
}

// fileExists checks if a file exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
