package main

import (
	"fmt"
	"os"

	logs "github.com/danmuck/smplog"
	"github.com/netaudio/wirecodec/internal/auth"
	"github.com/netaudio/wirecodec/internal/config"
	"github.com/spf13/cobra"
)

type adminOptions struct {
	token string
}

var adminOpts = &adminOptions{}

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Administrative subcommands gated behind a shared token",
	Long: `Administrative subcommands are sensitive enough (they can touch the
running configuration) that wirectl asks for --token or WIRECTL_ADMIN_TOKEN
before running one, validated the same way a live service would gate an
admin endpoint: a constant-time comparison against a shared secret.`,
	PersistentPreRunE: requireAdminToken,
}

var adminValidateCmd = &cobra.Command{
	Use:   "validate-config",
	Short: "Load and validate the configured stack definition, then exit",
	RunE:  runAdminValidateConfig,
}

func init() {
	adminCmd.PersistentFlags().StringVar(&adminOpts.token, "token", "", "admin token (falls back to WIRECTL_ADMIN_TOKEN)")
	adminCmd.AddCommand(adminValidateCmd)
}

func requireAdminToken(cmd *cobra.Command, args []string) error {
	validator := auth.StaticToken{Token: os.Getenv("WIRECTL_ADMIN_TOKEN")}
	if err := validator.Validate(adminOpts.token); err != nil {
		logs.Errf("wirectl admin: %v", err)
		return fmt.Errorf("admin command requires a --token matching WIRECTL_ADMIN_TOKEN: %w", err)
	}
	return nil
}

func runAdminValidateConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadStackConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if _, err := buildStack(cfg); err != nil {
		return fmt.Errorf("build stack: %w", err)
	}
	fmt.Printf("%s: %d layer(s), %d message(s), ok\n", cfg.Name, len(cfg.Layers), len(cfg.Messages))
	return nil
}
