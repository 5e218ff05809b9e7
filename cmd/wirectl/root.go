package main

import (
	logs "github.com/danmuck/smplog"
	"github.com/netaudio/wirecodec/internal/logging"
	"github.com/netaudio/wirecodec/internal/observability"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "wirectl",
	Short: "Build, encode, and decode frames through a wirecodec protocol stack",
	Long: `wirectl is a small demonstration tool for the wirecodec field/message/
layer/stack packages. It assembles a protocol stack from a wirectl.toml
definition and lets you encode and decode frames against it from the
command line.

The sample message types it ships (ping, pong) are synthetic: they exist
to exercise the codec, not to model any real protocol.`,
	Version:           version,
	PersistentPreRunE: setup,
}

const version = "0.1.0"

func setup(cmd *cobra.Command, args []string) error {
	logging.ConfigureRuntime()
	observability.RegisterMetrics()
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "wirectl.toml", "path to a wirectl stack definition")
	rootCmd.AddCommand(initCmd, encodeCmd, decodeCmd, streamCmd, adminCmd)
}

// Execute runs the root command, the sole entry point cmd/wirectl/main.go
// calls.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		logs.Errf("wirectl: %v", err)
		return err
	}
	return nil
}
