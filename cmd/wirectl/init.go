package main

import (
	"fmt"

	logs "github.com/danmuck/smplog"
	"github.com/netaudio/wirecodec/internal/config"
	"github.com/spf13/cobra"
)

type initOptions struct {
	kind  string
	force bool
}

var initOpts = &initOptions{}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter wirectl.toml stack definition",
	Long: `Writes a starter stack definition to --config (default ./wirectl.toml)
so there's something concrete to edit. Two shapes are built in:

  minimal      sync + size + msg_id
  checksummed  sync + size + checksum + msg_id`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVar(&initOpts.kind, "kind", "minimal", "template kind: minimal or checksummed")
	initCmd.Flags().BoolVar(&initOpts.force, "force", false, "overwrite an existing file")
}

func runInit(cmd *cobra.Command, args []string) error {
	if err := config.WriteTemplate(configPath, initOpts.kind, initOpts.force); err != nil {
		logs.Errf("wirectl init: %v", err)
		return err
	}
	fmt.Printf("wrote %s stack definition to %s\n", initOpts.kind, configPath)
	return nil
}
