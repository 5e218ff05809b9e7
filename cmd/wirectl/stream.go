package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	logs "github.com/danmuck/smplog"
	"github.com/netaudio/wirecodec/field"
	"github.com/netaudio/wirecodec/internal/config"
	"github.com/netaudio/wirecodec/internal/observability"
	"github.com/netaudio/wirecodec/internal/resync"
	"github.com/spf13/cobra"
)

var streamCmd = &cobra.Command{
	Use:   "stream",
	Short: "Decode a continuous, possibly-corrupted frame stream from stdin",
	Long: `Unlike decode, stream never gives up: it wraps stdin in a resync.Reader
that waits for more bytes on StatusNotEnoughData and skips forward one
byte at a time past anything the stack rejects outright, the recovery
policy a live connection needs instead of treating a bad frame as fatal.`,
	RunE: runStream,
}

func runStream(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadStackConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	st, err := buildStack(cfg)
	if err != nil {
		return fmt.Errorf("build stack: %w", err)
	}

	reader := resync.New(os.Stdin, st).OnSkip(func(n int) {
		observability.RecordResyncSkip(cfg.Name, n)
		logs.Warnf("wirectl stream: skipped %d corrupt byte(s)", n)
	})

	for {
		msg, status, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			logs.Errf("wirectl stream: %v", err)
			return err
		}
		if status == field.StatusInvalidMsgData {
			logs.Warnf("wirectl stream: %s failed validation, keeping frame", describeMessage(msg))
		}
		fmt.Println(describeMessage(msg))
	}
}
