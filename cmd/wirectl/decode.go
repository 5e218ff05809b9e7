package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"time"

	logs "github.com/danmuck/smplog"
	"github.com/netaudio/wirecodec/field"
	"github.com/netaudio/wirecodec/internal/config"
	"github.com/netaudio/wirecodec/internal/observability"
	"github.com/spf13/cobra"
)

type decodeOptions struct {
	hex bool
}

var decodeOpts = &decodeOptions{}

var decodeCmd = &cobra.Command{
	Use:   "decode [file]",
	Short: "Decode every frame in a file (or stdin) through the configured stack",
	Long: `Reads a byte stream containing zero or more back-to-back frames and
decodes them one at a time, printing each message and its layer-by-layer
cached framing bytes (stack.Trace).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDecode,
}

func init() {
	decodeCmd.Flags().BoolVar(&decodeOpts.hex, "hex", false, "input is hex-encoded text rather than raw bytes")
}

func runDecode(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadStackConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	st, err := buildStack(cfg)
	if err != nil {
		return fmt.Errorf("build stack: %w", err)
	}

	raw, err := readInput(args)
	if err != nil {
		return err
	}
	if decodeOpts.hex {
		raw = bytes.TrimSpace(raw)
		decoded, err := hex.DecodeString(string(raw))
		if err != nil {
			return fmt.Errorf("decode hex input: %w", err)
		}
		raw = decoded
	}

	buf := raw
	frameNo := 0
	for len(buf) > 0 {
		started := time.Now()
		msg, consumed, missing, status := st.Decode(buf)
		observability.RecordDecode(cfg.Name, status.String(), time.Since(started))
		if status == field.StatusNotEnoughData {
			fmt.Printf("frame %d: incomplete, needs %d more byte(s)\n", frameNo, missing)
			return nil
		}
		if status == field.StatusInvalidMsgData {
			logs.Warnf("wirectl decode: frame %d failed validation, keeping frame", frameNo)
		} else if !status.IsSuccess() {
			logs.Errf("wirectl decode: frame %d: %s", frameNo, status)
			return fmt.Errorf("frame %d: %s", frameNo, status)
		}
		label := "frame"
		if status == field.StatusInvalidMsgData {
			label = "frame (invalid)"
		}
		fmt.Printf("%s %d: %s (%d bytes)\n", label, frameNo, describeMessage(msg), consumed)
		for _, c := range st.Trace() {
			fmt.Printf("  %-14s %x\n", c.Layer, c.Raw)
		}
		buf = buf[consumed:]
		frameNo++
	}
	return nil
}

func readInput(args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(args[0])
}
