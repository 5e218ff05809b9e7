package main

import (
	"encoding/hex"
	"fmt"
	"os"

	logs "github.com/danmuck/smplog"
	"github.com/netaudio/wirecodec/field"
	"github.com/netaudio/wirecodec/internal/config"
	"github.com/netaudio/wirecodec/internal/observability"
	"github.com/netaudio/wirecodec/message"
	"github.com/spf13/cobra"
)

type encodeOptions struct {
	kind string
	seq  int64
	text string
	out  string
}

var encodeOpts = &encodeOptions{}

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Encode a sample message through the configured stack",
	RunE:  runEncode,
}

func init() {
	encodeCmd.Flags().StringVar(&encodeOpts.kind, "kind", "ping", "message kind to build: ping or pong")
	encodeCmd.Flags().Int64Var(&encodeOpts.seq, "seq", 1, "sequence number")
	encodeCmd.Flags().StringVar(&encodeOpts.text, "text", "hello", "text field value, ping only")
	encodeCmd.Flags().StringVarP(&encodeOpts.out, "out", "o", "-", "output file, or - for stdout (hex-encoded)")
}

func runEncode(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadStackConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	st, err := buildStack(cfg)
	if err != nil {
		return fmt.Errorf("build stack: %w", err)
	}

	msg, err := buildSampleMessage(encodeOpts.kind, encodeOpts.seq, encodeOpts.text)
	if err != nil {
		return err
	}

	frame, status := st.EncodeAppend(msg)
	observability.RecordEncode(cfg.Name, status.String())
	if !status.IsSuccess() {
		logs.Errf("wirectl encode: %s", status)
		return fmt.Errorf("encode failed: %s", status)
	}

	if encodeOpts.out == "-" {
		fmt.Println(hex.EncodeToString(frame))
		return nil
	}
	if err := os.WriteFile(encodeOpts.out, frame, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", encodeOpts.out, err)
	}
	logs.Infof("wrote %d bytes to %s", len(frame), encodeOpts.out)
	return nil
}

func buildSampleMessage(kind string, seq int64, text string) (message.Message, error) {
	factory, err := messageFactory(kind)
	if err != nil {
		return nil, err
	}
	msg := factory()
	switch m := msg.(type) {
	case *pingMessage:
		m.Seq.SetValue(seq)
		m.Text.SetValue(text)
	case *pongMessage:
		m.Seq.SetValue(seq)
	default:
		return nil, fmt.Errorf("don't know how to populate message kind %q", kind)
	}
	if r, ok := msg.(message.Refresher); ok {
		r.Refresh()
	}
	return msg, nil
}
