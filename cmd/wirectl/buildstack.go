package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/netaudio/wirecodec/field"
	"github.com/netaudio/wirecodec/internal/config"
	"github.com/netaudio/wirecodec/layer"
	"github.com/netaudio/wirecodec/layer/crc"
	"github.com/netaudio/wirecodec/stack"
)

// buildStack assembles a stack.Stack from a loaded wirectl.toml definition.
// cfg.Layers is outer-to-inner (see config.LayerConfig): msg_id is always
// last and wraps the data
// layer directly, config.ValidateStackConfig already rejects anything
// else.
func buildStack(cfg config.StackConfig) (*stack.Stack, error) {
	alloc := layer.NewDynamicAllocator()
	for _, m := range cfg.Messages {
		factory, err := messageFactory(m.Kind)
		if err != nil {
			return nil, fmt.Errorf("message %q: %w", m.Name, err)
		}
		alloc.Register(m.ID, factory)
	}

	idIdx := len(cfg.Layers) - 1
	idCfg := cfg.Layers[idIdx]
	idFactory, err := idFieldFactory(idCfg)
	if err != nil {
		return nil, fmt.Errorf("layers[%d] (msg_id): %w", idIdx, err)
	}
	idLayer := layer.NewMsgIdLayer(idFactory, alloc, layer.NewMsgDataLayer())

	var current layer.Layer = idLayer
	ordered := []layer.Layer{idLayer}
	for i := idIdx - 1; i >= 0; i-- {
		lc := cfg.Layers[i]
		built, err := buildOuterLayer(lc, current)
		if err != nil {
			return nil, fmt.Errorf("layers[%d] (%s): %w", i, lc.Kind, err)
		}
		current = built
		ordered = append([]layer.Layer{current}, ordered...)
	}

	return stack.New(current, ordered...), nil
}

func buildOuterLayer(lc config.LayerConfig, next layer.Layer) (layer.Layer, error) {
	switch strings.ToLower(lc.Kind) {
	case "sync":
		prefix, err := hex.DecodeString(lc.Prefix)
		if err != nil {
			return nil, fmt.Errorf("prefix %q is not valid hex: %w", lc.Prefix, err)
		}
		return layer.NewSyncPrefixLayer(prefix, next), nil
	case "size":
		sizeFactory, err := idFieldFactory(lc)
		if err != nil {
			return nil, err
		}
		return layer.NewMsgSizeLayer(sizeFactory, next), nil
	case "checksum":
		algo, err := checksumAlgo(lc.Algo)
		if err != nil {
			return nil, err
		}
		return layer.NewChecksumLayer(lc.Width, algo, next), nil
	case "checksum_prefix":
		algo, err := checksumAlgo(lc.Algo)
		if err != nil {
			return nil, err
		}
		return layer.NewChecksumPrefixLayer(lc.Width, algo, next), nil
	default:
		return nil, fmt.Errorf("unsupported outer layer kind %q", lc.Kind)
	}
}

func idFieldFactory(lc config.LayerConfig) (layer.IDFieldFactory, error) {
	opts := []field.NumOption{endianOption(lc.Endian)}
	if lc.IDVarLength {
		opts = append(opts, field.WithVarLength(1, lc.Width))
	} else {
		opts = append(opts, field.WithFixedLength(lc.Width))
	}
	// Validate the options eagerly so a bad config fails at build time
	// rather than on the first decode.
	if _, err := field.NewIntValue(lc.Width, false, opts...); err != nil {
		return nil, err
	}
	return func() layer.IDField {
		f, _ := field.NewIntValue(lc.Width, false, opts...)
		return f
	}, nil
}

func endianOption(raw string) field.NumOption {
	if strings.EqualFold(strings.TrimSpace(raw), "little") {
		return field.WithEndian(field.LittleEndian)
	}
	return field.WithEndian(field.BigEndian)
}

func checksumAlgo(name string) (crc.Algo, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "crc32":
		return crc.CRC32IEEE, nil
	case "crc32c":
		return crc.CRC32Castagnoli, nil
	case "sum":
		return crc.SumBytes, nil
	default:
		return nil, fmt.Errorf("unknown checksum algo %q", name)
	}
}
