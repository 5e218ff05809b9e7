package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// StackConfig describes one assembled protocol stack the way wirectl's
// config file lays it out: an ordered list of framing layers plus the
// message catalogue each numeric ID resolves to.
type StackConfig struct {
	Name     string          `toml:"name"`
	Layers   []LayerConfig   `toml:"layers"`
	Messages []MessageConfig `toml:"messages"`
}

// LayerConfig is one entry in the outer-to-inner layer chain. Kind selects
// which concrete layer.Layer gets built; the remaining fields are only
// meaningful for the kinds that use them.
type LayerConfig struct {
	Kind        string `toml:"kind"`   // sync | size | checksum | checksum_prefix | msg_id
	Prefix      string `toml:"prefix"` // sync: hex-encoded magic bytes
	Width       int    `toml:"width"`  // size/checksum/msg_id: field width in bytes
	Algo        string `toml:"algo"`   // checksum/checksum_prefix: crc32 | crc32c | sum
	Endian      string `toml:"endian"` // big | little, default big
	IDVarLength bool   `toml:"id_var_length"`
}

// MessageConfig registers one message ID against a named message kind the
// CLI knows how to build (see cmd/wirectl's message registry).
type MessageConfig struct {
	ID   int64  `toml:"id"`
	Kind string `toml:"kind"`
	Name string `toml:"name"`
}

// LoadStackConfig reads and validates a stack definition from path.
func LoadStackConfig(path string) (StackConfig, error) {
	var cfg StackConfig
	if err := loadToml(path, &cfg); err != nil {
		return StackConfig{}, err
	}
	if cfg.Name == "" {
		cfg.Name = "wirectl"
	}
	if err := ValidateStackConfig(cfg); err != nil {
		return StackConfig{}, err
	}
	return cfg, nil
}

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}

// ValidateStackConfig checks the layer chain and message table are
// well-formed before anything tries to build a stack.Stack from them.
func ValidateStackConfig(cfg StackConfig) error {
	if strings.TrimSpace(cfg.Name) == "" {
		return fmt.Errorf("stack config missing name")
	}
	if len(cfg.Layers) == 0 {
		return fmt.Errorf("stack config has no layers")
	}
	for i, l := range cfg.Layers {
		if err := ValidateLayerEntry(l); err != nil {
			return fmt.Errorf("layers[%d] invalid: %w", i, err)
		}
	}
	msgIDCount := 0
	for i, l := range cfg.Layers {
		if l.Kind != "msg_id" {
			continue
		}
		msgIDCount++
		if i != len(cfg.Layers)-1 {
			return fmt.Errorf("msg_id layer must be the last entry (it always wraps the data layer directly)")
		}
	}
	if msgIDCount == 0 {
		return fmt.Errorf("stack config must include a msg_id layer")
	}
	if msgIDCount > 1 {
		return fmt.Errorf("stack config must include exactly one msg_id layer, found %d", msgIDCount)
	}
	seen := make(map[int64]bool)
	for i, m := range cfg.Messages {
		if err := ValidateMessageEntry(m); err != nil {
			return fmt.Errorf("messages[%d] invalid: %w", i, err)
		}
		if seen[m.ID] {
			return fmt.Errorf("messages[%d] duplicate id %d", i, m.ID)
		}
		seen[m.ID] = true
	}
	return nil
}

func ValidateLayerEntry(l LayerConfig) error {
	switch strings.ToLower(strings.TrimSpace(l.Kind)) {
	case "sync":
		if strings.TrimSpace(l.Prefix) == "" {
			return fmt.Errorf("sync layer requires prefix")
		}
	case "size", "checksum", "checksum_prefix", "msg_id":
		if l.Width <= 0 {
			return fmt.Errorf("%s layer requires a positive width", l.Kind)
		}
	default:
		return fmt.Errorf("unknown layer kind: %s", l.Kind)
	}
	return nil
}

func ValidateMessageEntry(m MessageConfig) error {
	if strings.TrimSpace(m.Kind) == "" {
		return fmt.Errorf("kind is required")
	}
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}
