package config

import (
	"fmt"
	"os"
	"strings"
)

// Template returns a starter stack definition for the named shape, written
// out by `wirectl init` so a user has something concrete to edit rather
// than a blank file.
func Template(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "minimal":
		return minimalTemplate, nil
	case "checksummed":
		return checksummedTemplate, nil
	default:
		return "", fmt.Errorf("unknown config kind: %s", kind)
	}
}

func WriteTemplate(path, kind string, overwrite bool) error {
	template, err := Template(kind)
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}

const minimalTemplate = `name = "minimal"

[[layers]]
kind = "sync"
prefix = "ABCD"

[[layers]]
kind = "size"
width = 2

[[layers]]
kind = "msg_id"
width = 1

[[messages]]
id = 1
kind = "ping"
name = "Ping"

[[messages]]
id = 2
kind = "pong"
name = "Pong"
`

const checksummedTemplate = `name = "checksummed"

[[layers]]
kind = "sync"
prefix = "ABCD"

[[layers]]
kind = "size"
width = 2

[[layers]]
kind = "checksum"
width = 4
algo = "crc32"

[[layers]]
kind = "msg_id"
width = 1

[[messages]]
id = 1
kind = "ping"
name = "Ping"

[[messages]]
id = 2
kind = "pong"
name = "Pong"
`
