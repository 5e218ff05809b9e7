package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func captureOutput(f func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	f()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

func writeStackConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "wirectl.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const minimalStackConfig = `name = "minimal"

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
