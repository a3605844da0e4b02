package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conte777/mediarelay/config"
	"github.com/Conte777/mediarelay/internal/domain/relay/consts"
)

func TestRedactURL(t *testing.T) {
	assert.Equal(t, "https://relay.example/webhook/***", redactURL("https://relay.example/webhook/123:secret"))
	assert.Equal(t, "", redactURL(""))
	assert.Equal(t, "https://relay.example/", redactURL("https://relay.example/"))
}

func TestRootCmd_Commands(t *testing.T) {
	root := rootCmd()

	for _, path := range [][]string{{"serve"}, {"webhook", "set"}, {"webhook", "delete"}, {"webhook", "info"}, {"derive"}, {"send"}} {
		cmd, _, err := root.Find(path)
		assert.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
}

func TestPrintMirrors(t *testing.T) {
	cfg := &config.MediaConfig{MirrorHosts: []string{"https://host2.example", "https://host1.example"}}

	var out bytes.Buffer
	require.NoError(t, printMirrors(&out, cfg, "https://play.radiojavan.com/song/abc123"))

	assert.Contains(t, out.String(), "Filename: abc123.mp3")
	assert.Contains(t, out.String(), "Mirror 1: https://host2.example/")
	assert.Contains(t, out.String(), "Mirror 2: https://host1.example/")
}

func TestPrintMirrors_Unsupported(t *testing.T) {
	cfg := &config.MediaConfig{MirrorHosts: []string{"https://host2.example"}}

	var out bytes.Buffer
	err := printMirrors(&out, cfg, "https://play.radiojavan.com/playlist/abc")

	require.Error(t, err)
	assert.Contains(t, err.Error(), consts.UnsupportedMessage)
	assert.Empty(t, out.String())
}

func TestPrintMirrors_NoHosts(t *testing.T) {
	err := printMirrors(&bytes.Buffer{}, &config.MediaConfig{}, "https://play.radiojavan.com/song/abc123")
	require.Error(t, err)
}
