package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DuarteFaria/clipz/clipback"
)

func newTestApp(t *testing.T) (*App, *clipback.FakeBackend) {
	t.Helper()
	t.Setenv("CLIPZ_HISTORY_FILE", filepath.Join(t.TempDir(), "history.json"))

	backend := clipback.NewFakeBackend()
	app, err := NewApp(BalancedConfig(), backend, t.TempDir())
	if err != nil {
		t.Fatalf("failed to build test app: %v", err)
	}
	return app, backend
}

func addText(t *testing.T, app *App, contents ...string) {
	t.Helper()
	for _, content := range contents {
		if !app.AddCapture(&clipback.Payload{Content: content, Kind: clipback.KindText}) {
			t.Fatalf("expected %q to be added to history", content)
		}
	}
}

// wireMessage is the union of every protocol response shape, for
// decoding a recorded session.
type wireMessage struct {
	Type    string         `json:"type"`
	Message string         `json:"message"`
	Index   int            `json:"index"`
	Data    []entryMessage `json:"data"`
}

// runProtocol feeds commands through a gateway session and returns
// every message it produced, in order. A quit is appended so the
// session ends cleanly.
func runProtocol(t *testing.T, app *App, commands ...string) []wireMessage {
	t.Helper()

	raw := runProtocolRaw(t, app, commands...)
	var msgs []wireMessage
	dec := json.NewDecoder(bytes.NewReader(raw))
	for dec.More() {
		var m wireMessage
		if err := dec.Decode(&m); err != nil {
			t.Fatalf("failed to decode protocol output: %v\n%s", err, raw)
		}
		msgs = append(msgs, m)
	}
	return msgs
}

func runProtocolRaw(t *testing.T, app *App, commands ...string) []byte {
	t.Helper()

	input := strings.Join(append(commands, cmdQuit), "\n") + "\n"
	var out bytes.Buffer
	if err := NewGateway(app).Serve(context.Background(), strings.NewReader(input), &out); err != nil {
		t.Fatalf("protocol session failed: %v", err)
	}
	return out.Bytes()
}
