package main

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"
)

func TestProtocolReadyBanner(t *testing.T) {
	app, _ := newTestApp(t)

	msgs := runProtocol(t, app)
	if len(msgs) != 1 || msgs[0].Type != msgReady {
		t.Fatalf("expected only the ready banner, got %#v", msgs)
	}
}

func TestProtocolGetEntries(t *testing.T) {
	app, _ := newTestApp(t)
	addText(t, app, "first", "second")

	msgs := runProtocol(t, app, cmdGetEntries)
	if len(msgs) != 2 || msgs[1].Type != msgEntries {
		t.Fatalf("expected ready then entries, got %#v", msgs)
	}

	data := msgs[1].Data
	if len(data) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(data))
	}
	if data[0].ID != 1 || data[0].Content != "second" || !data[0].IsCurrent {
		t.Fatalf("expected newest entry at rank 1, got %#v", data[0])
	}
	if data[1].ID != 2 || data[1].Content != "first" || data[1].IsCurrent {
		t.Fatalf("expected older entry at rank 2, got %#v", data[1])
	}
	if data[0].Type != "text" {
		t.Fatalf("expected text type on the wire, got %q", data[0].Type)
	}
}

func TestProtocolEmptyListingKeepsDataArray(t *testing.T) {
	app, _ := newTestApp(t)

	raw := runProtocolRaw(t, app, cmdGetEntries)
	if !bytes.Contains(raw, []byte(`"data":[]`)) {
		t.Fatalf("empty listing must still carry its data array:\n%s", raw)
	}
}

func TestProtocolSelectAcksBeforePush(t *testing.T) {
	app, backend := newTestApp(t)
	addText(t, app, "older", "newer")

	msgs := runProtocol(t, app, "select-entry:2")
	if len(msgs) != 3 {
		t.Fatalf("expected ready, ack, push; got %#v", msgs)
	}
	if msgs[1].Type != msgSelectSuccess || msgs[1].Index != 2 {
		t.Fatalf("expected select-success for index 2 before the push, got %#v", msgs[1])
	}
	if msgs[2].Type != msgEntries {
		t.Fatalf("expected entries push after the ack, got %#v", msgs[2])
	}
	if msgs[2].Data[0].Content != "older" || !msgs[2].Data[0].IsCurrent {
		t.Fatalf("expected selected entry promoted to rank 1, got %#v", msgs[2].Data)
	}

	if backend.Text() != "older" {
		t.Fatalf("expected selected entry written to clipboard, got %q", backend.Text())
	}
}

func TestProtocolRemoveEntry(t *testing.T) {
	app, _ := newTestApp(t)
	addText(t, app, "keep", "drop")

	msgs := runProtocol(t, app, "remove-entry:1")
	if len(msgs) != 3 {
		t.Fatalf("expected ready, ack, push; got %#v", msgs)
	}
	if msgs[1].Type != msgRemoveSuccess || msgs[1].Index != 1 {
		t.Fatalf("expected remove-success for index 1, got %#v", msgs[1])
	}
	data := msgs[2].Data
	if len(data) != 1 || data[0].Content != "keep" || !data[0].IsCurrent {
		t.Fatalf("expected remaining entry to become current, got %#v", data)
	}
}

func TestProtocolClear(t *testing.T) {
	app, _ := newTestApp(t)
	addText(t, app, "a", "b", "c")

	msgs := runProtocol(t, app, cmdClear)
	if len(msgs) != 3 {
		t.Fatalf("expected ready, ack, push; got %#v", msgs)
	}
	if msgs[1].Type != msgSuccess || msgs[1].Message != "History cleared" {
		t.Fatalf("unexpected clear ack: %#v", msgs[1])
	}
	if len(msgs[2].Data) != 1 || msgs[2].Data[0].Content != "c" {
		t.Fatalf("expected only the current entry to survive clear, got %#v", msgs[2].Data)
	}
}

func TestProtocolErrorResponses(t *testing.T) {
	app, _ := newTestApp(t)
	addText(t, app, "only")

	cases := []struct {
		command string
		message string
	}{
		{"select-entry:abc", "Invalid index"},
		{"remove-entry:", "Invalid index"},
		{"bogus-command", "Unknown command"},
		{"export:", "Export destination required"},
	}
	for _, tc := range cases {
		msgs := runProtocol(t, app, tc.command)
		if len(msgs) != 2 || msgs[1].Type != msgError || msgs[1].Message != tc.message {
			t.Fatalf("command %q: expected error %q, got %#v", tc.command, tc.message, msgs)
		}
	}

	// Out-of-range ranks surface the store's error text.
	msgs := runProtocol(t, app, "select-entry:9")
	if msgs[1].Type != msgError || !strings.Contains(msgs[1].Message, "invalid index") {
		t.Fatalf("expected invalid index error for out-of-range rank, got %#v", msgs[1])
	}
	if app.history.Count() != 1 {
		t.Fatalf("failed commands must not mutate the history, got %d entries", app.history.Count())
	}
}

func TestProtocolQuitEndsSession(t *testing.T) {
	app, _ := newTestApp(t)
	addText(t, app, "x")

	// Commands after quit are never dispatched.
	msgs := runProtocol(t, app, cmdQuit, cmdGetEntries)
	if len(msgs) != 1 || msgs[0].Type != msgReady {
		t.Fatalf("expected the session to end at quit, got %#v", msgs)
	}
}

func TestProtocolServeReturnsOnCancel(t *testing.T) {
	app, _ := newTestApp(t)

	// An idle stream delivers no lines; cancellation alone must end the
	// session so shutdown can reach the final flush.
	pr, pw := io.Pipe()
	defer pw.Close()
	defer pr.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	var out bytes.Buffer
	go func() {
		done <- NewGateway(app).Serve(ctx, pr, &out)
	}()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("cancelled session should end cleanly, got %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("session did not end after cancellation")
	}
}

func TestProtocolIgnoresBlankLines(t *testing.T) {
	app, _ := newTestApp(t)

	msgs := runProtocol(t, app, "", "   ", cmdGetEntries)
	if len(msgs) != 2 || msgs[1].Type != msgEntries {
		t.Fatalf("expected blank lines skipped, got %#v", msgs)
	}
}
