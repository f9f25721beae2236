package main

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"
)

// Protocol command vocabulary.
const (
	cmdGetEntries  = "get-entries"
	cmdSelectEntry = "select-entry:"
	cmdRemoveEntry = "remove-entry:"
	cmdClear       = "clear"
	cmdExport      = "export:"
	cmdQuit        = "quit"
)

// Gateway runs the line-oriented protocol over one duplex stream. It
// owns no state beyond routing; every effect is an App call.
type Gateway struct {
	app *App
}

func NewGateway(app *App) *Gateway {
	return &Gateway{app: app}
}

// Serve attaches the stream as a subscriber, emits the ready banner,
// and dispatches one command per line until quit, EOF, cancellation,
// or a dead stream. The returned error is nil on orderly shutdown.
func (g *Gateway) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	sub, id := g.app.broadcast.Add(w)
	defer g.app.broadcast.Remove(id)

	if err := sub.send(readyMessage{Type: msgReady}); err != nil {
		return err
	}

	// Reads run on their own goroutine: a cancelled context must end the
	// session even while Scan is blocked on a quiet stream, or shutdown
	// never reaches the forced history flush.
	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64<<10), 1<<20)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if line == cmdQuit {
				return nil
			}
			if err := g.dispatch(line, sub); err != nil {
				return err
			}
		}
	}
}

// dispatch routes one command line. The returned error is a stream
// failure, not a command failure; command failures go to the client as
// error messages.
func (g *Gateway) dispatch(line string, sub *subscriber) error {
	switch {
	case line == cmdGetEntries:
		return sub.send(entriesMessage{Type: msgEntries, Data: entryMessages(g.app.history.Snapshot())})

	case strings.HasPrefix(line, cmdSelectEntry):
		rank, ok := parseRank(line, cmdSelectEntry)
		if !ok {
			return sub.send(textMessage{Type: msgError, Message: "Invalid index"})
		}
		var ackErr error
		if _, err := g.app.SelectEntry(rank, func() {
			ackErr = sub.send(indexMessage{Type: msgSelectSuccess, Index: rank})
		}); err != nil {
			return sub.send(textMessage{Type: msgError, Message: err.Error()})
		}
		return ackErr

	case strings.HasPrefix(line, cmdRemoveEntry):
		rank, ok := parseRank(line, cmdRemoveEntry)
		if !ok {
			return sub.send(textMessage{Type: msgError, Message: "Invalid index"})
		}
		var ackErr error
		if err := g.app.RemoveEntry(rank, func() {
			ackErr = sub.send(indexMessage{Type: msgRemoveSuccess, Index: rank})
		}); err != nil {
			return sub.send(textMessage{Type: msgError, Message: err.Error()})
		}
		return ackErr

	case line == cmdClear:
		var ackErr error
		g.app.ClearHistory(func() {
			ackErr = sub.send(textMessage{Type: msgSuccess, Message: "History cleared"})
		})
		return ackErr

	case strings.HasPrefix(line, cmdExport):
		dest := strings.TrimSpace(strings.TrimPrefix(line, cmdExport))
		if dest == "" {
			return sub.send(textMessage{Type: msgError, Message: "Export destination required"})
		}
		if err := g.app.Export(dest); err != nil {
			logger.Warn("export failed", "dest", dest, "error", err)
			return sub.send(textMessage{Type: msgError, Message: "Export failed"})
		}
		return sub.send(textMessage{Type: msgSuccess, Message: "History exported"})

	default:
		return sub.send(textMessage{Type: msgError, Message: "Unknown command"})
	}
}

func parseRank(line, prefix string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, prefix)))
	if err != nil {
		return 0, false
	}
	return n, true
}
