package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/DuarteFaria/clipz/clipback"
)

// Console is the interactive command surface for terminal use. Same
// operations as the protocol gateway, rendered for humans.
type Console struct {
	app *App
	out io.Writer
}

func NewConsole(app *App, out io.Writer) *Console {
	return &Console{app: app, out: out}
}

// Run reads commands until quit, EOF, or cancellation.
func (c *Console) Run(ctx context.Context, in io.Reader) {
	fmt.Fprintln(c.out, "clipz - clipboard history. Type 'help' for commands.")

	// Reads run on their own goroutine so a signal ends the loop even
	// while Scan is blocked waiting for input; shutdown must not hang
	// behind an idle terminal.
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		fmt.Fprint(c.out, "> ")
		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(c.out)
			return
		case l, ok := <-lines:
			if !ok {
				return
			}
			line = l
		}
		fields := strings.Fields(strings.TrimSpace(line))
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "list", "ls":
			c.printEntries()
		case "select", "s":
			c.withRank(fields, func(rank int) {
				if _, err := c.app.SelectEntry(rank, nil); err != nil {
					fmt.Fprintf(c.out, "error: %v\n", err)
					return
				}
				fmt.Fprintf(c.out, "copied entry %d to clipboard\n", rank)
			})
		case "remove", "rm":
			c.withRank(fields, func(rank int) {
				if err := c.app.RemoveEntry(rank, nil); err != nil {
					fmt.Fprintf(c.out, "error: %v\n", err)
					return
				}
				fmt.Fprintf(c.out, "removed entry %d\n", rank)
			})
		case "clear":
			c.app.ClearHistory(nil)
			fmt.Fprintln(c.out, "history cleared")
		case "export":
			if len(fields) < 2 {
				fmt.Fprintln(c.out, "usage: export <archive-path>")
				continue
			}
			if err := c.app.Export(fields[1]); err != nil {
				fmt.Fprintf(c.out, "error: %v\n", err)
				continue
			}
			fmt.Fprintf(c.out, "exported to %s\n", fields[1])
		case "wipe":
			if err := c.app.WipeAll(); err != nil {
				fmt.Fprintf(c.out, "error: %v\n", err)
				continue
			}
			fmt.Fprintln(c.out, "history wiped")
		case "help":
			fmt.Fprintln(c.out, "commands: list | select N | remove N | clear | export FILE | wipe | quit")
		case "quit", "exit", "q":
			return
		default:
			fmt.Fprintf(c.out, "unknown command %q, try 'help'\n", fields[0])
		}
	}
}

func (c *Console) withRank(fields []string, fn func(rank int)) {
	if len(fields) < 2 {
		fmt.Fprintf(c.out, "usage: %s <rank>\n", fields[0])
		return
	}
	rank, err := strconv.Atoi(fields[1])
	if err != nil {
		fmt.Fprintf(c.out, "error: %q is not a rank\n", fields[1])
		return
	}
	fn(rank)
}

func (c *Console) printEntries() {
	entries := entryMessages(c.app.history.Snapshot())
	if len(entries) == 0 {
		fmt.Fprintln(c.out, "history is empty")
		return
	}
	for _, e := range entries {
		marker := " "
		if e.IsCurrent {
			marker = "*"
		}
		fmt.Fprintf(c.out, "%s %2d. [%s] %s (%s)\n", marker, e.ID, e.Type, previewContent(e), formatAge(e.Timestamp))
	}
}

// previewContent shortens long text and annotates image scratch files
// with their size.
func previewContent(e entryMessage) string {
	content := e.Content
	if clipback.Kind(e.Type) == clipback.KindImage {
		if info, err := os.Stat(content); err == nil {
			return fmt.Sprintf("%s (%s)", content, clipback.HumanFileSize(info.Size()))
		}
	}
	content = strings.ReplaceAll(content, "\n", " ")
	const maxPreview = 60
	if len(content) > maxPreview {
		return content[:maxPreview] + "..."
	}
	return content
}

func formatAge(timestampMillis int64) string {
	diff := time.Now().Unix() - timestampMillis/1000
	switch {
	case diff < 5:
		return "just now"
	case diff < 60:
		return fmt.Sprintf("%ds ago", diff)
	case diff < 3600:
		return fmt.Sprintf("%dm ago", diff/60)
	case diff < 86400:
		return fmt.Sprintf("%dh ago", diff/3600)
	default:
		return fmt.Sprintf("%dd ago", diff/86400)
	}
}
