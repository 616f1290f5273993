// Package selector asks the user to pick one profile from a list.
package selector

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/nvinuesa/gguser/internal/model"
)

// ErrCancelled is returned when the user dismisses the menu.
var ErrCancelled = errors.New("selection cancelled")

// Selector presents a single-choice menu. On a terminal it runs a full
// screen menu; otherwise it prints a numbered list and reads a line.
type Selector struct {
	in          io.Reader
	out         io.Writer
	interactive bool
}

// New returns a selector reading from in and drawing on out. The terminal
// menu is used only when in is a terminal.
func New(in *os.File, out io.Writer) *Selector {
	return &Selector{
		in:          in,
		out:         out,
		interactive: term.IsTerminal(int(in.Fd())),
	}
}

// NewPrompt returns a selector that always uses the numbered prompt.
func NewPrompt(in io.Reader, out io.Writer) *Selector {
	return &Selector{in: in, out: out}
}

// Select blocks until the user picks one of items and returns its key.
func (s *Selector) Select(ctx context.Context, title string, items []model.ListItem) (string, error) {
	if len(items) == 0 {
		return "", errors.New("nothing to select")
	}
	if s.interactive {
		return s.runMenu(ctx, title, items)
	}
	return s.prompt(ctx, title, items)
}

func (s *Selector) runMenu(ctx context.Context, title string, items []model.ListItem) (string, error) {
	p := tea.NewProgram(
		newMenu(title, items),
		tea.WithContext(ctx),
		tea.WithInput(s.in),
		tea.WithOutput(s.out),
	)
	final, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			return "", ErrCancelled
		}
		return "", fmt.Errorf("running menu: %w", err)
	}

	m, ok := final.(menu)
	if !ok || m.cancelled || m.chosen < 0 {
		return "", ErrCancelled
	}
	return items[m.chosen].Key, nil
}

// prompt reads either a list number or a profile key. Invalid answers are
// asked again; end of input cancels.
func (s *Selector) prompt(ctx context.Context, title string, items []model.ListItem) (string, error) {
	fmt.Fprintln(s.out, title)
	for i, item := range items {
		fmt.Fprintf(s.out, "  %d) %s  %s <%s>\n", i+1, item.Key, item.Name, item.Email)
	}

	scanner := bufio.NewScanner(s.in)
	for {
		if err := ctx.Err(); err != nil {
			return "", ErrCancelled
		}
		fmt.Fprintf(s.out, "Enter choice [1-%d]: ", len(items))
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			if err := scanner.Err(); err != nil {
				return "", fmt.Errorf("reading choice: %w", err)
			}
			return "", ErrCancelled
		}

		answer := strings.TrimSpace(scanner.Text())
		if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(items) {
			return items[n-1].Key, nil
		}
		for _, item := range items {
			if item.Key == answer {
				return item.Key, nil
			}
		}
		fmt.Fprintf(s.out, "Invalid choice: %q\n", answer)
	}
}
