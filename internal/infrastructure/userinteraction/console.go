package userinteraction

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"leave-agent/internal/application/port/output"

	"github.com/fatih/color"
)

var _ output.UserInteractionPort = (*Console)(nil)

var (
	questionColor = color.New(color.FgYellow, color.Bold)
	promptColor   = color.New(color.FgCyan)
)

// Console talks to a human on a terminal. The agent blocks on it whenever a
// tool needs the user to answer or to act in the browser window.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:  bufio.NewReader(in),
		out: out,
	}
}

func (c *Console) AskQuestion(ctx context.Context, question string) (string, error) {
	questionColor.Fprintf(c.out, "\n[agent asks] %s\n", question)
	promptColor.Fprint(c.out, "> ")
	return c.readLine(ctx)
}

func (c *Console) WaitForUserAction(ctx context.Context, message string) error {
	questionColor.Fprintf(c.out, "\n[agent waits] %s\n", message)
	promptColor.Fprint(c.out, "press Enter when done ")
	_, err := c.readLine(ctx)
	return err
}

// readLine reads in a goroutine so a cancelled context unblocks the caller
// even while the terminal read is still pending.
func (c *Console) readLine(ctx context.Context) (string, error) {
	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		line, err := c.in.ReadString('\n')
		ch <- result{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.err != nil && res.err != io.EOF {
			return "", fmt.Errorf("reading user input failed: %w", res.err)
		}
		return strings.TrimSpace(res.line), nil
	}
}
