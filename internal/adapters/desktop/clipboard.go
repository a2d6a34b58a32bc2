package desktop

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// ErrNoClipboard means no clipboard helper was found on PATH.
var ErrNoClipboard = errors.New("no clipboard helper found")

// CommandClipboard writes to the system clipboard through the platform's
// helper program (pbcopy, wl-copy, xclip, xsel or clip.exe).
type CommandClipboard struct {
	lookPath func(string) (string, error)
	goos     string
}

func NewCommandClipboard() *CommandClipboard {
	return &CommandClipboard{lookPath: exec.LookPath, goos: runtime.GOOS}
}

func (c *CommandClipboard) candidates() [][]string {
	switch c.goos {
	case "darwin":
		return [][]string{{"pbcopy"}}
	case "windows":
		return [][]string{{"clip.exe"}}
	}
	return [][]string{
		{"wl-copy"},
		{"xclip", "-selection", "clipboard"},
		{"xsel", "--clipboard", "--input"},
		{"clip.exe"},
	}
}

func (c *CommandClipboard) command() ([]string, error) {
	for _, cand := range c.candidates() {
		if _, err := c.lookPath(cand[0]); err == nil {
			return cand, nil
		}
	}
	return nil, ErrNoClipboard
}

func (c *CommandClipboard) WriteText(ctx context.Context, text string) error {
	argv, err := c.command()
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = strings.NewReader(text)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("clipboard %s: %w: %s", argv[0], err, strings.TrimSpace(string(out)))
	}
	return nil
}
