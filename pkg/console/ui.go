// Package console renders the line-oriented menus of the application and
// reads answers from the terminal.
//
// Output is laid out in two ways. Centered lines are each centered on the
// terminal on their own. A block is a group of lines left-aligned to each
// other and centered as a whole, which keeps menus readable when their
// entries differ in length. Prompts are aligned with the last block.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

const (
	DefaultWidth = 80

	clearSequence = "\033[H\033[2J"
)

var (
	// ErrInputClosed is returned by prompts once the input reached EOF.
	ErrInputClosed = errors.New("console: input closed")
	ErrNotANumber  = errors.New("console: not a number")
)

type Options struct {
	// Width of the terminal in columns. Zero detects it from the output
	// when that is a terminal and falls back to DefaultWidth otherwise.
	Width int
	// ClearScreen enables the clear-screen escape sequence in Clear.
	ClearScreen bool
}

type line struct {
	text string
	err  error
}

type UI struct {
	out    io.Writer
	lines  chan line
	width  int
	clear  bool
	indent int

	title lipgloss.Style
	warn  lipgloss.Style
	fail  lipgloss.Style
	ok    lipgloss.Style
}

// New starts reading lines from in. The reader goroutine lives until in
// reaches EOF or fails.
func New(in io.Reader, out io.Writer, opts Options) *UI {
	r := lipgloss.NewRenderer(out)
	u := &UI{
		out:    out,
		lines:  make(chan line),
		width:  detectWidth(out, opts.Width),
		clear:  opts.ClearScreen,
		indent: -1,
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		warn:   r.NewStyle().Foreground(lipgloss.Color("214")),
		fail:   r.NewStyle().Foreground(lipgloss.Color("196")),
		ok:     r.NewStyle().Foreground(lipgloss.Color("42")),
	}
	go u.readLoop(in)
	return u
}

func detectWidth(out io.Writer, configured int) int {
	if configured > 0 {
		return configured
	}
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			return w
		}
	}
	return DefaultWidth
}

func (u *UI) readLoop(in io.Reader) {
	defer close(u.lines)
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		u.lines <- line{text: strings.TrimRight(sc.Text(), "\r")}
	}
	err := sc.Err()
	if err == nil {
		err = io.EOF
	}
	u.lines <- line{err: err}
}

func (u *UI) Width() int {
	return u.width
}

// Clear wipes the screen when enabled and resets prompt alignment.
func (u *UI) Clear() {
	if u.clear {
		fmt.Fprint(u.out, clearSequence)
	}
	u.indent = -1
}

// Title prints text centered and underlined with '='.
func (u *UI) Title(text string) {
	u.Centered(u.title.Render(text), strings.Repeat("=", lipgloss.Width(text)))
	fmt.Fprintln(u.out)
}

func (u *UI) Centered(lines ...string) {
	for _, l := range lines {
		fmt.Fprintln(u.out, strings.Repeat(" ", u.centerPad(lipgloss.Width(l)))+l)
	}
}

// Block prints lines left-aligned to each other, the group centered.
func (u *UI) Block(lines ...string) {
	if len(lines) == 0 {
		return
	}
	block := lipgloss.JoinVertical(lipgloss.Left, lines...)
	u.indent = u.centerPad(lipgloss.Width(block))
	pad := strings.Repeat(" ", u.indent)
	for _, l := range strings.Split(block, "\n") {
		fmt.Fprintln(u.out, strings.TrimRight(pad+l, " "))
	}
}

func (u *UI) Success(lines ...string) {
	u.Block(u.styled(u.ok, lines)...)
}

func (u *UI) Warn(lines ...string) {
	u.Block(u.styled(u.warn, lines)...)
}

func (u *UI) Error(lines ...string) {
	u.Block(u.styled(u.fail, lines)...)
}

func (u *UI) Blank() {
	fmt.Fprintln(u.out)
}

func (u *UI) styled(s lipgloss.Style, lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = s.Render(l)
	}
	return out
}

func (u *UI) centerPad(w int) int {
	if w >= u.width {
		return 0
	}
	return (u.width - w) / 2
}

// Prompt prints label aligned with the last block, or centered when no
// block was printed since the last Clear, and waits for one line of input.
func (u *UI) Prompt(ctx context.Context, label string) (string, error) {
	indent := u.indent
	if indent < 0 {
		indent = u.centerPad(lipgloss.Width(label))
	}
	fmt.Fprint(u.out, strings.Repeat(" ", indent)+label)

	select {
	case <-ctx.Done():
		fmt.Fprintln(u.out)
		return "", ctx.Err()
	case l, ok := <-u.lines:
		if !ok {
			return "", ErrInputClosed
		}
		if l.err != nil {
			fmt.Fprintln(u.out)
			if errors.Is(l.err, io.EOF) {
				return "", ErrInputClosed
			}
			return "", fmt.Errorf("console: read input: %w", l.err)
		}
		return l.text, nil
	}
}

// PromptInt reads a line and parses it as a decimal integer. Surrounding
// whitespace is ignored. Anything else yields ErrNotANumber.
func (u *UI) PromptInt(ctx context.Context, label string) (int, error) {
	s, err := u.Prompt(ctx, label)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotANumber, s)
	}
	return n, nil
}

func (u *UI) Pause(ctx context.Context) error {
	_, err := u.Prompt(ctx, "Press Enter to continue...")
	return err
}
