// Package repl runs the interactive line-reader front end.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/doeshing/termsim/internal/application/interpreter"
	"github.com/doeshing/termsim/internal/domain"
)

const (
	bannerTitle    = "termsim terminal simulator"
	bannerHint     = "Type 'help' for available commands, 'exit' to quit."
	bannerRule     = 50
	msgGoodbye     = "Goodbye!"
	msgUseExit     = "Use 'exit' to quit the terminal."
	cpuSpinnerText = "Sampling CPU..."
)

// Options configures a Session.
type Options struct {
	PromptPrefix string
	// Spinner enables the animation while cpu samples. Only meaningful
	// when Out is a terminal.
	Spinner bool
	// Interrupts delivers SIGINT. Nil disables interrupt handling.
	Interrupts <-chan os.Signal
}

// Session drives one interpreter from a line-oriented reader.
type Session struct {
	interp *interpreter.Interpreter
	in     io.Reader
	out    io.Writer
	opts   Options

	titleStyle  lipgloss.Style
	dimStyle    lipgloss.Style
	prefixStyle lipgloss.Style
	cwdStyle    lipgloss.Style
	errorStyle  lipgloss.Style
}

// NewSession wires interp to in/out.
func NewSession(interp *interpreter.Interpreter, in io.Reader, out io.Writer, opts Options) *Session {
	if opts.PromptPrefix == "" {
		opts.PromptPrefix = domain.DefaultPromptPrefix
	}
	r := lipgloss.NewRenderer(out)
	return &Session{
		interp:      interp,
		in:          in,
		out:         out,
		opts:        opts,
		titleStyle:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		dimStyle:    r.NewStyle().Foreground(lipgloss.Color("240")),
		prefixStyle: r.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		cwdStyle:    r.NewStyle().Foreground(lipgloss.Color("81")),
		errorStyle:  r.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

// Run loops until exit, EOF or ctx cancellation. It returns the reader's
// error, if any.
func (s *Session) Run(ctx context.Context) error {
	s.printBanner()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go s.readLines(ctx, lines, readErr)

	for {
		fmt.Fprint(s.out, s.prompt())

		select {
		case <-ctx.Done():
			fmt.Fprintln(s.out)
			fmt.Fprintln(s.out, msgGoodbye)
			return nil
		case <-s.opts.Interrupts:
			fmt.Fprintln(s.out)
			fmt.Fprintln(s.out, msgUseExit)
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(s.out)
				fmt.Fprintln(s.out, msgGoodbye)
				return <-readErr
			}
			if s.handle(line) {
				fmt.Fprintln(s.out, msgGoodbye)
				return nil
			}
		}
	}
}

// handle executes one line and reports whether the session should end.
func (s *Session) handle(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	var spinner *Spinner
	if s.opts.Spinner && interpreter.Verb(line) == "cpu" {
		spinner = NewSpinner(s.out, cpuSpinnerText)
		spinner.Start()
	}
	result := s.interp.Parse(line)
	if spinner != nil {
		spinner.Stop()
	}

	if result.Exit {
		return true
	}
	if result.Output != "" {
		if result.Success {
			fmt.Fprintln(s.out, result.Output)
		} else {
			fmt.Fprintln(s.out, s.errorStyle.Render(result.Output))
		}
	}
	return false
}

func (s *Session) readLines(ctx context.Context, lines chan<- string, readErr chan<- error) {
	defer close(lines)
	scanner := bufio.NewScanner(s.in)
	for scanner.Scan() {
		select {
		case lines <- scanner.Text():
		case <-ctx.Done():
			readErr <- nil
			return
		}
	}
	readErr <- scanner.Err()
}

func (s *Session) printBanner() {
	fmt.Fprintln(s.out, s.titleStyle.Render(bannerTitle))
	fmt.Fprintln(s.out, bannerHint)
	fmt.Fprintln(s.out, s.dimStyle.Render(strings.Repeat("=", bannerRule)))
}

func (s *Session) prompt() string {
	return s.prefixStyle.Render(s.opts.PromptPrefix) + ":" + s.cwdStyle.Render(s.interp.WorkingDirectory()) + "$ "
}
