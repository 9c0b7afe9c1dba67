package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/diogo/chatboot/internal/chat"
	"github.com/diogo/chatboot/internal/config"
	"github.com/diogo/chatboot/internal/logging"
	"github.com/diogo/chatboot/internal/render"
	"github.com/diogo/chatboot/internal/tui"
)

var spinnerFrames = []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

// spinner draws a one-line progress indicator on a terminal
type spinner struct {
	out     io.Writer
	message string
	stop    chan struct{}
	done    chan struct{}
	mu      sync.Mutex
	frame   int
	stopped bool
}

func newSpinner(out io.Writer, message string) *spinner {
	return &spinner{
		out:     out,
		message: message,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

func (s *spinner) start() {
	go func() {
		defer close(s.done)

		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		// Hide cursor
		fmt.Fprint(s.out, "\033[?25l")

		for {
			select {
			case <-s.stop:
				// Clear line and show cursor
				fmt.Fprint(s.out, "\r\033[K\033[?25h")
				return
			case <-ticker.C:
				s.mu.Lock()
				s.render()
				s.frame++
				s.mu.Unlock()
			}
		}
	}()
}

func (s *spinner) render() {
	p := render.ActivePalette()

	frame := lipgloss.NewStyle().Foreground(p.Accent).Bold(true).Render(spinnerFrames[s.frame%len(spinnerFrames)])
	msg := lipgloss.NewStyle().Foreground(p.TextDim).Italic(true).Render(s.message)

	fmt.Fprintf(s.out, "\r\033[K%s %s", frame, msg)
}

func (s *spinner) stopOnce() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stopped {
		close(s.stop)
		s.stopped = true
	}
}

func (s *spinner) stopWithSuccess(message string) {
	s.stopOnce()
	<-s.done

	style := lipgloss.NewStyle().Foreground(render.ActivePalette().Primary)
	fmt.Fprintf(s.out, "%s %s\n", style.Bold(true).Render("✓"), style.Render(message))
}

func (s *spinner) stopWithError() {
	s.stopOnce()
	<-s.done
}

// runQuery sends a single prompt and prints the reply. The reply is printed
// raw when stdout is not a terminal or when it is saved with -o.
func runQuery(ctx context.Context, deps *Dependencies, cfg config.Config, qf *queryFlags, prompt string) error {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return fmt.Errorf("prompt cannot be empty")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	render.UsePalette(cfg.TUITheme)

	logger, err := logging.NewConsoleLogger(cfg.Verbose)
	if err != nil {
		logger = zap.NewNop()
	}
	defer func() { _ = logger.Sync() }()
	logger.Debug("one-shot query", logging.EndpointFields(cfg)...)

	client, err := deps.NewClient(cfg, logger)
	if err != nil {
		return err
	}
	defer client.Close()

	// Failures are reported once by Execute; the session only logs them
	// when debugging.
	sessionLogger := zap.NewNop()
	if cfg.Verbose {
		sessionLogger = logger
	}
	session := chat.NewSession(client, chat.WithLogger(sessionLogger))

	tty := deps.StdoutTTY != nil && deps.StdoutTTY()
	decorated := tty && qf.output == ""

	var spin *spinner
	if tty {
		spin = newSpinner(deps.Stderr, "Escribiendo...")
		spin.start()
	}

	startTime := time.Now()
	reply, err := session.Submit(ctx, prompt)
	if err != nil {
		if spin != nil {
			spin.stopWithError()
		}
		return fmt.Errorf("request failed: %w", err)
	}
	if spin != nil {
		spin.stopWithSuccess("Listo")
	}
	logger.Debug("reply received",
		zap.Duration("elapsed", time.Since(startTime).Round(time.Millisecond)),
		zap.Int("length", len(reply.Content)))

	text := reply.Content

	if qf.output != "" {
		if err := os.WriteFile(qf.output, []byte(text), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		if tty {
			msg := lipgloss.NewStyle().Foreground(render.ActivePalette().Primary).Render(
				fmt.Sprintf("✓ Response saved to %s", qf.output))
			fmt.Fprintln(deps.Stderr, msg)
		}
		return nil
	}

	if !decorated {
		fmt.Fprint(deps.Stdout, text)
		if !strings.HasSuffix(text, "\n") {
			fmt.Fprintln(deps.Stdout)
		}
		return nil
	}

	width := 80
	if deps.TerminalWidth != nil {
		width = deps.TerminalWidth()
	}
	fmt.Fprintln(deps.Stdout, renderReply(cfg, text, width))
	return nil
}

// renderReply draws a reply the way the chat view does
func renderReply(cfg config.Config, text string, termWidth int) string {
	bubbleWidth := termWidth - 4
	if bubbleWidth < 40 {
		bubbleWidth = 40
	}
	if bubbleWidth > 120 {
		bubbleWidth = 120
	}

	p := render.ActivePalette()
	label := lipgloss.NewStyle().Foreground(p.Primary).Bold(true).Render("IA")
	bubble := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.AssistantBubble).
		Foreground(p.Text).
		Padding(0, 1).
		Width(bubbleWidth).
		Render(render.Reply(text, render.OptionsFromConfig(cfg).WithWidth(bubbleWidth-4)))

	return label + "\n" + bubble
}

// formatErrorMessage prefixes err and adds the structured
// details the chat view shows
func formatErrorMessage(err error, prefix string) string {
	if err == nil {
		return ""
	}
	return tui.FormatError(fmt.Errorf("%s: %w", prefix, err))
}
