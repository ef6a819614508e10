package notification

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
)

// ConsoleNotifier writes reminders to a terminal.
type ConsoleNotifier struct {
	writer io.Writer
	title  *color.Color
}

func NewConsoleNotifier(writer io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{
		writer: writer,
		title:  color.New(color.FgYellow, color.Bold),
	}
}

func (n *ConsoleNotifier) Notify(_ context.Context, title, body string) error {
	slog.Default().Info("sending review reminder", slog.String("title", title))
	if _, err := fmt.Fprintf(n.writer, "%s %s\n", n.title.Sprint(title), body); err != nil {
		return fmt.Errorf("fmt.Fprintf() > %w", err)
	}
	return nil
}
