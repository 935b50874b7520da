package services

import (
	"fmt"
	"io"
	"os"
	"strings"

	"price-watcher/models"
)

// Notifier reports items that reached a new lowest price.
type Notifier interface {
	Notify(improved []models.Item)
}

// ConsoleNotifier prints improved items to a terminal.
type ConsoleNotifier struct {
	out      io.Writer
	currency string
}

// NewConsoleNotifier writes to out, or stdout when out is nil.
func NewConsoleNotifier(out io.Writer, currency string) *ConsoleNotifier {
	if out == nil {
		out = os.Stdout
	}
	return &ConsoleNotifier{out: out, currency: currency}
}

func (n *ConsoleNotifier) Notify(improved []models.Item) {
	if len(improved) == 0 {
		return
	}

	thin := strings.Repeat("─", 54)

	fmt.Fprintf(n.out, "\n\033[1;33m  Found %d %s with better prices:\033[0m\n", len(improved), plural(len(improved)))
	fmt.Fprintf(n.out, "  %s\n", thin)
	for _, it := range improved {
		fmt.Fprintf(n.out, "   - %s - \033[1;32m%s %s\033[0m\n", truncate(it.Name, 40), it.Price.StringFixed(2), n.currency)
	}
	fmt.Fprintln(n.out)
}

func plural(n int) string {
	if n == 1 {
		return "item"
	}
	return "items"
}

// truncate limits s to max runes, never splitting a multi-byte character.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
