// Package cli handles the interactive loop and result printing of the phrasebook binary
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/bastiangx/phrasebook/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	addCommand   = ":add "
	statsCommand = ":stats"
	quitCommand  = ":quit"
)

var (
	phraseStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#286983", Dark: "#9ccfd8"})
	fuzzyStyle  = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.AdaptiveColor{Light: "#907aa9", Dark: "#c4a7e7"})
)

// InputHandler reads queries line by line and prints their suggestions.
// Lines starting with ":add " insert a phrase, ":stats" prints counters and
// ":quit" ends the loop.
type InputHandler struct {
	completer    suggest.ICompleter
	in           io.Reader
	out          io.Writer
	suggestLimit int
	prompt       string
	showScores   bool
	requestCount int
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(completer suggest.ICompleter, in io.Reader, out io.Writer, limit int, prompt string, showScores bool) *InputHandler {
	return &InputHandler{
		completer:    completer,
		in:           in,
		out:          out,
		suggestLimit: limit,
		prompt:       prompt,
		showScores:   showScores,
	}
}

// Requests returns how many queries were answered
func (h *InputHandler) Requests() int {
	return h.requestCount
}

// Start runs the loop until EOF or ":quit".
func (h *InputHandler) Start() error {
	reader := bufio.NewReader(h.in)
	for {
		fmt.Fprint(h.out, h.prompt)
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}

		input := strings.TrimSpace(line)
		if input == quitCommand {
			return nil
		}
		if input != "" {
			h.handleInput(input)
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(h.out)
			return nil
		}
	}
}

func (h *InputHandler) handleInput(input string) {
	switch {
	case strings.HasPrefix(input, addCommand):
		phrase := strings.TrimSpace(strings.TrimPrefix(input, addCommand))
		if err := h.completer.Insert(phrase); err != nil {
			log.Errorf("Could not add phrase: %v", err)
			return
		}
		fmt.Fprintf(h.out, "added %q\n", phrase)
		return
	case input == statsCommand:
		h.printStats()
		return
	}

	h.requestCount++
	start := time.Now()
	suggestions, err := h.completer.CompleteN(input, h.suggestLimit)
	if err != nil {
		log.Errorf("Query rejected: %v", err)
		return
	}
	log.Debugf("Took [ %v ] for query '%s'", time.Since(start), input)

	if len(suggestions) == 0 {
		log.Warnf("No suggestions found for query: '%s'", input)
		return
	}
	Render(h.out, suggestions, h.showScores)
}

func (h *InputHandler) printStats() {
	stats := h.completer.Stats()
	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(h.out, "%-16s %d\n", k, stats[k])
	}
}

// Render writes one numbered line per suggestion. With scores set, the score
// and, for fuzzy hits, the edit distance follow the phrase.
func Render(w io.Writer, suggestions []suggest.Suggestion, scores bool) {
	for i, s := range suggestions {
		style := phraseStyle
		if s.Fuzzy {
			style = fuzzyStyle
		}
		line := fmt.Sprintf("%2d. %s", i+1, style.Render(s.Phrase))
		if scores {
			line += fmt.Sprintf("  (score: %d", s.Score)
			if s.Fuzzy {
				line += fmt.Sprintf(", distance: %d", s.Distance)
			}
			line += ")"
		}
		fmt.Fprintln(w, line)
	}
}
