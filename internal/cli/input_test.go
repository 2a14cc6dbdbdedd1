package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bastiangx/phrasebook/internal/logger"
	"github.com/bastiangx/phrasebook/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func newCompleter(t *testing.T, phrases ...string) *suggest.Completer {
	t.Helper()
	opts := suggest.DefaultOptions()
	opts.Logger = logger.Discard()
	c, err := suggest.NewCompleter(opts)
	require.NoError(t, err)
	_, err = c.InsertAll(phrases)
	require.NoError(t, err)
	return c
}

func TestRender(t *testing.T) {
	var out bytes.Buffer
	Render(&out, []suggest.Suggestion{
		{Phrase: "world", Score: 15},
		{Phrase: "wart", Score: 4, Distance: 2, Fuzzy: true},
	}, true)

	assert.Equal(t, " 1. world  (score: 15)\n 2. wart  (score: 4, distance: 2)\n", out.String())

	out.Reset()
	Render(&out, []suggest.Suggestion{{Phrase: "world"}}, false)
	assert.Equal(t, " 1. world\n", out.String())
}

func TestInputHandlerLoop(t *testing.T) {
	c := newCompleter(t, "hello world", "help desk")
	in := strings.NewReader("wor\n\n:add world peace\nwor\n:stats\n")
	var out bytes.Buffer

	h := NewInputHandler(c, in, &out, 5, "> ", false)
	require.NoError(t, h.Start())

	got := out.String()
	assert.Contains(t, got, " 1. hello world\n")
	assert.Contains(t, got, "added \"world peace\"\n")
	assert.Contains(t, got, " 1. world peace\n 2. hello world\n")
	assert.Contains(t, got, "phrases")
	assert.Equal(t, 2, h.Requests())
	assert.Equal(t, 3, c.Len())
}

func TestInputHandlerQuit(t *testing.T) {
	c := newCompleter(t, "alpha")
	in := strings.NewReader(":quit\nalpha\n")
	var out bytes.Buffer

	h := NewInputHandler(c, in, &out, 5, "", false)
	require.NoError(t, h.Start())
	assert.Equal(t, 0, h.Requests())
	assert.Empty(t, out.String())
}

func TestInputHandlerLastLineWithoutNewline(t *testing.T) {
	c := newCompleter(t, "alpha")
	var out bytes.Buffer

	h := NewInputHandler(c, strings.NewReader("alp"), &out, 5, "", false)
	require.NoError(t, h.Start())
	assert.Equal(t, " 1. alpha\n\n", out.String())
}

func TestInputHandlerRejectedQuery(t *testing.T) {
	c := newCompleter(t, "alpha")
	var out bytes.Buffer

	h := NewInputHandler(c, strings.NewReader("bad\xff\n"), &out, 5, "", false)
	require.NoError(t, h.Start())
	assert.Equal(t, 1, h.Requests())
	assert.Equal(t, "\n", out.String())
}
