package cli

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hexref/internal/bot"
	"hexref/internal/cli"
	"hexref/internal/referee"
)

// scriptedBot replies to make_move from a fixed list
type scriptedBot struct {
	name  string
	moves []string
}

func (b *scriptedBot) Name() string { return b.name }

func (b *scriptedBot) Send(command string) error { return nil }

func (b *scriptedBot) Close() error { return nil }

func (b *scriptedBot) Request(ctx context.Context, command string) (string, error) {
	switch command {
	case "make_move":
		if len(b.moves) == 0 {
			return "", fmt.Errorf("%w: exited", bot.ErrClosed)
		}
		mv := b.moves[0]
		b.moves = b.moves[1:]
		return mv, nil
	case "show_board":
		return "...|...|...|", nil
	}
	return "", fmt.Errorf("unexpected %q", command)
}

func runREPL(t *testing.T, input string, black, white *scriptedBot) string {
	t.Helper()
	ref, err := referee.New(referee.Options{Size: 3}, black, white, zerolog.Nop())
	require.NoError(t, err)
	defer ref.Close()

	var out bytes.Buffer
	view := cli.New(cli.NewScannerReader(strings.NewReader(input)), &out, false)
	require.NoError(t, New(ref, view).Run(context.Background()))
	return out.String()
}

func TestCLIHandler_Run(t *testing.T) {
	t.Run("Operator session", func(t *testing.T) {
		// Given: a session touching every command
		input := "h\nn\nc\ns\nS\nbogus\nrun x\nexit\nn\n"
		out := runREPL(t, input, &scriptedBot{name: "b", moves: []string{"a1"}}, &scriptedBot{name: "w"})

		// Then: each command produced its output and exit stopped the loop
		assert.Contains(t, out, "==== Hex Referee: Interactive REPL ====")
		assert.Contains(t, out, "Black's move: a1\n")
		assert.Contains(t, out, "Nobody's won... yet\n")
		assert.Contains(t, out, "B . . \n . . . \n  . . . \n")
		assert.Contains(t, out, "Central board ----------------")
		assert.Contains(t, out, "Command `bogus` not found. See \"help\" for a list of commands\n")
		assert.Contains(t, out, "Command `run x` not found.")
		assert.True(t, strings.HasSuffix(out, "Shutting down\n"))
		assert.Contains(t, out, "hex [White] > ")
	})

	t.Run("Run until the win", func(t *testing.T) {
		black := &scriptedBot{name: "b", moves: []string{"a1", "b1", "c1"}}
		white := &scriptedBot{name: "w", moves: []string{"a3", "b3"}}

		out := runREPL(t, "run 10\nc\n", black, white)

		// Then: the REPL stops as soon as black connects
		assert.Contains(t, out, "White's move: b3\n")
		assert.Contains(t, out, "Black's move: c1\n")
		assert.True(t, strings.HasSuffix(out, "Black has won\n"))
		assert.NotContains(t, out, "has won!")
	})

	t.Run("Forfeit", func(t *testing.T) {
		black := &scriptedBot{name: "b", moves: []string{"a1"}}
		white := &scriptedBot{name: "w", moves: []string{"a1"}}

		out := runREPL(t, "n\nn\nn\n", black, white)

		assert.Contains(t, out, "White (w) forfeits, illegal move \"a1\"")
		assert.True(t, strings.HasSuffix(out, "Black has won\n"))
	})

	t.Run("End of input", func(t *testing.T) {
		out := runREPL(t, "c\n", &scriptedBot{name: "b"}, &scriptedBot{name: "w"})
		assert.True(t, strings.HasSuffix(out, "Nobody's won... yet\nhex [Black] > Shutting down\n"))
	})
}
