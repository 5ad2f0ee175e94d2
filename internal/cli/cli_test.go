package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/chzyer/readline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hexref/internal/board"
	"hexref/internal/core"
	"hexref/internal/game"
	"hexref/internal/move"
	"hexref/internal/referee"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input    string
		expected CommandType
	}{
		{"help", CmdHelp},
		{"h", CmdHelp},
		{"show", CmdShow},
		{"s", CmdShow},
		{"showall", CmdShowAll},
		{"S", CmdShowAll},
		{"check", CmdCheck},
		{"c", CmdCheck},
		{"next", CmdNext},
		{"n", CmdNext},
		{"run 5", CmdRun},
		{"exit", CmdQuit},
		{"quit", CmdQuit},
		{"H", CmdUnknown},
		{"make_move", CmdUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cmd := ParseCommand(tt.input)
			assert.Equal(t, tt.expected, cmd.Type)
			assert.Equal(t, tt.input, cmd.Raw)
		})
	}

	assert.Equal(t, []string{"5"}, ParseCommand("run 5").Args)
}

type interruptReader struct{}

func (interruptReader) Readline() (string, error) { return "", readline.ErrInterrupt }

type failingReader struct{}

func (failingReader) Readline() (string, error) { return "", errors.New("tty gone") }

func TestCLI_GetCommand(t *testing.T) {
	t.Run("Lines then end of input", func(t *testing.T) {
		c := New(NewScannerReader(strings.NewReader("  n  \n\nS\n")), &bytes.Buffer{}, false)

		for _, expected := range []CommandType{CmdNext, CmdNone, CmdShowAll, CmdQuit} {
			cmd, err := c.GetCommand()
			require.NoError(t, err)
			assert.Equal(t, expected, cmd.Type)
		}
	})

	t.Run("Interrupt clears the line", func(t *testing.T) {
		c := New(interruptReader{}, &bytes.Buffer{}, false)
		cmd, err := c.GetCommand()
		require.NoError(t, err)
		assert.Equal(t, CmdNone, cmd.Type)
	})

	t.Run("Read error", func(t *testing.T) {
		c := New(failingReader{}, &bytes.Buffer{}, false)
		_, err := c.GetCommand()
		assert.Error(t, err)
	})
}

func TestCLI_Output(t *testing.T) {
	var out bytes.Buffer
	c := New(NewScannerReader(strings.NewReader("")), &out, false)

	t.Run("Check", func(t *testing.T) {
		out.Reset()
		c.ShowCheck(core.Empty)
		c.ShowCheck(core.SecondPlayer)
		assert.Equal(t, "Nobody's won... yet\nWhite has won!\n", out.String())
	})

	t.Run("Move and game over", func(t *testing.T) {
		out.Reset()
		c.ShowMove(&game.MoveResult{Move: move.At(2, 7), Player: core.FirstPlayer})
		c.ShowMove(&game.MoveResult{Move: move.Swap(), Player: core.SecondPlayer})
		c.ShowGameOver(core.FirstPlayer)
		assert.Equal(t, "Black's move: c8\nWhite's move: swap\nBlack has won\n", out.String())
	})

	t.Run("Unknown", func(t *testing.T) {
		out.Reset()
		c.ShowUnknown(ParseCommand("fly away"))
		assert.Equal(t, "Command `fly away` not found. See \"help\" for a list of commands\n", out.String())
	})

	t.Run("Prompt without readline", func(t *testing.T) {
		out.Reset()
		c.ShowPrompt("> ")
		assert.Equal(t, "> ", out.String())
	})

	t.Run("Help", func(t *testing.T) {
		out.Reset()
		c.ShowHelp()
		for _, line := range []string{"h | help", "n | next", "run {}", "s | show", "S | showall", "c | check", "exit | quit"} {
			assert.Contains(t, out.String(), line)
		}
	})

	t.Run("ShowAll", func(t *testing.T) {
		out.Reset()
		central := board.NewSquare(2)
		require.NoError(t, central.Set(0, 0, core.FirstPlayer))
		own, err := board.Parse("B.|..|")
		require.NoError(t, err)

		c.ShowAll(central, []referee.BotBoard{
			{Color: core.FirstPlayer, Bot: "b", Raw: "B.|..|", Board: own},
			{Color: core.SecondPlayer, Bot: "w", Raw: "nope", Err: board.ErrMalformed},
		})

		expected := strings.Repeat("=", 20) + "\n" +
			"Central board ----------------\n" +
			"B . \n . . \n---------------\nBlack: B, White: W\n" +
			"Black board ------------------\n" +
			"B . \n . . \n---------------\nBlack: B, White: W\n" +
			"White board ------------------\n" +
			"Error: w replied \"nope\": malformed board string\n" +
			strings.Repeat("=", 20) + "\n"
		assert.Equal(t, expected, out.String())
	})
}
