// FILE: internal/cli/cli.go
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"hexref/internal/board"
	"hexref/internal/core"
	"hexref/internal/display"
	"hexref/internal/game"
	"hexref/internal/referee"
)

type CommandType int

const (
	CmdNone CommandType = iota
	CmdHelp
	CmdShow
	CmdShowAll
	CmdCheck
	CmdNext
	CmdRun
	CmdQuit
	CmdUnknown
)

type Command struct {
	Type CommandType
	Args []string
	Raw  string
}

// LineReader is satisfied by *readline.Instance
type LineReader interface {
	Readline() (string, error)
}

type scannerReader struct {
	s *bufio.Scanner
}

// NewScannerReader reads plain lines, for piped input
func NewScannerReader(r io.Reader) LineReader {
	return &scannerReader{s: bufio.NewScanner(r)}
}

func (r *scannerReader) Readline() (string, error) {
	if !r.s.Scan() {
		if err := r.s.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.s.Text(), nil
}

type CLI struct {
	input  LineReader
	output io.Writer
	color  bool
}

func New(input LineReader, output io.Writer, color bool) *CLI {
	return &CLI{
		input:  input,
		output: output,
		color:  color,
	}
}

// Reads a command synchronously. End of input quits, Ctrl-C clears the line.
func (c *CLI) GetCommand() (*Command, error) {
	line, err := c.input.Readline()
	if err != nil {
		if errors.Is(err, readline.ErrInterrupt) {
			return &Command{Type: CmdNone}, nil
		}
		if errors.Is(err, io.EOF) {
			return &Command{Type: CmdQuit}, nil
		}
		return nil, err
	}

	input := strings.TrimSpace(line)
	if input == "" {
		return &Command{Type: CmdNone}, nil
	}

	return ParseCommand(input), nil
}

// ParseCommand is case sensitive: "s" shows, "S" shows all
func ParseCommand(input string) *Command {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return &Command{Type: CmdNone}
	}

	cmd := parts[0]
	args := parts[1:]

	switch cmd {
	case "help", "h":
		return &Command{Type: CmdHelp, Raw: input}
	case "show", "s":
		return &Command{Type: CmdShow, Raw: input}
	case "showall", "S":
		return &Command{Type: CmdShowAll, Raw: input}
	case "check", "c":
		return &Command{Type: CmdCheck, Raw: input}
	case "next", "n":
		return &Command{Type: CmdNext, Raw: input}
	case "run":
		return &Command{Type: CmdRun, Args: args, Raw: input}
	case "exit", "quit":
		return &Command{Type: CmdQuit, Raw: input}
	default:
		return &Command{Type: CmdUnknown, Args: parts, Raw: input}
	}
}

func (c *CLI) Color() bool {
	return c.color
}

func (c *CLI) ShowMessage(msg string) {
	fmt.Fprintln(c.output, msg)
}

func (c *CLI) ShowError(err error) {
	c.ShowMessage(display.Paint(c.color, display.Red, fmt.Sprintf("Error: %v", err)))
}

// ShowPrompt hands the prompt to readline when available, otherwise prints it
func (c *CLI) ShowPrompt(prompt string) {
	if p, ok := c.input.(interface{ SetPrompt(string) }); ok {
		p.SetPrompt(prompt)
		return
	}
	fmt.Fprint(c.output, prompt)
}

func (c *CLI) DisplayBoard(b *board.Board) {
	c.ShowMessage(display.RenderBoard(b.ToASCII(), c.color))
}

func (c *CLI) ShowHelp() {
	help := `==== Hex Referee: Interactive REPL ====
Command      Description
h | help     Prints this help menu
n | next     Prompts the bot for its next move
run {}       Plays {} turns sequentially
s | show     Shows the central board
S | showall  Shows both the bots' boards and the central one
c | check    Checks if a bot has won
exit | quit  Shuts down both bots and exits
=======================================`

	c.ShowMessage(help)
}

func (c *CLI) ShowUnknown(cmd *Command) {
	c.ShowMessage(fmt.Sprintf("Command `%s` not found. See \"help\" for a list of commands", cmd.Raw))
}

func (c *CLI) ShowMove(result *game.MoveResult) {
	c.ShowMessage(fmt.Sprintf("%s's move: %s", display.ColorName(result.Player, c.color), result.Move))
}

func (c *CLI) ShowCheck(winner core.Tile) {
	if winner == core.Empty {
		c.ShowMessage("Nobody's won... yet")
		return
	}
	c.ShowMessage(fmt.Sprintf("%s has won!", display.ColorName(winner, c.color)))
}

func (c *CLI) ShowGameOver(winner core.Tile) {
	c.ShowMessage(fmt.Sprintf("%s has won", display.ColorName(winner, c.color)))
}

func (c *CLI) ShowViolation(v *referee.Violation) {
	c.ShowMessage(display.Paint(c.color, display.Red, v.Error()))
}

// ShowAll prints the central board followed by each bot's own view
func (c *CLI) ShowAll(central *board.Board, bots []referee.BotBoard) {
	c.ShowMessage(strings.Repeat("=", 20))
	c.ShowMessage("Central board ----------------")
	c.DisplayBoard(central)
	for _, bb := range bots {
		c.ShowMessage(fmt.Sprintf("%s board ------------------", bb.Color))
		switch {
		case bb.Board != nil:
			c.DisplayBoard(bb.Board)
		case bb.Raw != "":
			c.ShowError(fmt.Errorf("%s replied %q: %w", bb.Bot, bb.Raw, bb.Err))
		default:
			c.ShowError(bb.Err)
		}
	}
	c.ShowMessage(strings.Repeat("=", 20))
}

func (c *CLI) ShowWelcome(size int, black, white string) {
	c.ShowMessage(fmt.Sprintf("Hex %dx%d: %s (Black, top to bottom) vs %s (White, left to right)", size, size, black, white))
	c.ShowHelp()
}
