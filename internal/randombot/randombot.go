// FILE: internal/randombot/randombot.go
package randombot

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"lukechampine.com/frand"

	"hexref/internal/board"
	"hexref/internal/core"
	"hexref/internal/move"
)

// DefaultSize is the board used until init_board arrives
const DefaultSize = 8

var ErrQuit = errors.New("quit requested")

// Bot speaks the referee protocol and plays uniformly random moves. Its
// board holds absolute colors, so a swap only changes which color it owns.
type Bot struct {
	color core.Tile
	board *board.Board
	pick  func(n int) int
	log   zerolog.Logger
}

func New(color core.Tile, log zerolog.Logger) *Bot {
	return &Bot{
		color: color,
		board: board.NewSquare(DefaultSize),
		pick:  frand.Intn,
		log:   log,
	}
}

// WithPicker replaces the random source, for reproducible games
func (b *Bot) WithPicker(pick func(n int) int) *Bot {
	b.pick = pick
	return b
}

func (b *Bot) Color() core.Tile {
	return b.color
}

func (b *Bot) Board() *board.Board {
	return b.board
}

// Handle applies one command line. reply is only meaningful when respond
// is set; ErrQuit ends the session.
func (b *Bot) Handle(line string) (reply string, respond bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", false, nil
	}

	cmd, args := fields[0], fields[1:]
	switch cmd {
	case "init_board":
		if len(args) != 1 {
			return "", false, fmt.Errorf("init_board needs a size")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 || n > board.MaxSize {
			return "", false, fmt.Errorf("invalid board size %q", args[0])
		}
		b.board = board.NewSquare(n)

	case "sety":
		return "", false, b.set(args, b.color)

	case "seto":
		return "", false, b.set(args, core.Opponent(b.color))

	case "unset":
		return "", false, b.set(args, core.Empty)

	case "swap":
		b.color = core.Opponent(b.color)

	case "show_board":
		return b.board.Compact(), true, nil

	case "check_win":
		switch b.board.Winner() {
		case b.color:
			return "1", true, nil
		case core.Empty:
			return "0", true, nil
		default:
			return "-1", true, nil
		}

	case "make_move":
		return b.makeMove(), true, nil

	case "quit":
		return "", false, ErrQuit

	default:
		return "", false, fmt.Errorf("unknown command %q", cmd)
	}
	return "", false, nil
}

func (b *Bot) set(args []string, t core.Tile) error {
	if len(args) != 1 {
		return fmt.Errorf("expected one coordinate, got %d", len(args))
	}
	m, err := move.Parse(args[0], b.board)
	if err != nil {
		return err
	}
	if m.Swap {
		return fmt.Errorf("cannot place %q", args[0])
	}
	return b.board.Set(m.Row, m.Col, t)
}

// makeMove claims a random empty cell for itself
func (b *Bot) makeMove() string {
	empty := b.board.EmptyCells()
	if len(empty) == 0 {
		return "none"
	}
	c := empty[b.pick(len(empty))]
	_ = b.board.Set(c.Row, c.Col, b.color)
	return move.Format(c)
}

// Serve answers commands from r on w until quit or end of input
func (b *Bot) Serve(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	out := bufio.NewWriter(w)

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		reply, respond, err := b.Handle(line)
		if errors.Is(err, ErrQuit) {
			return out.Flush()
		}
		if err != nil {
			b.log.Warn().Err(err).Str("line", line).Msg("ignoring command")
			continue
		}
		if respond {
			fmt.Fprintln(out, reply)
			if err := out.Flush(); err != nil {
				return err
			}
		}
	}
	return scanner.Err()
}
