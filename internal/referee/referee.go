// FILE: internal/referee/referee.go
package referee

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"hexref/internal/board"
	"hexref/internal/bot"
	"hexref/internal/core"
	"hexref/internal/game"
	"hexref/internal/move"
)

var (
	ErrMatchOver = errors.New("match is over")
	ErrClosed    = errors.New("referee is closed")
)

var validate = validator.New()

// Player is the referee's view of a bot: one command per line, one reply
// line per query
type Player interface {
	Name() string
	Send(command string) error
	Request(ctx context.Context, command string) (string, error)
	Close() error
}

type Options struct {
	Size        int           `validate:"min=1,max=26"`
	TurnTimeout time.Duration `validate:"min=0"` // zero waits forever
}

type botPaths struct {
	Black string `validate:"required"`
	White string `validate:"required"`
}

// Referee runs one match between two bots. Turns are strictly sequential;
// only one bot is ever awaited at a time.
type Referee struct {
	id      string
	game    *game.Game
	bots    map[string]Player // keyed by core.Player.ID
	timeout time.Duration
	log     zerolog.Logger
	waiter  *WaitRegistry

	turnMu sync.Mutex // serializes bot conversations

	mu        sync.RWMutex // guards game state read by spectators
	violation *Violation
	snapshot  Snapshot
	closed    bool
}

// New takes ownership of both players. Both receive init_board before New
// returns; on any failure both are closed.
func New(opts Options, black, white Player, log zerolog.Logger) (*Referee, error) {
	if err := validate.Struct(opts); err != nil {
		closeAll(black, white)
		return nil, fmt.Errorf("invalid match options: %w", err)
	}

	blackPlayer := core.NewPlayer(black.Name(), core.FirstPlayer)
	whitePlayer := core.NewPlayer(white.Name(), core.SecondPlayer)

	r := &Referee{
		id:   uuid.New().String(),
		game: game.New(opts.Size, blackPlayer, whitePlayer),
		bots: map[string]Player{
			blackPlayer.ID: black,
			whitePlayer.ID: white,
		},
		timeout: opts.TurnTimeout,
		waiter:  NewWaitRegistry(),
	}
	r.log = log.With().Str("match", r.id).Logger()

	initCmd := fmt.Sprintf("init_board %d", opts.Size)
	for _, p := range []Player{black, white} {
		if err := p.Send(initCmd); err != nil {
			closeAll(black, white)
			return nil, fmt.Errorf("failed to initialise %s: %w", p.Name(), err)
		}
	}

	r.publish()
	r.log.Info().
		Int("size", opts.Size).
		Str("black", black.Name()).
		Str("white", white.Name()).
		Msg("match started")
	return r, nil
}

// Launch spawns both bots as "<path> black" and "<path> white" and starts
// the match. If the second spawn fails the first bot is reaped.
func Launch(opts Options, blackPath, whitePath string, grace time.Duration, log zerolog.Logger) (*Referee, error) {
	if err := validate.Struct(opts); err != nil {
		return nil, fmt.Errorf("invalid match options: %w", err)
	}
	if err := validate.Struct(botPaths{Black: blackPath, White: whitePath}); err != nil {
		return nil, fmt.Errorf("invalid bot paths: %w", err)
	}

	black, err := bot.Spawn(bot.Config{
		Path:  blackPath,
		Args:  []string{core.FirstPlayer.Name()},
		Name:  "black:" + blackPath,
		Grace: grace,
	}, log)
	if err != nil {
		return nil, err
	}

	white, err := bot.Spawn(bot.Config{
		Path:  whitePath,
		Args:  []string{core.SecondPlayer.Name()},
		Name:  "white:" + whitePath,
		Grace: grace,
	}, log)
	if err != nil {
		_ = black.Close()
		return nil, err
	}

	return New(opts, black, white, log)
}

func closeAll(players ...Player) error {
	var g errgroup.Group
	for _, p := range players {
		g.Go(p.Close)
	}
	return g.Wait()
}

func (r *Referee) ID() string {
	return r.id
}

// Step plays one turn. A bot that breaks the protocol forfeits: the result
// records the final state and the error is a *Violation.
func (r *Referee) Step(ctx context.Context) (*game.MoveResult, error) {
	r.turnMu.Lock()
	defer r.turnMu.Unlock()

	if err := r.playable(); err != nil {
		return nil, err
	}

	color := r.game.NextTurn()
	mover := r.bots[r.game.NextPlayer().ID]

	line, err := r.request(ctx, mover, "make_move")
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return r.forfeit(color, mover, requestKind(err), "", err)
	}

	m, err := move.Parse(line, r.game.Board())
	if err != nil {
		return r.forfeit(color, mover, KindMalformed, line, err)
	}

	r.mu.Lock()
	var result *game.MoveResult
	if m.Swap {
		result, err = r.game.Swap()
	} else {
		result, err = r.game.Place(m)
	}
	r.mu.Unlock()
	if err != nil {
		return r.forfeit(color, mover, KindIllegal, line, err)
	}

	r.log.Debug().
		Str("color", color.String()).
		Str("move", m.String()).
		Str("state", result.GameState.String()).
		Msg("move applied")

	// After a swap the color to move is unchanged, so the bot now holding it
	// is the one that played the first stone.
	if m.Swap {
		opponentColor := color
		opponent := r.bots[r.game.Player(opponentColor).ID]
		if err := opponent.Send(move.SwapToken); err != nil {
			return r.forfeit(opponentColor, opponent, KindCrashed, "", err)
		}
	} else {
		opponentColor := core.Opponent(color)
		opponent := r.bots[r.game.Player(opponentColor).ID]
		if err := opponent.Send("seto " + m.String()); err != nil {
			if result.GameState != core.StateOngoing {
				r.log.Warn().Err(err).Msg("could not tell loser about the final move")
			} else {
				return r.forfeit(opponentColor, opponent, KindCrashed, "", err)
			}
		}
	}

	if result.GameState != core.StateOngoing {
		r.log.Info().
			Str("winner", result.GameState.Winner().String()).
			Int("moves", r.game.Moves()).
			Msg("match won")
	}

	r.publish()
	return result, nil
}

// Run plays up to n turns, stopping early when the match ends
func (r *Referee) Run(ctx context.Context, n int) ([]*game.MoveResult, error) {
	results := make([]*game.MoveResult, 0, n)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res, err := r.Step(ctx)
		if res != nil {
			results = append(results, res)
		}
		if err != nil {
			return results, err
		}
		if res.GameState != core.StateOngoing {
			break
		}
	}
	return results, nil
}

// Check reports the winner without advancing the match. A forfeit decides
// the match even when the board does not.
func (r *Referee) Check() core.Tile {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if w := r.game.State().Winner(); w != core.Empty {
		return w
	}
	return r.game.Board().Winner()
}

// State is the match state
func (r *Referee) State() core.State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.game.State()
}

// Turn is the color to move next
func (r *Referee) Turn() core.Tile {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.game.NextTurn()
}

// Violation returns the forfeit that ended the match, if any
func (r *Referee) Violation() *Violation {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.violation
}

// Board returns a copy of the authoritative board
func (r *Referee) Board() *board.Board {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.game.Board().Clone()
}

// BotBoard is one bot's self-reported board
type BotBoard struct {
	Color core.Tile
	Bot   string
	Raw   string
	Board *board.Board // nil when Err is set
	Err   error
}

// BotBoards asks each bot for its board. A bot that times out or dies
// while the match is ongoing forfeits, since a late reply would be read
// as its next move.
func (r *Referee) BotBoards(ctx context.Context) ([]BotBoard, error) {
	r.turnMu.Lock()
	defer r.turnMu.Unlock()

	if r.isClosed() {
		return nil, ErrClosed
	}

	boards := make([]BotBoard, 0, len(core.Colors))
	for _, color := range core.Colors {
		r.mu.RLock()
		p := r.bots[r.game.Player(color).ID]
		r.mu.RUnlock()

		bb := BotBoard{Color: color, Bot: p.Name()}
		raw, err := r.request(ctx, p, "show_board")
		if err != nil {
			bb.Err = err
			boards = append(boards, bb)
			if r.State() == core.StateOngoing {
				_, verr := r.forfeit(color, p, requestKind(err), "", err)
				return boards, verr
			}
			continue
		}

		bb.Raw = raw
		bb.Board, bb.Err = board.Parse(raw)
		boards = append(boards, bb)
	}
	return boards, nil
}

// Wait returns a channel that fires after the next transition past moves
func (r *Referee) Wait(ctx context.Context, moves int) <-chan struct{} {
	return r.waiter.Register(ctx, moves)
}

// Close quits and reaps both bots. It is safe to call more than once.
func (r *Referee) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	r.mu.Unlock()

	players := make([]Player, 0, len(r.bots))
	for _, p := range r.bots {
		players = append(players, p)
	}
	err := closeAll(players...)
	_ = r.waiter.Shutdown(time.Second)

	r.log.Info().Msg("bots shut down")
	return err
}

func (r *Referee) isClosed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.closed
}

func (r *Referee) playable() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return ErrClosed
	}
	if r.game.State() != core.StateOngoing {
		return ErrMatchOver
	}
	return nil
}

func (r *Referee) request(ctx context.Context, p Player, command string) (string, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	return p.Request(ctx, command)
}

func requestKind(err error) Kind {
	if errors.Is(err, bot.ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	return KindCrashed
}

func (r *Referee) forfeit(color core.Tile, p Player, kind Kind, line string, cause error) (*game.MoveResult, error) {
	v := &Violation{
		Color: color,
		Bot:   p.Name(),
		Kind:  kind,
		Line:  line,
		Err:   cause,
	}

	r.mu.Lock()
	r.game.Forfeit(color)
	r.violation = v
	result := &game.MoveResult{Player: color, GameState: r.game.State(), Forfeit: true}
	r.game.SetLastResult(result)
	r.mu.Unlock()

	r.log.Warn().
		Str("color", color.String()).
		Str("kind", kind.String()).
		Str("line", line).
		Err(cause).
		Msg("bot forfeits")

	r.publish()
	return result, v
}
