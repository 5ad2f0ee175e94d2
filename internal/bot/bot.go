// FILE: internal/bot/bot.go
package bot

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultGrace is how long a bot gets to exit after quit before it is killed
const DefaultGrace = time.Second

var (
	ErrTimeout = errors.New("bot did not respond in time")
	ErrClosed  = errors.New("bot closed its output")
)

type Config struct {
	Path   string
	Args   []string
	Name   string        // used in logs, defaults to Path
	Grace  time.Duration // zero means DefaultGrace
	Stderr io.Writer     // nil inherits the referee's stderr
}

// Process owns one spawned bot and both of its pipes
type Process struct {
	name  string
	cmd   *exec.Cmd
	stdin io.WriteCloser
	lines chan string
	grace time.Duration
	log   zerolog.Logger

	readErr error // valid once lines is closed

	mu        sync.Mutex
	closed    bool
	closeOnce sync.Once
	closeErr  error
}

// Spawn starts the bot and a single reader that feeds its stdout lines
func Spawn(cfg Config, log zerolog.Logger) (*Process, error) {
	cmd := exec.Command(cfg.Path, cfg.Args...)
	cmd.Stderr = cfg.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}

	if err = cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start bot %s: %w", cfg.Path, err)
	}

	name := cfg.Name
	if name == "" {
		name = cfg.Path
	}
	grace := cfg.Grace
	if grace <= 0 {
		grace = DefaultGrace
	}

	p := &Process{
		name:  name,
		cmd:   cmd,
		stdin: stdin,
		lines: make(chan string, 16),
		grace: grace,
		log:   log.With().Str("bot", name).Logger(),
	}
	go p.read(stdout)

	p.log.Debug().Int("pid", cmd.Process.Pid).Strs("args", cfg.Args).Msg("bot started")
	return p, nil
}

func (p *Process) read(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		p.log.Debug().Str("recv", line).Msg("bot output")
		p.lines <- line
	}
	p.readErr = scanner.Err()
	close(p.lines)
}

func (p *Process) Name() string {
	return p.name
}

// Send writes one command line without waiting for a reply
func (p *Process) Send(command string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return fmt.Errorf("%w: %s", ErrClosed, p.name)
	}
	p.log.Debug().Str("send", command).Msg("bot input")
	if _, err := fmt.Fprintln(p.stdin, command); err != nil {
		return fmt.Errorf("%w: writing %q to %s: %v", ErrClosed, command, p.name, err)
	}
	return nil
}

// Request sends a command and blocks for exactly one reply line
func (p *Process) Request(ctx context.Context, command string) (string, error) {
	if err := p.Send(command); err != nil {
		return "", err
	}

	select {
	case line, ok := <-p.lines:
		if !ok {
			if p.readErr != nil {
				return "", fmt.Errorf("%w: %s: %v", ErrClosed, p.name, p.readErr)
			}
			return "", fmt.Errorf("%w: %s exited", ErrClosed, p.name)
		}
		return line, nil
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %s after %q: %w", ErrTimeout, p.name, command, ctx.Err())
	}
}

// Close asks the bot to quit, kills it after the grace period and always
// waits for it. Safe to call more than once.
func (p *Process) Close() error {
	p.closeOnce.Do(func() {
		_ = p.Send("quit")

		p.mu.Lock()
		p.closed = true
		_ = p.stdin.Close()
		p.mu.Unlock()

		done := make(chan error, 1)
		go func() {
			done <- p.cmd.Wait()
		}()

		select {
		case err := <-done:
			p.log.Debug().Err(err).Msg("bot exited")
		case <-time.After(p.grace):
			p.log.Warn().Dur("grace", p.grace).Msg("bot ignored quit, killing")
			if err := p.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
				p.closeErr = fmt.Errorf("failed to kill bot %s: %w", p.name, err)
			}
			<-done
		}
	})
	return p.closeErr
}

// Exited reports whether the process has been reaped
func (p *Process) Exited() bool {
	return p.cmd.ProcessState != nil
}
