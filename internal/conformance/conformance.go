// FILE: internal/conformance/conformance.go
package conformance

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"hexref/internal/core"
	"hexref/internal/display"
)

// Conn is one running bot under test
type Conn interface {
	Send(command string) error
	Request(ctx context.Context, command string) (string, error)
	Close() error
}

// SpawnFunc starts a fresh bot playing color
type SpawnFunc func(color core.Tile) (Conn, error)

type Result struct {
	Section  string
	Name     string
	Expected string
	Real     string
	Err      error
}

func (r Result) Passed() bool {
	return r.Err == nil && r.Expected == r.Real
}

type Report struct {
	Results []Result
	Passed  int
	Failed  int
}

func (r *Report) add(res Result) {
	r.Results = append(r.Results, res)
	if res.Passed() {
		r.Passed++
	} else {
		r.Failed++
	}
}

type Runner struct {
	spawn   SpawnFunc
	color   core.Tile
	out     io.Writer
	paint   bool
	timeout time.Duration
	log     zerolog.Logger
}

func NewRunner(spawn SpawnFunc, color core.Tile, out io.Writer, paint bool, timeout time.Duration, log zerolog.Logger) *Runner {
	return &Runner{
		spawn:   spawn,
		color:   color,
		out:     out,
		paint:   paint,
		timeout: timeout,
		log:     log,
	}
}

// Run executes every case against a fresh bot and prints each verdict
func (r *Runner) Run(ctx context.Context, s *Suite) *Report {
	report := &Report{}

	for _, sec := range s.Sections {
		fmt.Fprintln(r.out, sectionHeader(sec.Title))
		if sec.About != "" {
			fmt.Fprintln(r.out, sec.About)
		}

		for _, c := range sec.Cases {
			for _, res := range r.runCase(ctx, sec.Title, c) {
				r.print(res)
				report.add(res)
			}
		}
	}

	summary := fmt.Sprintf("%d passed, %d failed", report.Passed, report.Failed)
	if report.Failed > 0 {
		fmt.Fprintln(r.out, display.Paint(r.paint, display.Red, summary))
	} else {
		fmt.Fprintln(r.out, display.Paint(r.paint, display.Green, summary))
	}
	return report
}

func sectionHeader(title string) string {
	pad := 60 - len(title)
	if pad < 3 {
		pad = 3
	}
	return title + " " + strings.Repeat("=", pad)
}

type check struct {
	name    string
	send    []string
	command string
	expect  string
}

func (c Case) checks() []check {
	if len(c.Steps) == 0 {
		return []check{{name: c.Name, command: commandOrDefault(c.Command), expect: c.Expect}}
	}
	out := make([]check, 0, len(c.Steps))
	for _, s := range c.Steps {
		out = append(out, check{
			name:    s.Name,
			send:    s.Send,
			command: commandOrDefault(s.Command),
			expect:  s.Expect,
		})
	}
	return out
}

// runCase plays every check of c against one bot. Once the bot fails to
// answer, the remaining checks fail with the same error.
func (r *Runner) runCase(ctx context.Context, section string, c Case) []Result {
	checks := c.checks()
	results := make([]Result, 0, len(checks))
	script := c.Setup(r.color)

	fail := func(from int, err error) []Result {
		for _, ch := range checks[from:] {
			results = append(results, Result{Section: section, Name: ch.name, Err: err})
		}
		return results
	}

	conn, err := r.spawn(r.color)
	if err != nil {
		return fail(0, fmt.Errorf("failed to spawn bot: %w", err))
	}
	defer func() {
		if err := conn.Close(); err != nil {
			r.log.Warn().Err(err).Str("case", c.Name).Msg("bot did not shut down cleanly")
		}
	}()

	if err := sendAll(conn, script); err != nil {
		return fail(0, err)
	}

	for i, ch := range checks {
		if err := sendAll(conn, ch.send); err != nil {
			return fail(i, err)
		}
		script = append(script, ch.send...)

		want, err := expected(r.color, script, ch.command, ch.expect)
		if err != nil {
			return fail(i, err)
		}

		reqCtx, cancel := r.requestContext(ctx)
		got, err := conn.Request(reqCtx, ch.command)
		cancel()

		res := Result{Section: section, Name: ch.name, Expected: want, Real: got, Err: err}
		results = append(results, res)
		if err != nil {
			return fail(i+1, err)
		}
	}
	return results
}

func (r *Runner) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout > 0 {
		return context.WithTimeout(ctx, r.timeout)
	}
	return context.WithCancel(ctx)
}

func sendAll(conn Conn, lines []string) error {
	for _, line := range lines {
		if err := conn.Send(line); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) print(res Result) {
	if res.Passed() {
		fmt.Fprintln(r.out, display.Paint(r.paint, display.Green, fmt.Sprintf("✓ %s... ok", res.Name)))
		return
	}

	fmt.Fprintln(r.out, display.Paint(r.paint, display.Bold+display.Red, fmt.Sprintf("✗ %s... FAILED", res.Name)))
	fmt.Fprintln(r.out, display.Paint(r.paint, display.Red, "EXPECTED ===================="))
	fmt.Fprintln(r.out, res.Expected)
	fmt.Fprintln(r.out, display.Paint(r.paint, display.Red, "REAL ========================"))
	if res.Err != nil {
		fmt.Fprintf(r.out, "<%v>\n", res.Err)
	} else {
		fmt.Fprintln(r.out, res.Real)
	}
	fmt.Fprintln(r.out, display.Paint(r.paint, display.Red, "============================="))
}
