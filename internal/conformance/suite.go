// FILE: internal/conformance/suite.go
package conformance

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"hexref/internal/core"
	"hexref/internal/move"
	"hexref/internal/randombot"
)

//go:embed cases.yaml
var defaultCases []byte

var validate = validator.New()

type Suite struct {
	Sections []Section `yaml:"sections" validate:"min=1,dive"`
}

type Section struct {
	Title string `yaml:"title" validate:"required"`
	About string `yaml:"about"`
	Cases []Case `yaml:"cases" validate:"min=1,dive"`
}

// Case sets up a fresh bot and compares its reply to one query, or to
// several when Steps are given
type Case struct {
	Name    string   `yaml:"name" validate:"required"`
	Size    int      `yaml:"size" validate:"min=1,max=26"`
	Own     []string `yaml:"own"`
	Other   []string `yaml:"other"`
	Black   []string `yaml:"black"`
	White   []string `yaml:"white"`
	Fill    string   `yaml:"fill" validate:"omitempty,oneof=own other"`
	Command string   `yaml:"command" validate:"omitempty,oneof=show_board check_win"`
	Expect  string   `yaml:"expect"`
	Steps   []Step   `yaml:"steps" validate:"dive"`
}

type Step struct {
	Name    string   `yaml:"name" validate:"required"`
	Send    []string `yaml:"send"`
	Command string   `yaml:"command" validate:"omitempty,oneof=show_board check_win"`
	Expect  string   `yaml:"expect"`
}

// Load parses and validates a case table
func Load(data []byte) (*Suite, error) {
	var s Suite
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse cases: %w", err)
	}
	if err := validate.Struct(&s); err != nil {
		return nil, fmt.Errorf("invalid cases: %w", err)
	}
	return &s, nil
}

// Default returns the built-in case table
func Default() (*Suite, error) {
	return Load(defaultCases)
}

// Len counts the checks the suite performs
func (s *Suite) Len() int {
	n := 0
	for _, sec := range s.Sections {
		for _, c := range sec.Cases {
			if len(c.Steps) > 0 {
				n += len(c.Steps)
			} else {
				n++
			}
		}
	}
	return n
}

func commandOrDefault(cmd string) string {
	if cmd == "" {
		return "show_board"
	}
	return cmd
}

// Setup lists the commands that prepare the board for a bot playing color
func (c Case) Setup(color core.Tile) []string {
	lines := []string{fmt.Sprintf("init_board %d", c.Size)}

	own, other := c.Own, c.Other
	switch c.Fill {
	case "own":
		own = append(append([]string(nil), own...), allCells(c.Size)...)
	case "other":
		other = append(append([]string(nil), other...), allCells(c.Size)...)
	}
	if color == core.FirstPlayer {
		own = append(append([]string(nil), own...), c.Black...)
		other = append(append([]string(nil), other...), c.White...)
	} else {
		own = append(append([]string(nil), own...), c.White...)
		other = append(append([]string(nil), other...), c.Black...)
	}

	for _, coord := range own {
		lines = append(lines, "sety "+coord)
	}
	for _, coord := range other {
		lines = append(lines, "seto "+coord)
	}
	return lines
}

func allCells(size int) []string {
	cells := make([]string, 0, size*size)
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			cells = append(cells, move.At(r, c).String())
		}
	}
	return cells
}

// expected resolves the reply a correct bot gives to command after script.
// An explicit expectation uses X for the bot's letter and O for the
// opponent's.
func expected(color core.Tile, script []string, command, explicit string) (string, error) {
	if explicit != "" {
		r := strings.NewReplacer(
			"X", string(color.Letter()),
			"O", string(core.Opponent(color).Letter()),
		)
		return r.Replace(explicit), nil
	}

	ref := randombot.New(color, zerolog.Nop())
	for _, line := range script {
		if _, _, err := ref.Handle(line); err != nil {
			return "", fmt.Errorf("reference bot rejected %q: %w", line, err)
		}
	}
	reply, _, err := ref.Handle(command)
	return reply, err
}
