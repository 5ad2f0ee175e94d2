package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun_Arguments(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"No subcommand", nil},
		{"Unknown subcommand", []string{"serve"}},
		{"Matchup missing bots", []string{"matchup", "11"}},
		{"Matchup bad size", []string{"matchup", "27", "a", "b"}},
		{"Matchup size not a number", []string{"matchup", "big", "a", "b"}},
		{"Test missing color", []string{"test", "./bot"}},
		{"Test bad color", []string{"test", "./bot", "red"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			assert.Error(t, run(tt.args, &stdout, &stderr))
		})
	}
}

func TestRun_Help(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.NoError(t, run([]string{"-h"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "matchup [-timeout d] <size> <black_bot> <white_bot>")
}
