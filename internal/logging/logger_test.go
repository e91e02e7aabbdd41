package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{" error ", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"nonsense", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, expected %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestInit_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	Info().Int("film_id", 603).Msg("recorded pick")
	Debug().Msg("hidden")

	out := buf.String()
	if !strings.Contains(out, `"film_id":603`) {
		t.Errorf("Expected film_id field in output, got %s", out)
	}
	if !strings.Contains(out, `"message":"recorded pick"`) {
		t.Errorf("Expected message in output, got %s", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("Debug message should be filtered at info level, got %s", out)
	}
}

func TestWith_AddsComponent(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	l := With("tmdb")
	l.Info().Msg("hello")

	if !strings.Contains(buf.String(), `"component":"tmdb"`) {
		t.Errorf("Expected component field, got %s", buf.String())
	}
}
