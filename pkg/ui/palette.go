package ui

import (
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const (
	reset        = "\033[0m"
	brightRed    = "\033[91m"
	brightYellow = "\033[93m"
	brightBlue   = "\033[94m"
	gray         = "\033[90m"
)

// ColorMode decides whether escape codes are written.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// isTerminal allows tests to stub terminal detection.
var isTerminal = term.IsTerminal

// Palette wraps text in ANSI colors when Enabled.
type Palette struct {
	Enabled bool
}

// NewPalette resolves mode against w. Auto colors only terminals and honors
// NO_COLOR.
func NewPalette(mode ColorMode, w io.Writer) Palette {
	switch mode {
	case ColorAlways:
		return Palette{Enabled: true}
	case ColorNever:
		return Palette{}
	}
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return Palette{}
	}
	f, ok := w.(*os.File)
	if !ok {
		return Palette{}
	}
	return Palette{Enabled: isTerminal(int(f.Fd()))}
}

// ParseColorMode accepts auto, always and never, case-insensitively.
func ParseColorMode(s string) (ColorMode, bool) {
	switch mode := ColorMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case ColorAuto, ColorAlways, ColorNever:
		return mode, true
	case "":
		return ColorAuto, true
	}
	return "", false
}

func (p Palette) wrap(code, s string) string {
	if !p.Enabled {
		return s
	}
	return code + s + reset
}

func (p Palette) Red(s string) string    { return p.wrap(brightRed, s) }
func (p Palette) Yellow(s string) string { return p.wrap(brightYellow, s) }
func (p Palette) Blue(s string) string   { return p.wrap(brightBlue, s) }
func (p Palette) Gray(s string) string   { return p.wrap(gray, s) }
