package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/beka-birhanu/amazeing/maze"
	"github.com/joho/godotenv"
)

// Maze configuration keys.
const (
	KeyWidth      = "WIDTH"
	KeyHeight     = "HEIGHT"
	KeyEntry      = "ENTRY"
	KeyExit       = "EXIT"
	KeyOutputFile = "OUTPUT_FILE"
	KeyPerfect    = "PERFECT"
	KeySeed       = "SEED"
	KeyShape      = "SHAPE"
)

// MazeConfig is a validated maze configuration file.
type MazeConfig struct {
	Width      int
	Height     int
	Entry      maze.Position
	Exit       maze.Position
	OutputFile string
	Perfect    bool
	Seed       *uint32
	Shape      maze.Shape
}

// Maze returns the generator configuration.
func (c *MazeConfig) Maze() maze.Config {
	return maze.Config{
		Width:   c.Width,
		Height:  c.Height,
		Entry:   c.Entry,
		Exit:    c.Exit,
		Perfect: c.Perfect,
		Seed:    c.Seed,
		Shape:   c.Shape,
	}
}

// LoadMazeConfig reads and validates the configuration file at path.
func LoadMazeConfig(path string) (*MazeConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening maze config: %w", err)
	}
	defer f.Close()
	return ParseMazeConfig(f)
}

// ParseMazeConfig reads KEY=VALUE lines from r. Keys are case-insensitive,
// '#' starts a comment, unknown keys are ignored and lines without '=' are
// skipped. Values are taken literally, '$' included. Every problem is
// collected into a *ConfigError before returning.
func ParseMazeConfig(r io.Reader) (*MazeConfig, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading maze config: %w", err)
	}

	cerr := &ConfigError{}
	raw, err := godotenv.Parse(bytes.NewReader(scanMazeConfig(src, cerr)))
	if err != nil {
		cerr.Add("file", "%v", err)
		return nil, cerr
	}

	values := make(map[string]string, len(raw))
	for k, v := range raw {
		values[k] = strings.TrimSpace(v)
	}

	cfg := &MazeConfig{}
	cfg.Width = requireInt(cerr, values, KeyWidth)
	cfg.Height = requireInt(cerr, values, KeyHeight)
	cfg.Entry = requirePosition(cerr, values, KeyEntry)
	cfg.Exit = requirePosition(cerr, values, KeyExit)

	if v, ok := required(cerr, values, KeyOutputFile); ok {
		cfg.OutputFile = v
	}

	if v, ok := required(cerr, values, KeyPerfect); ok {
		b, err := parseBool(v)
		if err != nil {
			cerr.Add(KeyPerfect, "must be true or false, got %q", v)
		}
		cfg.Perfect = b
	}

	if v, ok := values[KeySeed]; ok && v != "" {
		seed, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			cerr.Add(KeySeed, "must be an integer between 0 and %d, got %q", uint32(1<<32-1), v)
		} else {
			s := uint32(seed)
			cfg.Seed = &s
		}
	}

	shape, err := maze.ParseShape(values[KeyShape])
	if err != nil {
		cerr.Add(KeyShape, "must be one of %s, got %q", shapeNames(), values[KeyShape])
	}
	cfg.Shape = shape

	validateBounds(cerr, cfg)
	if err := cerr.OrNil(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// scanMazeConfig rewrites src into a dotenv document holding one line per
// key, upper-cased. Lines without '=' are dropped, repeated keys are reported
// and only their first value kept, and unquoted values containing '$' are
// single-quoted so they are not expanded.
func scanMazeConfig(src []byte, cerr *ConfigError) []byte {
	var out bytes.Buffer
	seen := make(map[string]bool)
	for _, line := range strings.Split(strings.ReplaceAll(string(src), "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key := strings.TrimSpace(strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(k)), "EXPORT "))
		if !isKeyName(key) {
			continue
		}
		if seen[key] {
			if !cerr.Has(key) {
				cerr.Add(key, "defined more than once")
			}
			continue
		}
		seen[key] = true

		v = strings.TrimSpace(v)
		if strings.Contains(v, "$") {
			quoted, ok := literalValue(v)
			if !ok {
				cerr.Add(key, "may hold '$' only unquoted or in single quotes, got %s", v)
				continue
			}
			v = quoted
		}
		out.WriteString(key + "=" + v + "\n")
	}
	return out.Bytes()
}

// literalValue protects a value holding '$' from variable expansion. Double
// quotes expand variables, so they are refused.
func literalValue(v string) (string, bool) {
	switch {
	case strings.HasPrefix(v, "'"):
		return v, true
	case strings.HasPrefix(v, `"`):
		return v, false
	}
	for i := 1; i < len(v); i++ {
		if v[i] == '#' && (v[i-1] == ' ' || v[i-1] == '\t') {
			v = strings.TrimSpace(v[:i])
			break
		}
	}
	if strings.Contains(v, "'") {
		return v, false
	}
	return "'" + v + "'", true
}

func isKeyName(key string) bool {
	if key == "" {
		return false
	}
	for _, c := range key {
		if !(c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_' || c == '.') {
			return false
		}
	}
	return true
}

// ValidateMaze checks a generator configuration the same way the file
// loader does, reporting field-qualified problems. maxDimension bounds width
// and height when positive.
func ValidateMaze(c maze.Config, maxDimension int) error {
	cerr := &ConfigError{}
	if _, err := maze.ParseShape(string(c.Shape)); err != nil {
		cerr.Add(KeyShape, "must be one of %s, got %q", shapeNames(), c.Shape)
	}
	cfg := &MazeConfig{Width: c.Width, Height: c.Height, Entry: c.Entry, Exit: c.Exit}
	for _, d := range []struct {
		key   string
		value int
	}{{KeyWidth, c.Width}, {KeyHeight, c.Height}} {
		switch {
		case d.value <= 0:
			cerr.Add(d.key, "must be positive, got %d", d.value)
		case maxDimension > 0 && d.value > maxDimension:
			cerr.Add(d.key, "must be at most %d, got %d", maxDimension, d.value)
		}
	}
	validateBounds(cerr, cfg)
	return cerr.OrNil()
}

// validateBounds checks entry and exit against the dimensions when those
// parsed cleanly.
func validateBounds(cerr *ConfigError, cfg *MazeConfig) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return
	}
	for _, e := range []struct {
		key string
		p   maze.Position
	}{{KeyEntry, cfg.Entry}, {KeyExit, cfg.Exit}} {
		if cerr.Has(e.key) {
			continue
		}
		if e.p.X < 0 || e.p.X >= cfg.Width || e.p.Y < 0 || e.p.Y >= cfg.Height {
			cerr.Add(e.key, "%s is outside the %dx%d maze", e.p, cfg.Width, cfg.Height)
		}
	}
	if !cerr.Has(KeyEntry) && !cerr.Has(KeyExit) && cfg.Entry == cfg.Exit {
		cerr.Add(KeyExit, "must differ from %s", KeyEntry)
	}
}

// required returns the value of key, reporting it missing unless a problem
// was already recorded for it.
func required(cerr *ConfigError, values map[string]string, key string) (string, bool) {
	v, ok := values[key]
	if !ok || v == "" {
		if !cerr.Has(key) {
			cerr.Add(key, "is required")
		}
		return "", false
	}
	return v, true
}

func requireInt(cerr *ConfigError, values map[string]string, key string) int {
	v, ok := required(cerr, values, key)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		cerr.Add(key, "must be an integer, got %q", v)
		return 0
	}
	if n <= 0 {
		cerr.Add(key, "must be positive, got %d", n)
		return 0
	}
	return n
}

func requirePosition(cerr *ConfigError, values map[string]string, key string) maze.Position {
	v, ok := required(cerr, values, key)
	if !ok {
		return maze.Position{}
	}
	p, err := ParsePosition(v)
	if err != nil {
		cerr.Add(key, "%v", err)
	}
	return p
}

// ParsePosition parses an "x,y" pair of integers.
func ParsePosition(s string) (maze.Position, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return maze.Position{}, fmt.Errorf("must be x,y, got %q", s)
	}
	x, errX := strconv.Atoi(strings.TrimSpace(xs))
	y, errY := strconv.Atoi(strings.TrimSpace(ys))
	if errX != nil || errY != nil {
		return maze.Position{}, fmt.Errorf("must be two integers x,y, got %q", s)
	}
	return maze.Position{X: x, Y: y}, nil
}

// parseBool accepts true/false, yes/no, on/off and 1/0 in any case.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", s)
}

func shapeNames() string {
	names := make([]string, len(maze.Shapes))
	for n, s := range maze.Shapes {
		names[n] = string(s)
	}
	return strings.Join(names, ", ")
}
