package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/beka-birhanu/amazeing/maze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfig = `# maze settings
WIDTH=20
HEIGHT=15
ENTRY=0,0
EXIT=19,14
OUTPUT_FILE=maze.txt
PERFECT=True
`

func parse(t *testing.T, text string) (*MazeConfig, *ConfigError) {
	t.Helper()
	cfg, err := ParseMazeConfig(strings.NewReader(text))
	if err == nil {
		return cfg, nil
	}
	var cerr *ConfigError
	require.ErrorAs(t, err, &cerr)
	return nil, cerr
}

func TestParseMazeConfig(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		cfg, cerr := parse(t, validConfig)
		require.Nil(t, cerr)
		assert.Equal(t, 20, cfg.Width)
		assert.Equal(t, 15, cfg.Height)
		assert.Equal(t, maze.Position{X: 0, Y: 0}, cfg.Entry)
		assert.Equal(t, maze.Position{X: 19, Y: 14}, cfg.Exit)
		assert.Equal(t, "maze.txt", cfg.OutputFile)
		assert.True(t, cfg.Perfect)
		assert.Nil(t, cfg.Seed)
		assert.Equal(t, maze.Rectangle, cfg.Shape)

		mc := cfg.Maze()
		assert.NoError(t, mc.Validate())
	})

	t.Run("Optional keys and case", func(t *testing.T) {
		cfg, cerr := parse(t, "width=9\nHeight=7\nentry=1, 1\nExit=8,6\noutput_file=out.txt\nperfect=no\nseed=4294967295\nshape=Diamond\nCOLOR=red\n")
		require.Nil(t, cerr)
		require.NotNil(t, cfg.Seed)
		assert.Equal(t, uint32(4294967295), *cfg.Seed)
		assert.False(t, cfg.Perfect)
		assert.Equal(t, maze.Diamond, cfg.Shape)
		assert.Equal(t, maze.Position{X: 1, Y: 1}, cfg.Entry)
	})

	t.Run("Literal dollar values", func(t *testing.T) {
		for _, line := range []string{
			"OUTPUT_FILE=maze_$HOME.txt\n",
			"OUTPUT_FILE=maze_$HOME.txt # keep the dollar\n",
			"OUTPUT_FILE='maze_$HOME.txt'\n",
		} {
			cfg, cerr := parse(t, strings.Replace(validConfig, "OUTPUT_FILE=maze.txt\n", line, 1))
			require.Nil(t, cerr, line)
			assert.Equal(t, "maze_$HOME.txt", cfg.OutputFile, line)
		}
	})

	t.Run("Stray lines are skipped", func(t *testing.T) {
		cfg, cerr := parse(t, "just a note\n"+validConfig+"another: note\nbad-key=1\n")
		require.Nil(t, cerr)
		assert.Equal(t, 20, cfg.Width)
		assert.Equal(t, "maze.txt", cfg.OutputFile)
	})

	tests := []struct {
		name   string
		config string
		fields []string
	}{
		{"Empty", "", []string{KeyWidth, KeyHeight, KeyEntry, KeyExit, KeyOutputFile, KeyPerfect}},
		{"Bad numbers", strings.Replace(strings.Replace(validConfig, "WIDTH=20", "WIDTH=wide", 1), "HEIGHT=15", "HEIGHT=-3", 1), []string{KeyWidth, KeyHeight}},
		{"Same endpoints", strings.Replace(validConfig, "EXIT=19,14", "EXIT=0,0", 1), []string{KeyExit}},
		{"Out of bounds", strings.Replace(validConfig, "ENTRY=0,0", "ENTRY=20,0", 1), []string{KeyEntry}},
		{"Bad coordinate", strings.Replace(validConfig, "EXIT=19,14", "EXIT=19", 1), []string{KeyExit}},
		{"Bad boolean", strings.Replace(validConfig, "PERFECT=True", "PERFECT=maybe", 1), []string{KeyPerfect}},
		{"Bad seed", validConfig + "SEED=4294967296\n", []string{KeySeed}},
		{"Bad shape", validConfig + "SHAPE=hexagon\n", []string{KeyShape}},
		{"Duplicate key", validConfig + "width=30\n", []string{KeyWidth}},
		{"Repeated key", validConfig + "WIDTH=9\n", []string{KeyWidth}},
		{"Key repeated twice", validConfig + "WIDTH=9\nWIDTH=10\n", []string{KeyWidth}},
		{"Double quoted dollar", strings.Replace(validConfig, "OUTPUT_FILE=maze.txt", `OUTPUT_FILE="maze_$HOME.txt"`, 1), []string{KeyOutputFile}},
		{"Dollar with single quote", strings.Replace(validConfig, "OUTPUT_FILE=maze.txt", "OUTPUT_FILE=it's_$HOME.txt", 1), []string{KeyOutputFile}},
		{"Unterminated quote", validConfig + "SHAPE='circle\n", []string{"file"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, cerr := parse(t, tt.config)
			assert.Nil(t, cfg)
			require.NotNil(t, cerr)

			var fields []string
			for _, f := range cerr.Fields {
				fields = append(fields, f.Field)
			}
			assert.ElementsMatch(t, tt.fields, fields)
			assert.True(t, strings.HasPrefix(cerr.Error(), "invalid configuration:\n- "))
		})
	}
}

func TestLoadMazeConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.txt")
	require.NoError(t, os.WriteFile(path, []byte(validConfig), 0o644))

	cfg, err := LoadMazeConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "maze.txt", cfg.OutputFile)

	_, err = LoadMazeConfig(filepath.Join(t.TempDir(), "missing.txt"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestValidateMaze(t *testing.T) {
	valid := maze.Config{Width: 10, Height: 10, Exit: maze.Position{X: 9, Y: 9}}
	assert.NoError(t, ValidateMaze(valid, 50))

	tooBig := valid
	tooBig.Width = 51
	err := ValidateMaze(tooBig, 50)
	var cerr *ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.True(t, cerr.Has(KeyWidth))

	assert.NoError(t, ValidateMaze(tooBig, 0))

	same := valid
	same.Exit = same.Entry
	same.Shape = "star"
	require.ErrorAs(t, ValidateMaze(same, 0), &cerr)
	assert.True(t, cerr.Has(KeyExit))
	assert.True(t, cerr.Has(KeyShape))
}

func TestConfigError(t *testing.T) {
	cerr := &ConfigError{}
	assert.NoError(t, cerr.OrNil())

	cerr.Add(KeyWidth, "must be positive, got %d", -1)
	cerr.Add(KeyExit, "is required")
	assert.Equal(t, "invalid configuration:\n- WIDTH: must be positive, got -1\n- EXIT: is required", cerr.Error())
	assert.Error(t, cerr.OrNil())
}

func TestParseBool(t *testing.T) {
	for _, s := range []string{"true", "YES", "On", "1"} {
		b, err := parseBool(s)
		require.NoError(t, err)
		assert.True(t, b)
	}
	for _, s := range []string{"false", "No", "OFF", "0"} {
		b, err := parseBool(s)
		require.NoError(t, err)
		assert.False(t, b)
	}
	_, err := parseBool("maybe")
	assert.Error(t, err)
}
