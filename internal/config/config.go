package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"sync"

	"scratchcard/internal/prize"
)

//go:embed game.json
var defaultConfig []byte

type Canvas struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type Grid struct {
	Cols     int     `json:"cols"`
	Rows     int     `json:"rows"`
	OriginX  float64 `json:"origin_x"`
	OriginY  float64 `json:"origin_y"`
	Pitch    float64 `json:"pitch"`
	TileSize float64 `json:"tile_size"`
}

// Tiles is the number of tiles on the card.
func (g Grid) Tiles() int { return g.Cols * g.Rows }

// TilePos is the top-left corner of tile i, filled row by row.
func (g Grid) TilePos(i int) (float64, float64) {
	col := i % g.Cols
	row := i / g.Cols
	return g.OriginX + g.Pitch*float64(col), g.OriginY + g.Pitch*float64(row)
}

type Scratch struct {
	BrushRadius float64 `json:"brush_radius"`
	MaxSamples  int     `json:"max_samples"`
}

type Button struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Color  Color   `json:"color"`
}

type Message struct {
	X     int   `json:"x"`
	Y     int   `json:"y"`
	Color Color `json:"color"`
}

// Coins configures the celebration particle emitter.
type Coins struct {
	Width              float64 `json:"width"`
	SpawnHeight        float64 `json:"spawn_height"`
	Frequency          float64 `json:"frequency"` // seconds between spawns
	Lifetime           float64 `json:"lifetime"`  // seconds
	SpeedMin           float64 `json:"speed_min"` // px/sec
	SpeedMax           float64 `json:"speed_max"`
	DirectionDeg       float64 `json:"direction_deg"`
	MaxParticles       int     `json:"max_particles"`
	Scale              float64 `json:"scale"`
	MinScaleMultiplier float64 `json:"min_scale_multiplier"`
	Framerate          float64 `json:"framerate"`
	Frames             int     `json:"frames"`
}

type WinPulse struct {
	From   float64 `json:"from"`
	To     float64 `json:"to"`
	Period float64 `json:"period"` // seconds per half cycle
}

type Config struct {
	Title      string      `json:"title"`
	Canvas     Canvas      `json:"canvas"`
	Background Color       `json:"background"`
	Grid       Grid        `json:"grid"`
	Scratch    Scratch     `json:"scratch"`
	Button     Button      `json:"button"`
	Message    Message     `json:"message"`
	Coins      Coins       `json:"coins"`
	WinPulse   WinPulse    `json:"win_pulse"`
	Prizes     prize.Table `json:"prizes"`
}

// Color decodes "#rrggbb" strings.
type Color struct {
	color.RGBA
}

func (c *Color) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("color: %w", err)
	}
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return fmt.Errorf("color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fmt.Errorf("color %q: %w", s, err)
	}
	c.RGBA = color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 0xff}
	return nil
}

var (
	ErrBadCanvas = errors.New("canvas size must be positive")
	ErrBadGrid   = errors.New("grid must have at least one tile")
)

var (
	cfg      *Config
	loadOnce sync.Once
	loadErr  error
)

// Load parses the embedded configuration once and returns it.
func Load() (*Config, error) {
	loadOnce.Do(func() {
		cfg, loadErr = LoadBytes(defaultConfig)
	})
	return cfg, loadErr
}

// LoadBytes parses and validates a JSON configuration.
func LoadBytes(data []byte) (*Config, error) {
	var c Config
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game config: %w", err)
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Title == "" {
		c.Title = "Scratch Card"
	}
	if c.Grid.TileSize == 0 {
		c.Grid.TileSize = c.Grid.Pitch
	}
	if c.WinPulse.Period <= 0 {
		c.WinPulse = WinPulse{From: 0.7, To: 1, Period: 1}
	}
	if c.Coins.Frames <= 0 {
		c.Coins.Frames = 1
	}
}

func (c *Config) Validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return ErrBadCanvas
	}
	if c.Grid.Tiles() <= 0 {
		return ErrBadGrid
	}
	if c.Scratch.BrushRadius*2 > c.Grid.TileSize {
		return fmt.Errorf("brush radius %.0f does not fit tile size %.0f", c.Scratch.BrushRadius, c.Grid.TileSize)
	}
	if err := c.Prizes.Validate(); err != nil {
		return fmt.Errorf("prizes: %w", err)
	}
	if n := c.Grid.Tiles(); n > 2*len(c.Prizes)+1 {
		return fmt.Errorf("%w: %d prizes, %d tiles", prize.ErrTableTooSmall, len(c.Prizes), n)
	}
	return nil
}
