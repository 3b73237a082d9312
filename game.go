package main

import (
	"fmt"
	"image/color"
	"log"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"scratchcard/internal/assets"
	"scratchcard/internal/config"
	"scratchcard/internal/entity"
	"scratchcard/internal/fair"
	"scratchcard/internal/gamemode"
	"scratchcard/internal/input"
	"scratchcard/internal/sound"
)

var messageFace = text.NewGoXFace(basicfont.Face7x13)

// Game holds global state
type Game struct {
	cfg *config.Config

	tiles  []*entity.Tile
	button *entity.Button
	coins  *entity.Coins
	card   *gamemode.ScratchCard

	router   *input.Router
	pointers []input.Pointer
	err      error
}

func NewGame(cfg *config.Config) (*Game, error) {
	// Audio Init
	ctx := audio.NewContext(sound.SampleRate)
	jingle, err := sound.NewCelebration(ctx, sound.WinJingle)
	if err != nil {
		return nil, fmt.Errorf("create jingle player: %w", err)
	}

	seeds, err := fair.NewSeeds()
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(rand.Int63()))
	am := assets.NewManager(int(cfg.Grid.TileSize), cfg.Scratch.BrushRadius)

	g := &Game{cfg: cfg}
	g.coins = entity.NewCoins(cfg.Coins, am.CoinFrames(cfg.Coins.Frames), rng)

	tiles := make([]gamemode.Tile, cfg.Grid.Tiles())
	var regions []input.Region
	for i := range tiles {
		x, y := cfg.Grid.TilePos(i)
		t := entity.NewTile(x, y, cfg, am, rng)
		g.tiles = append(g.tiles, t)
		tiles[i] = t
		regions = append(regions, input.Region{
			Rect:   input.Rect{X: x, Y: y, W: t.Size, H: t.Size},
			Target: t,
		})
	}

	g.card = gamemode.NewScratchCard(cfg.Prizes, tiles, g.coins, jingle, seeds)
	for i, t := range g.tiles {
		t.OnRevealed(func() {
			s := t.Surface()
			log.Printf("tile_revealed round=%s tile=%d samples=%d coverage=%.2f",
				g.card.RoundID, i, len(s.Samples()), s.Coverage(16))
			g.card.TileRevealed()
		})
	}

	g.button = entity.NewButton(cfg.Button, gamemode.LabelRevealAll, func() {
		if err := g.card.PressButton(); err != nil {
			g.err = err
		}
	})
	regions = append(regions, input.Region{Rect: g.button.Rect, Target: g.button})
	g.router = input.NewRouter(regions...)

	log.Printf("session_start server_seed=%s client_seed=%s", seeds.Server, seeds.Client)
	if err := g.card.NewRound(); err != nil {
		return nil, err
	}
	return g, nil
}

// Update: Logic (60 TPS)
func (g *Game) Update() error {
	dt := 1 / float64(ebiten.TPS())

	g.pointers = input.Poll(g.pointers)
	g.router.Route(g.pointers)
	if g.err != nil {
		return g.err
	}

	for _, t := range g.tiles {
		t.Update(dt)
	}
	g.coins.Update(dt)
	g.button.Label = g.card.Button
	return nil
}

// Draw: Rendering (VSync)
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.cfg.Background.RGBA)

	for _, t := range g.tiles {
		t.Draw(screen)
	}
	g.button.Draw(screen)

	if g.card.MessageVisible {
		g.drawMessage(screen)
	}
	g.coins.Draw(screen)
}

func (g *Game) drawMessage(screen *ebiten.Image) {
	op := &text.DrawOptions{}
	// basicfont is 13px tall, the banner wants ~30px
	op.GeoM.Scale(2.3, 2.3)
	op.GeoM.Translate(float64(g.cfg.Message.X), float64(g.cfg.Message.Y))

	shadow := *op
	shadow.GeoM.Translate(2, 2)
	shadow.ColorScale.ScaleWithColor(color.Black)
	text.Draw(screen, g.card.Message, messageFace, &shadow)

	op.ColorScale.ScaleWithColor(g.cfg.Message.Color.RGBA)
	text.Draw(screen, g.card.Message, messageFace, op)
}

// Layout: Scaling Strategy
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	// Always render at canvas size, let Ebiten scale it to the window
	return g.cfg.Canvas.Width, g.cfg.Canvas.Height
}
