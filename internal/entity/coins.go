package entity

import (
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"

	"scratchcard/internal/config"
)

type coin struct {
	x, y   float64
	dx, dy float64 // unit direction
	age    float64
	scale  float64
	frame0 int
}

// Coins is the falling coin shower shown on a win. Paused emitters keep
// updating the coins already in flight.
type Coins struct {
	X, Y float64

	cfg      config.Coins
	frames   []*ebiten.Image
	rng      *rand.Rand
	emitting bool
	spawnAcc float64
	coins    []coin
}

func NewCoins(cfg config.Coins, frames []*ebiten.Image, rng *rand.Rand) *Coins {
	return &Coins{cfg: cfg, frames: frames, rng: rng}
}

func (c *Coins) Play() {
	c.emitting = true
}

func (c *Coins) Pause() {
	c.emitting = false
	c.spawnAcc = 0
}

func (c *Coins) Emitting() bool { return c.emitting }

// Count is the number of coins alive.
func (c *Coins) Count() int { return len(c.coins) }

func (c *Coins) Update(dt float64) {
	live := c.coins[:0]
	for _, p := range c.coins {
		p.age += dt
		if p.age >= c.cfg.Lifetime {
			continue
		}
		speed := c.speedAt(p.age)
		p.x += p.dx * speed * dt
		p.y += p.dy * speed * dt
		live = append(live, p)
	}
	c.coins = live

	if !c.emitting || c.cfg.Frequency <= 0 {
		return
	}
	c.spawnAcc += dt
	for c.spawnAcc >= c.cfg.Frequency {
		c.spawnAcc -= c.cfg.Frequency
		if len(c.coins) < c.cfg.MaxParticles {
			c.spawn()
		}
	}
}

// speedAt interpolates from SpeedMin to SpeedMax over the coin lifetime.
func (c *Coins) speedAt(age float64) float64 {
	f := age / c.cfg.Lifetime
	return c.cfg.SpeedMin + (c.cfg.SpeedMax-c.cfg.SpeedMin)*f
}

func (c *Coins) spawn() {
	rad := c.cfg.DirectionDeg * math.Pi / 180
	mult := c.cfg.MinScaleMultiplier + (1-c.cfg.MinScaleMultiplier)*c.rng.Float64()
	p := coin{
		x:     c.rng.Float64() * c.cfg.Width,
		y:     c.rng.Float64() * c.cfg.SpawnHeight,
		dx:    math.Cos(rad),
		dy:    math.Sin(rad),
		scale: c.cfg.Scale * mult,
	}
	if len(c.frames) > 0 {
		p.frame0 = c.rng.Intn(len(c.frames))
	}
	c.coins = append(c.coins, p)
}

func (c *Coins) Draw(screen *ebiten.Image) {
	if len(c.frames) == 0 {
		return
	}
	for _, p := range c.coins {
		idx := (p.frame0 + int(p.age*c.cfg.Framerate)) % len(c.frames)
		img := c.frames[idx]
		b := img.Bounds()

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
		op.GeoM.Scale(p.scale, p.scale)
		op.GeoM.Translate(c.X+p.x, c.Y+p.y)
		screen.DrawImage(img, op)
	}
}
