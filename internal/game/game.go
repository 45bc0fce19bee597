// Package game hosts the wave engine in an ebiten window: it owns the
// surface, forwards resizes, ticks the animation and offers the start/stop
// button. An audio file can be played alongside the waves.
package game

import (
	"fmt"
	"image/color"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/sound-wave/internal/config"
	"github.com/iburimskiy/sound-wave/internal/wave"
)

var backgroundColor = color.RGBA{R: 250, G: 250, B: 250, A: 255}

type Game struct {
	engine   *wave.Engine
	renderer Renderer
	player   *player
	tick     time.Duration
	log      *slog.Logger

	width, height int

	// input edge detection
	prevKey map[ebiten.Key]bool

	// button state
	buttonHovered bool
	buttonPressed bool

	dirty   bool
	lastErr error
}

// New builds the engine from cfg and loads cfg.Audio if set.
func New(cfg *config.Config, log *slog.Logger) (*Game, error) {
	colors, err := cfg.Colors()
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	log.Debug("seeding bands", "seed", seed)

	g := &Game{
		player:  newPlayer(log),
		tick:    time.Second / time.Duration(cfg.TPS),
		log:     log,
		prevKey: map[ebiten.Key]bool{},
		dirty:   true,
	}
	g.engine, err = wave.New(colors,
		wave.WithBandCount(cfg.Bands),
		wave.WithRand(rand.New(rand.NewPCG(seed, seed))),
		wave.WithLogger(log),
		wave.WithInvalidate(g.invalidate),
	)
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}

	if cfg.Audio != "" {
		if err := g.player.load(cfg.Audio, false); err != nil {
			return nil, err
		}
	}
	if cfg.AutoStart {
		g.toggle()
	}
	return g, nil
}

func (g *Game) invalidate() { g.dirty = true }

// toggle starts the waves and playback, or stops both.
func (g *Game) toggle() {
	if g.engine.Stop() {
		g.player.setPaused(true)
		return
	}
	g.engine.Start()
	g.player.setPaused(false)
}

func (g *Game) openAndPlay() {
	name, err := g.player.openDialog()
	if err != nil {
		g.fail(err)
		return
	}
	if name == "" {
		return
	}
	if err := g.player.load(name, g.engine.Running()); err != nil {
		g.fail(err)
		return
	}
	g.lastErr = nil
}

func (g *Game) fail(err error) {
	g.log.Error("audio", "error", err)
	g.lastErr = err
	g.dirty = true
}

func (g *Game) Update() error {
	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	mouseX, mouseY := ebiten.CursorPosition()
	hovered := mouseX >= config.ButtonX && mouseX <= config.ButtonX+config.ButtonWidth &&
		mouseY >= config.ButtonY && mouseY <= config.ButtonY+config.ButtonHeight
	if hovered != g.buttonHovered {
		g.buttonHovered = hovered
		g.dirty = true
	}

	if g.buttonHovered && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.buttonPressed = true
		g.dirty = true
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		if g.buttonPressed && g.buttonHovered {
			g.toggle()
		}
		g.buttonPressed = false
		g.dirty = true
	}

	if justPressed(ebiten.KeySpace) {
		g.toggle()
		g.dirty = true
	}
	if justPressed(ebiten.KeyO) {
		g.openAndPlay()
		g.dirty = true
	}
	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	g.player.poll()
	if g.player.loaded() && !g.player.paused() {
		g.dirty = true
	}

	g.engine.Advance(g.tick)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if !g.dirty {
		return
	}
	g.dirty = false

	screen.Fill(backgroundColor)
	g.renderer.Render(screen, g.engine)
	g.drawButton(screen)
	ebitenutil.DebugPrintAt(screen, g.status(), 12, 12)
}

func (g *Game) status() string {
	var status string
	switch {
	case g.player.loaded():
		state := "paused"
		if !g.player.paused() {
			state = "playing"
		}
		status = fmt.Sprintf("%s %s %s / %s", state, g.player.name,
			formatDuration(g.player.position()), formatDuration(g.player.duration))
	case g.engine.Running():
		status = "Waves running - Space or the button to stop, O to open audio"
	default:
		status = "Space or the button to start the waves, O to open audio"
	}
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	return status
}

func (g *Game) drawButton(screen *ebiten.Image) {
	var bgColor color.Color
	if g.buttonPressed {
		bgColor = color.RGBA{R: 60, G: 80, B: 120, A: 255} // Pressed
	} else if g.buttonHovered {
		bgColor = color.RGBA{R: 80, G: 100, B: 140, A: 255} // Hovered
	} else {
		bgColor = color.RGBA{R: 100, G: 120, B: 160, A: 255} // Normal
	}

	vector.DrawFilledRect(screen, config.ButtonX, config.ButtonY, config.ButtonWidth, config.ButtonHeight, bgColor, false)

	borderColor := color.RGBA{R: 150, G: 170, B: 200, A: 255}
	vector.StrokeRect(screen, config.ButtonX, config.ButtonY, config.ButtonWidth, config.ButtonHeight, 2, borderColor, false)

	text := "Start"
	if g.engine.Running() {
		text = "Stop"
	}
	textWidth := len(text) * 6 // debug font glyph width
	textX := config.ButtonX + (config.ButtonWidth-textWidth)/2
	textY := config.ButtonY + (config.ButtonHeight-16)/2
	ebitenutil.DebugPrintAt(screen, text, textX, textY)
}

// Layout follows the window size so the waves always span the surface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.engine.Resize(outsideWidth, outsideHeight)
		g.dirty = true
	}
	return outsideWidth, outsideHeight
}

// Close stops the waves and releases any open audio.
func (g *Game) Close() {
	g.engine.Stop()
	g.player.stop()
}
