package game

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/iburimskiy/sound-wave/internal/config"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	cfg := config.Default()
	cfg.Seed = 7
	g, err := New(cfg, slog.Default())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

func TestNewRejectsBadPalette(t *testing.T) {
	cfg := config.Default()
	cfg.Palette[0] = "pink"
	if _, err := New(cfg, slog.Default()); err == nil {
		t.Error("expected error for unparseable palette")
	}

	cfg = config.Default()
	cfg.Bands = 5
	if _, err := New(cfg, slog.Default()); err == nil {
		t.Error("expected error for palette/band mismatch")
	}
}

func TestLayoutResizesEngine(t *testing.T) {
	g := newTestGame(t)
	g.dirty = false

	w, h := g.Layout(320, 240)
	if w != 320 || h != 240 {
		t.Errorf("Layout = %dx%d, want 320x240", w, h)
	}
	if ew, eh := g.engine.Size(); ew != 320 || eh != 240 {
		t.Errorf("engine size = %dx%d, want 320x240", ew, eh)
	}
	if !g.dirty {
		t.Error("resize did not mark the surface dirty")
	}
	for i, b := range g.engine.Bands() {
		if b.Contour.Empty() {
			t.Errorf("band %d has no contour after layout", i)
		}
	}

	g.dirty = false
	rev := g.engine.Revision()
	g.Layout(320, 240)
	if g.dirty || g.engine.Revision() != rev {
		t.Error("unchanged layout rebuilt the waves")
	}
}

func TestToggle(t *testing.T) {
	g := newTestGame(t)
	g.Layout(320, 240)

	g.toggle()
	if !g.engine.Running() {
		t.Fatal("toggle did not start the waves")
	}
	if !strings.Contains(g.status(), "running") {
		t.Errorf("status = %q", g.status())
	}

	g.toggle()
	if g.engine.Running() || g.engine.Animations() != 0 {
		t.Error("toggle did not stop the waves")
	}
}

func TestAutoStart(t *testing.T) {
	cfg := config.Default()
	cfg.AutoStart = true
	g, err := New(cfg, slog.Default())
	if err != nil {
		t.Fatal(err)
	}
	if !g.engine.Running() {
		t.Error("autostart did not start the waves")
	}
	g.Close()
	if g.engine.Running() {
		t.Error("Close left the waves running")
	}
}

func TestInvalidateMarksDirty(t *testing.T) {
	g := newTestGame(t)
	g.Layout(100, 100)
	g.toggle()
	g.dirty = false

	g.engine.Advance(g.tick)
	if !g.dirty {
		t.Error("animation tick did not mark the surface dirty")
	}
}
