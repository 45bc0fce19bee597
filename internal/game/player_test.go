package game

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
)

func writeSilence(t *testing.T, samples int) string {
	t.Helper()
	return writeSilenceAt(t, samples, 44100)
}

func writeSilenceAt(t *testing.T, samples int, rate beep.SampleRate) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "silence.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	if err := wav.Encode(f, beep.Take(samples, beep.Silence(-1)), format); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return path
}

func TestDecodeFileWav(t *testing.T) {
	path := writeSilence(t, 4410)

	f, streamer, format, err := decodeFile(path)
	if err != nil {
		t.Fatalf("decodeFile: %v", err)
	}
	defer f.Close()
	defer streamer.Close()

	if format.SampleRate != 44100 {
		t.Errorf("SampleRate = %d, want 44100", format.SampleRate)
	}
	if streamer.Len() != 4410 {
		t.Errorf("Len = %d, want 4410", streamer.Len())
	}
	if d := format.SampleRate.D(streamer.Len()); d != 100*time.Millisecond {
		t.Errorf("duration = %v, want 100ms", d)
	}
}

func TestDecodeFileErrors(t *testing.T) {
	if _, _, _, err := decodeFile("song.ogg"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("ogg: err = %v, want ErrUnsupportedFormat", err)
	}
	if _, _, _, err := decodeFile(filepath.Join(t.TempDir(), "missing.wav")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing: err = %v, want ErrNotExist", err)
	}

	bad := filepath.Join(t.TempDir(), "bad.wav")
	if err := os.WriteFile(bad, []byte("not a wav file"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := decodeFile(bad); err == nil {
		t.Error("expected decode error")
	}
}

func TestLoadReleasesOldFileWhenReinitFails(t *testing.T) {
	f, streamer, format, err := decodeFile(writeSilenceAt(t, 2205, 22050))
	if err != nil {
		t.Fatalf("decodeFile: %v", err)
	}
	p := newPlayer(slog.Default())
	p.initDone = true
	p.currentFile = f
	p.streamer = streamer
	p.format = format
	p.ctrl = &beep.Ctrl{Streamer: streamer}
	p.tap = newProgressTap(streamer)

	initErr := errors.New("no audio device")
	orig := initSpeaker
	initSpeaker = func(beep.SampleRate, int) error { return initErr }
	defer func() { initSpeaker = orig }()

	if err := p.load(writeSilence(t, 4410), true); !errors.Is(err, initErr) {
		t.Fatalf("load: err = %v, want %v", err, initErr)
	}
	if p.loaded() {
		t.Error("old file still loaded after failed speaker init")
	}
	if p.currentFile != nil || p.ctrl != nil || p.tap != nil {
		t.Error("old playback state not released")
	}
	if !p.paused() || p.position() != 0 {
		t.Errorf("paused=%v position=%v, want paused at 0", p.paused(), p.position())
	}
}

func TestProgressTapCountsSamples(t *testing.T) {
	tap := newProgressTap(beep.Take(1000, beep.Silence(-1)))
	buf := make([][2]float64, 300)

	total := 0
	for {
		n, ok := tap.Stream(buf)
		total += n
		if !ok {
			break
		}
	}
	if total != 1000 {
		t.Errorf("streamed %d samples, want 1000", total)
	}
	if tap.position() != 1000 {
		t.Errorf("position = %d, want 1000", tap.position())
	}
	if tap.Err() != nil {
		t.Errorf("Err = %v", tap.Err())
	}
}

func TestPlayerIdle(t *testing.T) {
	p := newPlayer(slog.Default())
	if p.loaded() {
		t.Error("new player reports loaded")
	}
	if !p.paused() {
		t.Error("new player reports playing")
	}
	if p.position() != 0 {
		t.Errorf("position = %v, want 0", p.position())
	}
	// no-ops without a file
	p.setPaused(false)
	p.poll()
	p.stop()
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00"},
		{59 * time.Second, "00:59"},
		{61 * time.Second, "01:01"},
		{12*time.Minute + 5*time.Second + 900*time.Millisecond, "12:05"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
