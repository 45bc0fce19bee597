package game

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/ncruces/zenity"
)

// ErrUnsupportedFormat is returned for files that are not wav, mp3 or flac.
var ErrUnsupportedFormat = errors.New("unsupported file type")

var initSpeaker = speaker.Init

// player plays one audio file alongside the waves. It only plays sound; the
// waves never read the samples.
type player struct {
	currentFile *os.File
	streamer    beep.StreamSeekCloser
	format      beep.Format
	ctrl        *beep.Ctrl
	tap         *progressTap
	duration    time.Duration
	name        string

	initDone bool
	ended    atomic.Bool
	log      *slog.Logger
}

func newPlayer(log *slog.Logger) *player {
	return &player{log: log}
}

func (p *player) loaded() bool { return p.streamer != nil }

func (p *player) paused() bool { return p.ctrl == nil || p.ctrl.Paused }

// position returns how far playback has progressed.
func (p *player) position() time.Duration {
	if p.tap == nil {
		return 0
	}
	pos := p.format.SampleRate.D(p.tap.position())
	if pos > p.duration {
		pos = p.duration
	}
	return pos
}

func (p *player) setPaused(paused bool) {
	if p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = paused
	speaker.Unlock()
}

// poll releases the file once the speaker has finished playing it.
func (p *player) poll() {
	if p.ended.CompareAndSwap(true, false) {
		p.log.Info("playback finished", "file", p.name)
		p.close()
	}
}

func (p *player) openDialog() (string, error) {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Audio File"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", nil
		}
		return "", fmt.Errorf("select file: %w", err)
	}
	return filename, nil
}

// load decodes path and queues it on the speaker. Playback starts paused
// unless play is set.
func (p *player) load(path string, play bool) error {
	f, streamer, format, err := decodeFile(path)
	if err != nil {
		return err
	}

	bufferSize := format.SampleRate.N(time.Second / 20)
	if !p.initDone {
		if err := initSpeaker(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			_ = f.Close()
			return fmt.Errorf("init speaker: %w", err)
		}
		p.initDone = true
	} else if p.format.SampleRate != format.SampleRate {
		// the old file was cleared from the speaker, so release it either way
		speaker.Clear()
		if err := initSpeaker(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			_ = f.Close()
			p.close()
			return fmt.Errorf("init speaker: %w", err)
		}
	} else {
		speaker.Clear()
	}
	p.close()

	tap := newProgressTap(streamer)
	ctrl := &beep.Ctrl{Streamer: tap, Paused: !play}

	p.currentFile = f
	p.streamer = streamer
	p.format = format
	p.ctrl = ctrl
	p.tap = tap
	p.name = filepath.Base(path)
	p.duration = format.SampleRate.D(streamer.Len())
	p.ended.Store(false)

	speaker.Play(beep.Seq(ctrl, beep.Callback(func() {
		p.ended.Store(true)
	})))

	p.log.Info("audio loaded", "file", p.name, "duration", p.duration, "sample_rate", int(format.SampleRate))
	return nil
}

// close releases the current file, if any.
func (p *player) close() {
	if p.streamer != nil {
		_ = p.streamer.Close()
		p.streamer = nil
	}
	if p.currentFile != nil {
		_ = p.currentFile.Close()
		p.currentFile = nil
	}
	p.ctrl = nil
	p.tap = nil
	p.duration = 0
}

// stop clears the speaker and releases the current file.
func (p *player) stop() {
	if p.initDone {
		speaker.Clear()
	}
	p.close()
}

// decodeFile opens path and picks a decoder from its extension.
func decodeFile(path string) (*os.File, beep.StreamSeekCloser, beep.Format, error) {
	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".wav", ".mp3", ".flac":
	default:
		return nil, nil, format, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, format, fmt.Errorf("open audio: %w", err)
	}

	switch ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	}
	if err != nil {
		_ = f.Close()
		return nil, nil, format, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return f, streamer, format, nil
}

// formatDuration formats a duration as MM:SS
func formatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
