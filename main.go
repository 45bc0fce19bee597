package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/iburimskiy/sound-wave/internal/config"
	"github.com/iburimskiy/sound-wave/internal/game"
)

var (
	// arguments
	argConfig    string
	argWidth     int
	argHeight    int
	argTPS       int
	argBands     int
	argPalette   []string
	argSeed      uint64
	argAudio     string
	argLogLevel  string
	argAutoStart bool

	rootCmd = &cobra.Command{
		Use:   "sound-wave",
		Short: "Draw animated sound-wave bands along the bottom of a window",

		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}
)

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&argConfig, "config", "c", "", "YAML config file")
	flags.IntVarP(&argWidth, "width", "", config.WindowWidth, "initial window width")
	flags.IntVarP(&argHeight, "height", "", config.WindowHeight, "initial window height")
	flags.IntVarP(&argTPS, "tps", "", config.TicksPerSecond, "animation ticks per second")
	flags.IntVarP(&argBands, "bands", "b", config.BandCount, "number of wave bands (must match the palette)")
	flags.StringSliceVarP(&argPalette, "palette", "p", config.DefaultPalette, "band colors as #rrggbb, one per band")
	flags.Uint64VarP(&argSeed, "seed", "", 0, "random seed for band parameters (0 picks one)")
	flags.StringVarP(&argAudio, "audio", "a", "", "wav, mp3 or flac file to play with the waves")
	flags.StringVarP(&argLogLevel, "log-level", "l", "info", "debug, info, warn or error")
	flags.BoolVarP(&argAutoStart, "autostart", "s", false, "start the waves immediately")
}

// loadConfig reads the config file and applies the flags that were set on
// the command line over it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(argConfig)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Width = argWidth
	}
	if flags.Changed("height") {
		cfg.Height = argHeight
	}
	if flags.Changed("tps") {
		cfg.TPS = argTPS
	}
	if flags.Changed("bands") {
		cfg.Bands = argBands
	}
	if flags.Changed("palette") {
		cfg.Palette = argPalette
	}
	if flags.Changed("seed") {
		cfg.Seed = argSeed
	}
	if flags.Changed("audio") {
		cfg.Audio = argAudio
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = argLogLevel
	}
	if flags.Changed("autostart") {
		cfg.AutoStart = argAutoStart
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(cfg *config.Config) error {
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	g, err := game.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}
	defer g.Close()

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetScreenClearedEveryFrame(false)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
