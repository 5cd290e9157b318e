package main

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ncruces/zenity"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iburimskiy/racing-backdrop/internal/audio"
	"github.com/iburimskiy/racing-backdrop/internal/clock"
	"github.com/iburimskiy/racing-backdrop/internal/config"
	"github.com/iburimskiy/racing-backdrop/internal/game"
	"github.com/iburimskiy/racing-backdrop/internal/prefs"
	"github.com/iburimskiy/racing-backdrop/internal/signals"
	"github.com/iburimskiy/racing-backdrop/internal/theme"
	"github.com/iburimskiy/racing-backdrop/internal/ui"
)

type flags struct {
	config    string
	mood      string
	accent    string
	muted     bool
	verbose   bool
	devLog    bool
	noPersist bool
	outDir    string
}

// speakerSink sends the engine's output to the default device through beep's speaker.
type speakerSink struct{}

func (speakerSink) Init(rate beep.SampleRate, bufferSize int) error {
	return speaker.Init(rate, bufferSize)
}

func (speakerSink) Play(s beep.Streamer) { speaker.Play(s) }

func (speakerSink) Close() { speaker.Close() }

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var f flags
	root := &cobra.Command{
		Use:           "backdrop",
		Short:         "Animated racing backdrop with procedural engine audio",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := run(cmd, &f)
			if err != nil {
				fmt.Fprintln(os.Stderr, "backdrop:", err)
				_ = zenity.Error(err.Error(), zenity.Title("Racing Backdrop"), zenity.ErrorIcon)
			}
			return err
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&f.config, "config", "", "settings file (YAML)")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "debug logging")
	pf.BoolVar(&f.devLog, "dev-log", false, "human-readable console logs")

	fl := root.Flags()
	fl.StringVar(&f.mood, "mood", "", "starting mood (VOID, AURA, PULSE), overrides saved preference")
	fl.StringVar(&f.accent, "accent", "", "starting accent (RED, BLUE, PURPLE), overrides saved preference")
	fl.BoolVar(&f.muted, "muted", false, "start with sound muted")
	fl.BoolVar(&f.noPersist, "no-persist", false, "do not read or write preferences")

	sfx := &cobra.Command{
		Use:   "sfx",
		Short: "Render the one-shot sounds to WAV files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return exportSounds(&f)
		},
	}
	sfx.Flags().StringVar(&f.outDir, "out", "sfx", "output directory")
	root.AddCommand(sfx)
	return root
}

func setup(f *flags) (*config.Settings, *zap.Logger, error) {
	cfg, err := config.Load(f.config)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := newLogger(cfg.LogLevel, f)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func newLogger(level string, f *flags) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if f.devLog {
		zc = zap.NewDevelopmentConfig()
	}
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	if f.verbose {
		lvl.SetLevel(zap.DebugLevel)
	}
	zc.Level = lvl
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

func run(cmd *cobra.Command, f *flags) error {
	cfg, logger, err := setup(f)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	var store prefs.Store = prefs.NewMemStore()
	if !f.noPersist && cfg.PrefsPath != "" {
		store = prefs.OpenFile(cfg.PrefsPath, logger.Named("prefs"))
	}
	mood, accent := ui.RestoreTheme(store, cfg.Theme)
	if cmd.Flags().Changed("mood") {
		m, ok := theme.MoodByName(f.mood)
		if !ok {
			return fmt.Errorf("%w: mood %q", config.ErrInvalid, f.mood)
		}
		mood = m
	}
	if cmd.Flags().Changed("accent") {
		a, ok := theme.AccentByKey(f.accent)
		if !ok {
			return fmt.Errorf("%w: accent %q", config.ErrInvalid, f.accent)
		}
		accent = a
	}
	if cmd.Flags().Changed("muted") {
		cfg.Audio.Muted = f.muted
	}

	engine := audio.New(cfg.Audio, speakerSink{}, logger)
	if err := engine.Start(); err != nil && !errors.Is(err, audio.ErrNoAudio) {
		return fmt.Errorf("start audio: %w", err)
	}

	bridge := signals.NewBridge(mood, accent, cfg.Audio.Muted)
	shell, err := ui.New(ui.Options{
		Clock:  clock.Real{},
		Bridge: bridge,
		Sounds: engine,
		Prefs:  store,
		Logger: logger,
	})
	if err != nil {
		engine.Close()
		return err
	}
	g, err := game.New(game.Options{
		Bridge: bridge,
		Shell:  shell,
		Audio:  engine,
		Clock:  clock.Real{},
		Logger: logger,
		Rand:   rand.New(rand.NewSource(time.Now().UnixNano())),
	})
	if err != nil {
		engine.Close()
		return err
	}
	defer g.Close()

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	if cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	logger.Info("starting",
		zap.String("mood", mood.Name),
		zap.String("accent", accent.Key),
		zap.Bool("silent", engine.Silent()),
		zap.Bool("muted", engine.Muted()))

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run: %w", err)
	}
	logger.Info("bye")
	return nil
}

func exportSounds(f *flags) error {
	cfg, logger, err := setup(f)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	paths, err := audio.ExportWAV(f.outDir, beep.SampleRate(cfg.Audio.SampleRate), logger.Named("sfx"))
	if err != nil {
		return err
	}
	logger.Info("export finished", zap.Int("files", len(paths)), zap.String("dir", f.outDir))
	return nil
}
