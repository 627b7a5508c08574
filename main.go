package main

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"neuralfolio/config"
	"neuralfolio/contact"
	"neuralfolio/game"
	"neuralfolio/lockdown"
	"neuralfolio/logging"
	"neuralfolio/page"
	"neuralfolio/prefs"
	"neuralfolio/theme"
)

var (
	cfgFile  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "neuralfolio",
	Short: "Portfolio page with an animated particle background",
	Long: `Runs the portfolio page: a scrolling document with reveal animations,
nav highlighting, a persisted light/dark theme, a contact form and an
interactive particle field behind it. Double-click the background to pull
particles together.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		return run(cfg)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(cfgFile); err == nil {
			return fmt.Errorf("%s already exists", cfgFile)
		}
		if err := config.DefaultConfig().Save(cfgFile); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", cfgFile)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "neuralfolio.yml", "config file path")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.AddCommand(initCmd)
}

func run(cfg *config.Config) error {
	log := logging.New(logging.ParseLevel(cfg.LogLevel))

	doc, err := loadDocument(cfg.ContentPath)
	if err != nil {
		return fmt.Errorf("loading content: %w", err)
	}

	store, err := prefs.Open(cfg.Store)
	if err != nil {
		log.Warn("preferences unavailable, theme will not persist: %v", err)
		store = prefs.NewMemoryStore()
	}
	defer store.Close()

	themes := theme.NewManager(store, log)
	themes.Init()

	client := contact.NewClient(cfg.Form.Endpoint, cfg.Form.Method, contact.WithTimeout(cfg.Form.Timeout))
	handler := contact.NewHandler(contact.DefaultForm(), client, log)
	handler.EnableFeedback()

	var profiler *game.Profiler
	if cfg.Profile.Enabled {
		profiler = game.NewProfiler(cfg.Profile, log)
	}

	guard := lockdown.Install(log)
	defer guard.Release()

	settings := game.FromSettings(cfg)
	g := game.NewGame(settings, game.Deps{
		Document: doc,
		Theme:    themes,
		Contact:  handler,
		Profiler: profiler,
		Log:      log,
	})
	defer g.Close()

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(settings.TPS)

	log.Info("starting (theme %s, form endpoint %s)", themes.Current(), cfg.Form.Endpoint)
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("running page: %w", err)
	}
	return nil
}

func loadDocument(path string) (*page.Document, error) {
	if path == "" {
		return page.DefaultDocument()
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return page.ParseMarkdown(src)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
