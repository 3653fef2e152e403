package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"manview/internal/apropos"
	"manview/internal/config"
	"manview/internal/logging"
	"manview/internal/render"
	"manview/internal/service"
	"manview/internal/version"
)

func main() {
	_ = godotenv.Load()

	m := NewMain()
	if err := m.Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Seed for the random page source. Zero means time-based.
	Seed uint64
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	// kong reports a printed usage through the exit hook.
	var helpShown bool
	parser, err := kong.New(cli,
		kong.Name("manview"),
		kong.Description("Browse, search and read the system manual pages."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) { helpShown = true }),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) > 0 && (args[0] == "help" || args[0] == "--help" || args[0] == "-h") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if helpShown {
		return nil
	}
	if err != nil {
		return err
	}

	cfg, cfgPath, err := loadConfig(cli.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cli.LogLevel != "" {
		cfg.Log.Level = cli.LogLevel
	}

	// The terminal UI owns stdout and stderr, so it logs to a file or nowhere.
	var logOut io.Writer = stderr
	if kongCtx.Command() == "ui" {
		f, err := logging.OpenFile(cfg.Log.File)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		logOut = f
	}
	logger := logging.BuildLogger(cfg.Log.Level, logOut)
	logger.Debug("config loaded", "path", cfgPath)

	versionPath := cfg.VersionFile
	if versionPath == "" {
		versionPath = version.DefaultPath()
	}

	deps := &Dependencies{
		Ctx:        ctx,
		Stdout:     stdout,
		Stderr:     stderr,
		Config:     cfg,
		ConfigPath: cfgPath,
		Logger:     logger,
		Version:    version.Read(versionPath),
		Viewer:     newViewer(cfg, logger, m.seed()),
	}
	return kongCtx.Run(deps)
}

func (m *Main) seed() uint64 {
	if m.Seed != 0 {
		return m.Seed
	}
	return uint64(time.Now().UnixNano())
}

func loadConfig(path string) (*config.AppConfig, string, error) {
	if path == "" {
		return config.LoadDefault()
	}
	cfg, err := config.Load(path)
	return cfg, path, err
}

func newViewer(cfg *config.AppConfig, logger *slog.Logger, seed uint64) *service.ViewerService {
	timeout := time.Duration(cfg.Tools.TimeoutSecs) * time.Second

	lister := apropos.NewLister(cfg.Tools.Apropos, cfg.Tools.AproposQuery)
	lister.Runner.Timeout = timeout
	lister.Runner.Logger = logger

	formatter := render.NewManFormatter(cfg.Tools.Man, cfg.Tools.ManWidth)
	formatter.Runner.Timeout = timeout
	formatter.Runner.Logger = logger

	return service.NewViewerService(
		apropos.NewLoader(lister, logger),
		render.NewRenderer(formatter, logger),
		render.NewTextConverter(),
		rand.New(rand.NewPCG(seed, seed>>1|1)),
		logger,
	)
}
