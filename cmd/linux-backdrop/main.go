package main

import (
	"errors"
	"flag"
	"io/fs"
	"os"

	"linux-backdrop/internal/utils"

	"github.com/joho/godotenv"
)

type options struct {
	scenePath   string
	pkgPath     string
	terminal    bool
	globalMouse bool
	seed        int64
	fps         int
	width       int
	height      int
}

func main() {
	scenePath := flag.String("scene", "scene.json", "Path to the scene.json describing the backdrop")
	pkgPath := flag.String("pkg", "", "Path to a scene.pkg bundle; unpacked into tmp/ and used instead of -scene")
	terminal := flag.Bool("terminal", false, "Render into the terminal instead of a window")
	debugFlag := flag.Bool("debug", false, "Enable verbose debug logging and the debug overlay")
	logLevel := flag.String("log-level", "warn", "Log level: debug, info, warn, error")
	silent := flag.Bool("silent", false, "Disable ambient sound and chimes")
	globalMouse := flag.Bool("global-mouse", false, "Read the pointer from the X11 root window (wallpaper mode)")
	seed := flag.Int64("seed", 0, "Particle random seed; 0 seeds from the clock")
	envFile := flag.String("env", ".env", "Optional dotenv file holding the Spotify and GitHub settings")
	fps := flag.Int("fps", 60, "Target frames per second")
	width := flag.Int("width", 0, "Window width; 0 uses the scene resolution")
	height := flag.Int("height", 0, "Window height; 0 uses the scene resolution")
	flag.Parse()

	utils.CurrentLevel = utils.ParseLevel(*logLevel)
	utils.DebugMode = *debugFlag
	utils.SilentMode = *silent
	if utils.DebugMode {
		utils.CurrentLevel = utils.LevelDebug
		utils.ShowDebugUI = true
	}

	if err := godotenv.Load(*envFile); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			utils.Warn("Failed to load %s: %v", *envFile, err)
		}
	} else {
		utils.Info("Loaded environment from %s", *envFile)
	}

	opts := options{
		scenePath:   *scenePath,
		pkgPath:     *pkgPath,
		terminal:    *terminal,
		globalMouse: *globalMouse,
		seed:        *seed,
		fps:         *fps,
		width:       *width,
		height:      *height,
	}

	if err := run(opts); err != nil {
		utils.Error("%v", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	scene, err := loadScene(opts.scenePath, opts.pkgPath)
	if err != nil {
		return err
	}
	if opts.globalMouse {
		scene.General.Parallax.GlobalMouse = true
	}
	utils.Info("Scene loaded: %d layers, %d particles", len(scene.Layers), scene.General.Particles.Count)

	// Cards must exist before the parallax registry is scanned.
	repos := fetchRepositories(scene)

	if opts.terminal {
		return runTerminal(scene, repos, opts)
	}
	return runWindow(scene, repos, opts)
}
