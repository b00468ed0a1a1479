package motion

import "github.com/hajimehoshi/ebiten/v2"

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
	ShowFPS   bool
}

// Run opens a window and drives stage until the window is closed.
func Run(stage *Stage, cfg RunConfig) error {
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
		if stage.width == 0 || stage.height == 0 {
			stage.width, stage.height = cfg.Width, cfg.Height
		}
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	stage.showFPS = cfg.ShowFPS
	ebiten.SetTPS(stage.tps)
	return ebiten.RunGame(stage)
}
