package motion

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// drawOverlay prints FPS, TPS and the scheduler's active task count in the
// top-left corner.
func (s *Stage) drawOverlay(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nTasks: %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(), s.sched.ActiveCount()))
}
