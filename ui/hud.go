package ui

import (
	"fmt"

	"git.c3pb.de/farhaven/planetarium/scene"
)

var helpLines = []string{
	"Space: pause, +/-: speed, T: trails, Y: trail style, [ ]: trail length",
	"O: orbits, L: labels, R: real scale, G: galaxies, 0: reset",
	"Tab/N: next body, Esc: clear focus, F: fullscreen, 1: wireframe, H: help, Q: quit",
	"Click: focus body, drag: orbit camera, wheel: zoom",
}

// hudLines is the text of the overlay for the current scene state.
func hudLines(sc *scene.Scene, fps int, help bool) []string {
	s := sc.Settings()

	var lines []string
	if help {
		lines = append(lines, helpLines...)
	}

	state := fmt.Sprintf(`%s, time ×%g`, sc.Mode(), s.TimeSpeed)
	if s.Paused {
		state += ` (paused)`
	}
	if s.RealScale {
		state += `, real scale`
	}
	lines = append(lines, state)

	if s.Trails {
		lines = append(lines, fmt.Sprintf(`trails: %s, %d points`, sc.TrailStyle(), s.TrailLength))
	} else {
		lines = append(lines, `trails: off`)
	}

	if id, ok := sc.Selected(); ok {
		if info, ok := sc.Info(id); ok {
			lines = append(lines, ``, fmt.Sprintf(`%s (%s)`, info.Name, info.Kind))
			if info.Description != "" {
				lines = append(lines, info.Description)
			}
			for _, f := range info.Facts {
				lines = append(lines, ` · `+f)
			}
		}
	}

	lines = append(lines, fmt.Sprintf(`%d fps`, fps))

	return lines
}
