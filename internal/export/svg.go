package export

import (
	"fmt"
	"strings"
)

var palette = []string{"#00ccff", "#ffcc00", "#ff4444", "#00ff88", "#cc66ff", "#ffffff"}

// Track is one body's position history.
type Track struct {
	Name      string
	Positions []float64
}

// TrajectoriesSVG plots every track against times on a shared canvas. The
// vertical axis runs from lower at the top to upper at the bottom, matching
// the screen-space orientation of the simulation, and both bounds are drawn.
func TrajectoriesSVG(times []float64, tracks []Track, lower, upper float64, width, height int) string {
	if len(times) < 2 || len(tracks) == 0 || upper <= lower {
		return ""
	}

	t0, t1 := times[0], times[len(times)-1]
	if t1 == t0 {
		t1 = t0 + 1
	}
	x := func(t float64) float64 { return (t - t0) / (t1 - t0) * float64(width) }
	y := func(p float64) float64 { return (p - lower) / (upper - lower) * float64(height) }

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	for _, b := range []float64{lower, upper} {
		fmt.Fprintf(&sb, `<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="#444466" stroke-width="1"/>`+"\n", y(b), width, y(b))
	}

	for i, tr := range tracks {
		n := min(len(times), len(tr.Positions))
		if n < 2 {
			continue
		}
		fmt.Fprintf(&sb, `<path id="%s" fill="none" stroke="%s" stroke-width="1.5" d="M`, tr.Name, palette[i%len(palette)])
		for k := 0; k < n; k++ {
			if k > 0 {
				sb.WriteString(" L")
			}
			fmt.Fprintf(&sb, "%.1f,%.1f", x(times[k]), y(tr.Positions[k]))
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}
