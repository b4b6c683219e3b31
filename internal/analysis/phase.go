package analysis

import (
	"strings"
)

// Point is one sample in phase space.
type Point struct{ X, Y float64 }

// PhasePortrait holds position against velocity for one body.
type PhasePortrait struct {
	Points []Point
}

// NewPhasePortrait pairs the position and velocity series of a body. The
// shorter series decides the length.
func NewPhasePortrait(positions, velocities []float64) *PhasePortrait {
	n := min(len(positions), len(velocities))
	p := &PhasePortrait{Points: make([]Point, n)}
	for i := 0; i < n; i++ {
		p.Points[i] = Point{X: positions[i], Y: velocities[i]}
	}
	return p
}

// ASCII draws the portrait on a width x height grid of runes, with the
// velocity zero line where it is in range.
func (portrait *PhasePortrait) ASCII(width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	lo, hi := portrait.Points[0], portrait.Points[0]
	for _, p := range portrait.Points[1:] {
		lo.X, hi.X = min(lo.X, p.X), max(hi.X, p.X)
		lo.Y, hi.Y = min(lo.Y, p.Y), max(hi.Y, p.Y)
	}
	lo, hi = pad(lo.X, hi.X, lo.Y, hi.Y)

	grid := make([][]rune, height)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", width))
	}

	col := func(x float64) int { return int((x - lo.X) / (hi.X - lo.X) * float64(width-1)) }
	row := func(y float64) int { return height - 1 - int((y-lo.Y)/(hi.Y-lo.Y)*float64(height-1)) }

	if lo.Y <= 0 && hi.Y >= 0 {
		r := row(0)
		for c := range grid[r] {
			grid[r][c] = '─'
		}
	}
	for _, p := range portrait.Points {
		grid[row(p.Y)][col(p.X)] = '•'
	}

	var sb strings.Builder
	for _, r := range grid {
		sb.WriteString(string(r))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// pad widens each range by 10% on both sides; a flat range becomes width 1.
func pad(minX, maxX, minY, maxY float64) (Point, Point) {
	dx, dy := maxX-minX, maxY-minY
	if dx == 0 {
		dx = 1
	}
	if dy == 0 {
		dy = 1
	}
	return Point{X: minX - dx*0.1, Y: minY - dy*0.1}, Point{X: maxX + dx*0.1, Y: maxY + dy*0.1}
}
