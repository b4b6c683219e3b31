package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/boxsim/internal/metrics"
)

// StatsTable renders per-body velocity and kinetic energy, per-spring force
// and elastic energy, and the totals.
func StatsTable(st metrics.Stats) string {
	var rows []string

	rows = append(rows, HeaderStyle.Render("bodies"))
	for _, b := range st.Bodies {
		rows = append(rows, line(b.ID, fmt.Sprintf("v=%8.3f  ke=%10.3f", b.Velocity, b.KineticEnergy)))
	}
	rows = append(rows, line("Σ½mv²", fmt.Sprintf("%.3f", st.TotalKinetic)))

	if len(st.Springs) > 0 {
		rows = append(rows, "", HeaderStyle.Render("springs"))
		for _, s := range st.Springs {
			value := TensionStyle(s.Force).Render(fmt.Sprintf("f=%8.3f  ee=%10.3f", s.Force, s.ElasticEnergy))
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, LabelStyle.Render(s.Name), value))
		}
		rows = append(rows, line("Σ½kd²", fmt.Sprintf("%.3f", st.TotalElastic)))
	}

	rows = append(rows, "", line("ΣE", fmt.Sprintf("%.3f", st.Total)))
	rows = append(rows, line("Σmv", fmt.Sprintf("%.3f", st.Momentum)))

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// MetricsTable renders metric values sorted by name.
func MetricsTable(values map[string]float64) string {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := []string{HeaderStyle.Render("metrics")}
	for _, name := range names {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top,
			LabelStyle.Width(18).Render(name),
			ValueStyle.Render(fmt.Sprintf("%.6f", values[name])),
		))
	}
	return strings.Join(rows, "\n")
}

func line(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, LabelStyle.Render(label), ValueStyle.Render(value))
}
