package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"invoicecheck/internal/domain"
)

var (
	success = lipgloss.Color("#22C55E")
	danger  = lipgloss.Color("#EF4444")
	warning = lipgloss.Color("#F59E0B")
	dim     = lipgloss.Color("#6B7280")

	badgeStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	dimStyle   = lipgloss.NewStyle().Foreground(dim)
	warnStyle  = lipgloss.NewStyle().Foreground(warning)
)

var statusColors = map[domain.OverallStatus]lipgloss.Color{
	domain.OverallStatusApproved:           success,
	domain.OverallStatusMissingInformation: warning,
	domain.OverallStatusInvalid:            danger,
}

// statusBadge renders the overall status as a colored badge.
func statusBadge(s domain.OverallStatus) string {
	color, ok := statusColors[s]
	if !ok {
		color = dim
	}
	label := strings.ToUpper(strings.ReplaceAll(string(s), "_", " "))
	return badgeStyle.Foreground(color).Render(label)
}
