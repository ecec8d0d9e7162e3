// ABOUTME: Status badge widgets for quick visual status indication
// ABOUTME: Maps product and order statuses to colored inline badges

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/igvshop/igv-admin/internal/client"
	"github.com/igvshop/igv-admin/internal/tui/icons"
	"github.com/igvshop/igv-admin/internal/tui/styles"
)

// StatusLevel represents the severity of a status
type StatusLevel int

const (
	StatusOK StatusLevel = iota
	StatusWarning
	StatusCritical
	StatusInfo
	StatusNeutral
)

// Badge colors follow the app palette
var (
	BadgeOKBg      = styles.Secondary
	BadgeOKFg      = lipgloss.Color("#FFFFFF")
	BadgeWarnBg    = styles.Warning
	BadgeWarnFg    = lipgloss.Color("#000000")
	BadgeCritBg    = styles.Danger
	BadgeCritFg    = lipgloss.Color("#FFFFFF")
	BadgeInfoBg    = styles.Info
	BadgeInfoFg    = lipgloss.Color("#FFFFFF")
	BadgeNeutralBg = styles.Muted
	BadgeNeutralFg = lipgloss.Color("#FFFFFF")
)

// Badge renders a colored status badge
func Badge(text string, level StatusLevel) string {
	var bg, fg lipgloss.Color

	switch level {
	case StatusOK:
		bg, fg = BadgeOKBg, BadgeOKFg
	case StatusWarning:
		bg, fg = BadgeWarnBg, BadgeWarnFg
	case StatusCritical:
		bg, fg = BadgeCritBg, BadgeCritFg
	case StatusInfo:
		bg, fg = BadgeInfoBg, BadgeInfoFg
	default:
		bg, fg = BadgeNeutralBg, BadgeNeutralFg
	}

	style := lipgloss.NewStyle().
		Background(bg).
		Foreground(fg).
		Padding(0, 1).
		Bold(true)

	return style.Render(text)
}

// ProductStatusLevel maps active/inactive to a level
func ProductStatusLevel(status string) StatusLevel {
	switch strings.ToLower(status) {
	case client.ProductActive:
		return StatusOK
	case client.ProductInactive:
		return StatusNeutral
	default:
		return StatusInfo
	}
}

// OrderStatusLevel maps paid/pending to a level; anything else is critical
func OrderStatusLevel(status string) StatusLevel {
	switch strings.ToLower(status) {
	case client.OrderPaid:
		return StatusOK
	case client.OrderPending:
		return StatusWarning
	default:
		return StatusCritical
	}
}

// StatusLabel returns the display label for a status value, e.g. "Paid"
func StatusLabel(status string) string {
	if status == "" {
		return "--"
	}
	return strings.ToUpper(status[:1]) + strings.ToLower(status[1:])
}

// StatusText returns plain status text prefixed with its icon. Table cells use
// this form since the bubbles table measures cell widths on unstyled text.
func StatusText(status string, level StatusLevel) string {
	icon := icons.CheckOK.Fallback
	switch level {
	case StatusWarning:
		icon = icons.Warning.Fallback
	case StatusCritical:
		icon = icons.Critical.Fallback
	case StatusInfo:
		icon = icons.Info.Fallback
	case StatusNeutral:
		icon = "•"
	}
	return fmt.Sprintf("%s %s", icon, StatusLabel(status))
}
