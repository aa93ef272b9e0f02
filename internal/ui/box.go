package ui

import (
	"fmt"
	"strings"
)

// WarningBox renders a bordered warning block with a title line and body
// lines, used for the dry-run summary and the pre-purge preview.
func WarningBox(title string, lines []string) string {
	var sb strings.Builder
	sb.WriteString(StyleWarning.Bold(true).Render(title))
	for _, line := range lines {
		sb.WriteString("\n")
		sb.WriteString(line)
	}
	return StyleWarningBox.Render(sb.String())
}

// InfoBox renders a neutral bordered block.
func InfoBox(title string, lines []string) string {
	var sb strings.Builder
	sb.WriteString(StyleTitle.Render(title))
	for _, line := range lines {
		sb.WriteString("\n")
		sb.WriteString(line)
	}
	return StyleInfoBox.Render(sb.String())
}

// Bullet formats one item line for use inside a box or list.
func Bullet(s string) string {
	return fmt.Sprintf("  • %s", s)
}
