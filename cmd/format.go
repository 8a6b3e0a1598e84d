package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/rlowe/croon/internal/history"
	"github.com/rlowe/croon/internal/search"
	"github.com/rlowe/croon/internal/store"
)

var (
	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2)

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	indexStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	dimStyle    = lipgloss.NewStyle().Faint(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1)
)

const (
	titleColWidth   = 50
	channelColWidth = 24
)

// banner returns the framed application header.
func banner() string {
	return bannerStyle.Render("croon · terminal music")
}

// renderResults renders search results as a numbered, framed table.
func renderResults(results []search.Result) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("%-3s %-*s %-*s %s",
		"#", titleColWidth, "Title", channelColWidth, "Channel", "Length")))
	b.WriteString("\n")

	for i, r := range results {
		b.WriteString(fmt.Sprintf("%s %-*s %-*s %s\n",
			indexStyle.Render(fmt.Sprintf("%-3d", i+1)),
			titleColWidth, truncate(r.Title, titleColWidth),
			channelColWidth, truncate(r.ChannelTitle, channelColWidth),
			dimStyle.Render(formatDuration(r.Duration)),
		))
	}

	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// renderPlaylists renders the playlist overview table.
func renderPlaylists(playlists []store.Playlist) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("%-30s %-7s %s", "Name", "Tracks", "Created")))
	b.WriteString("\n")

	for _, p := range playlists {
		b.WriteString(fmt.Sprintf("%-30s %-7d %s\n",
			truncate(p.Name, 30),
			len(p.Tracks),
			dimStyle.Render(p.CreatedAt.Format("2006-01-02")),
		))
	}

	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// renderTracks renders one playlist's tracks with their zero-based indexes
// (the indexes `playlist remove` expects).
func renderTracks(p *store.Playlist) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("%-3s %-*s %s", "#", titleColWidth, "Title", "Added")))
	b.WriteString("\n")

	for i, t := range p.Tracks {
		b.WriteString(fmt.Sprintf("%s %-*s %s\n",
			indexStyle.Render(fmt.Sprintf("%-3d", i)),
			titleColWidth, truncate(t.Title, titleColWidth),
			dimStyle.Render(t.AddedAt.Format("2006-01-02")),
		))
	}

	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// renderHistory renders recent plays, newest first.
func renderHistory(entries []history.Entry) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("%-*s %-10s %s", titleColWidth, "Title", "Result", "Played")))
	b.WriteString("\n")

	for _, e := range entries {
		b.WriteString(fmt.Sprintf("%-*s %-10s %s\n",
			titleColWidth, truncate(e.Title, titleColWidth),
			e.Result,
			dimStyle.Render(e.StartedAt.Format("2006-01-02 15:04")),
		))
	}

	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// truncate shortens text to a fixed display width, accounting for wide
// Unicode characters.
func truncate(text string, width int) string {
	if runewidth.StringWidth(text) <= width {
		return text
	}
	return runewidth.Truncate(text, width, "...")
}

// formatDuration renders a duration as m:ss (or h:mm:ss for long videos).
func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "-"
	}

	total := int(d.Seconds())
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60

	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
