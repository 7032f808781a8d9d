package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kailas-cloud/dinedash/internal/render"
	"github.com/kailas-cloud/dinedash/internal/usecase/dialog"
)

const (
	minListRows = 5
	chartWidth  = 30
)

// View renders the session.
func (m Model) View() string {
	snap := m.sess.View(context.Background())
	d := render.Build(render.Input{
		SessionID:    snap.ID,
		Query:        snap.Query,
		Result:       snap.Result,
		Aggregates:   m.aggs.Aggregates(),
		Dialogs:      snap.Dialogs,
		ScrollLocked: snap.ScrollLocked,
		Selected:     snap.Selected,
		TopLimit:     m.opts.TopLimit,
	})

	var body string
	if top, ok := m.sess.Dialogs().Top(); ok {
		body = m.viewDialog(d, top)
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.viewList(d), "  ", viewSidebar(d))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Restaurant Dashboard"),
		m.viewQuery(d, snap.PendingSearch, snap.SearchPending),
		"",
		body,
		"",
		m.viewFooter(),
	)
}

func (m Model) viewQuery(d render.Dashboard, pending string, searchPending bool) string {
	field := func(label, value string) string {
		if value == "" {
			value = "all"
		}
		return labelStyle.Render(label+": ") + valueStyle.Render(value)
	}
	search := d.Query.Search
	if m.searching || searchPending {
		search = pending
	}
	searchText := labelStyle.Render("search: ")
	if m.searching {
		searchText += searchStyle.Render(search + "▏")
	} else {
		searchText += valueStyle.Render(search)
	}
	return strings.Join([]string{
		field("category", d.Query.Category),
		field("city", d.Query.City),
		field("status", d.Query.Status),
		field("awards", d.Query.Awards),
		field("sort", d.Query.Sort),
		searchText,
	}, "  ")
}

func (m Model) viewList(d render.Dashboard) string {
	var b strings.Builder
	b.WriteString(labelStyle.Render(d.ResultsLabel))
	b.WriteString("\n")

	if !d.Loaded {
		b.WriteString(errorStyle.Render("Restaurant data is not available."))
		b.WriteString("\n")
	}
	if d.EmptyMessage != "" {
		b.WriteString(dimStyle.Render(d.EmptyMessage))
		if d.Suggestion != "" {
			b.WriteString("\n" + labelStyle.Render("Did you mean ") + valueStyle.Render(d.Suggestion) + labelStyle.Render("?"))
		}
		return b.String()
	}

	start, end := window(len(d.Cards), m.cursor, m.listRows())
	for i := start; i < end; i++ {
		b.WriteString(cardLine(d.Cards[i], i == m.cursor))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) listRows() int {
	rows := m.height - 8
	if rows < minListRows {
		return minListRows
	}
	return rows
}

// window returns the visible range [start, end) of n rows keeping cursor in view.
func window(n, cursor, rows int) (int, int) {
	if n <= rows {
		return 0, n
	}
	start := cursor - rows/2
	if start < 0 {
		start = 0
	}
	if start+rows > n {
		start = n - rows
	}
	return start, start + rows
}

func cardLine(c render.Card, selected bool) string {
	prefix := "  "
	name := valueStyle.Render(c.Name)
	if selected {
		prefix = cursorStyle.Render("> ")
		name = cursorStyle.Render(c.Name)
	}
	status := openStyle.Render("●")
	if !c.Open {
		status = closedStyle.Render("●")
	}
	rank := c.RankLabel
	if rank == "" {
		rank = "  "
	}
	parts := []string{
		prefix + status,
		dimStyle.Render(fmt.Sprintf("%-3s", rank)),
		name,
		starStyle.Render(c.Stars.String()),
		valueStyle.Render(c.RatingText),
		labelStyle.Render(c.Category + " • " + c.City),
	}
	if badges := badgeText(c.Badges); badges != "" {
		parts = append(parts, badges)
	}
	return strings.Join(parts, " ")
}

func badgeText(badges []render.Badge) string {
	out := make([]string, 0, len(badges))
	for _, b := range badges {
		switch b.Kind {
		case render.BadgeMichelin:
			out = append(out, michelinStyle.Render("["+b.Label+"]"))
		case render.BadgeJamesBeard:
			out = append(out, beardStyle.Render("["+b.Label+"]"))
		default:
			out = append(out, closedStyle.Render("["+b.Label+"]"))
		}
	}
	return strings.Join(out, " ")
}

func viewSidebar(d render.Dashboard) string {
	var b strings.Builder
	b.WriteString(sectionStyle.UnsetMarginTop().Render("Top by category"))
	for _, t := range d.Top {
		b.WriteString("\n" + labelStyle.Render(t.Category+": ") + valueStyle.Render(t.Name) + " " + starStyle.Render(t.Stars.String()))
	}
	b.WriteString("\n" + sectionStyle.Render("Award winners"))
	for _, e := range d.AwardWinners {
		b.WriteString("\n" + valueStyle.Render(e.Name) + " " + dimStyle.Render(e.Info))
	}
	b.WriteString("\n" + sectionStyle.Render("Closed"))
	for _, e := range d.Closed {
		b.WriteString("\n" + valueStyle.Render(e.Name) + " " + dimStyle.Render(e.Info))
	}
	return sidebarStyle.Render(b.String())
}

func (m Model) viewDialog(d render.Dashboard, top string) string {
	var content string
	switch top {
	case dialog.RestaurantDetail:
		content = viewDetail(d.Detail)
	case dialog.RestaurantChart:
		content = viewChart(d.Distribution)
	default:
		content = valueStyle.Render(top)
	}
	box := dialogStyle.Render(content + "\n\n" + dimStyle.Render("[x] close"))
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.listRows(), lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

func viewDetail(det *render.Detail) string {
	if det == nil {
		return dimStyle.Render("No restaurant selected.")
	}
	lines := []string{
		titleStyle.Render(det.Name),
		labelStyle.Render(det.RankLabel+" "+det.Category) + "  " + starStyle.Render(det.Stars.String()) + " " + valueStyle.Render(det.RatingText),
		"",
		labelStyle.Render("Location: ") + valueStyle.Render(det.LocationLine),
		labelStyle.Render("Hours:    ") + valueStyle.Render(det.Hours),
		labelStyle.Render("Status:   ") + valueStyle.Render(det.Status),
	}
	if badges := badgeText(det.Badges); badges != "" {
		lines = append(lines, labelStyle.Render("Awards:   ")+badges)
	}
	if det.Notes != "" {
		lines = append(lines, "", valueStyle.Render(det.Notes))
	}
	return strings.Join(lines, "\n")
}

func viewChart(buckets []render.Bucket) string {
	lines := []string{titleStyle.Render("Restaurant Distribution")}
	if len(buckets) == 0 {
		return strings.Join(append(lines, dimStyle.Render("Nothing to chart.")), "\n")
	}
	maxCount, labelWidth := 0, 0
	for _, b := range buckets {
		maxCount = max(maxCount, b.Count)
		labelWidth = max(labelWidth, lipgloss.Width(b.Label))
	}
	for _, b := range buckets {
		bar := strings.Repeat("█", max(1, b.Count*chartWidth/maxCount))
		label := b.Label + strings.Repeat(" ", labelWidth-lipgloss.Width(b.Label))
		lines = append(lines, labelStyle.Render(label)+" "+starStyle.Render(bar)+" "+valueStyle.Render(fmt.Sprint(b.Count)))
	}
	return strings.Join(lines, "\n")
}

func (m Model) viewFooter() string {
	help := helpMain
	switch {
	case m.searching:
		help = helpSearch
	case m.sess.Dialogs().ScrollLocked():
		help = helpDialog
	}
	line := footerStyle.Render(help)
	if m.status != "" {
		st := valueStyle
		if m.statusErr {
			st = errorStyle
		}
		line += "\n" + st.Render(m.status)
	}
	if m.opts.Footer != "" {
		line += "\n" + dimStyle.Render(m.opts.Footer)
	}
	return line
}
