package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/unleaded-cli/unleaded/internal/schema"
	"github.com/unleaded-cli/unleaded/internal/view"
)

func listingColumns() []table.Column {
	return []table.Column{
		{Title: "Year", Width: 5},
		{Title: "Model", Width: 12},
		{Title: "Trim", Width: 13},
		{Title: "Color", Width: 12},
		{Title: "Miles", Width: 8},
		{Title: "Acc", Width: 3},
		{Title: "Own", Width: 3},
		{Title: "CPO", Width: 4},
		{Title: "Price", Width: 9},
		{Title: "Location", Width: 22},
		{Title: "Dealer", Width: 28},
		{Title: "Listed", Width: 12},
		{Title: "Links", Width: 14},
	}
}

// refreshTable regenerates the table rows from the current page slice.
// Called after every state transition that can change the visible set.
func (m *Model) refreshTable() {
	visible := m.visible()
	rows := make([]table.Row, 0, len(visible))
	now := m.now()
	for _, l := range visible {
		accidents, owners := "?", "?"
		if l.History != nil {
			accidents = formatCount(l.History.AccidentCount)
			owners = formatCount(l.History.OwnerCount)
		}
		location := truncate(l.Retail.City+", "+l.Retail.State, 22)
		links := hyperlink(l.Retail.CarfaxURL, "carfax") + " " + hyperlink(l.Retail.PrimaryImage, "image")

		rows = append(rows, table.Row{
			strconv.Itoa(l.Vehicle.Year),
			l.Vehicle.Model,
			deref(l.Vehicle.Trim),
			deref(l.Vehicle.ExteriorColor),
			formatMiles(l.Retail.Miles),
			accidents,
			owners,
			formatCpo(l),
			formatPrice(l.Retail.Price),
			location,
			truncate(l.Retail.Dealer, 28),
			formatListedAge(l.CreatedAt, now),
			links,
		})
	}
	m.table.SetRows(rows)
}

// View renders the current screen.
func (m Model) View() string {
	switch m.state {
	case stateQuitting:
		return ""
	case stateFailed:
		if m.fetchErr != nil {
			return ErrorStyle.Render(fmt.Sprintf("Error: %v", m.fetchErr)) + "\n"
		}
		return ""
	case stateLoading:
		return m.renderLoading()
	case stateBrowsing:
		return m.renderBrowse()
	default:
		return ""
	}
}

func (m Model) renderLoading() string {
	status := StatusStyle.Render(m.statusMsg)
	count := HelpStyle.Render(fmt.Sprintf("%d listings loaded", m.loadedCount))
	return lipgloss.JoinVertical(lipgloss.Left,
		"",
		fmt.Sprintf(" %s %s", m.spinner.View(), status),
		" "+count,
		"",
	)
}

func (m Model) renderBrowse() string {
	sections := []string{m.renderHeader()}

	if m.vs.SearchMode {
		sections = append(sections, FilterStyle.Render("Search: "+m.vs.SearchInput+"█"))
	}

	switch {
	case m.vs.ModelSelectMode:
		sections = append(sections, m.renderPicker("Model filter", modelOptions(m.listings)))
	case m.vs.YearSelectMode:
		sections = append(sections, m.renderPicker("Year filter", yearOptions(m.listings)))
	default:
		sections = append(sections, m.table.View())
		if len(m.filtered()) == 0 {
			sections = append(sections, HelpStyle.Render("No results"))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func (m Model) renderHeader() string {
	filtered := m.filtered()
	totalPages := m.totalPages()

	cpoStatus := "off"
	if m.vs.CpoOnly {
		cpoStatus = "on"
	}

	title := fmt.Sprintf("Listings | Sort: %s (%s) | CPO: %s | Page %d/%d | %d results",
		m.vs.SortKey, m.vs.SortDir, cpoStatus, m.vs.Page+1, totalPages, len(filtered))

	help := "[p]rice [m]iles [y]ear [l]isted | [/]search [c]lear | [s]model [Y]year | " +
		"[o]CPO | [n]ext [b]ack | [r]everse | [q]uit"

	lines := []string{HeaderStyle.Render(title), HelpStyle.Render(help)}

	if m.vs.Search != "" {
		lines = append(lines, FilterStyle.Render("Filter: "+m.vs.Search))
	}
	if m.vs.ModelFilter != "" {
		lines = append(lines, FilterStyle.Render("Model: "+m.vs.ModelFilter))
	}
	if m.vs.YearFilter != 0 {
		lines = append(lines, FilterStyle.Render("Year: "+strconv.Itoa(m.vs.YearFilter)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderPicker renders an overlay list with the cursor row highlighted.
func (m Model) renderPicker(title string, options []string) string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(title))
	b.WriteString("\n")
	for i, opt := range options {
		line := "  " + opt
		if i == m.pickerCursor {
			line = SelectedStyle.Render("> " + opt)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(HelpStyle.Render("j/k move · enter select · esc close"))
	return OverlayStyle.Render(b.String())
}

// modelOptions is the model-picker list: the "all" sentinel followed by the
// distinct models.
func modelOptions(listings []schema.Listing) []string {
	return append([]string{"All models"}, view.Models(listings)...)
}

// yearOptions is the year-picker list: the "all" sentinel followed by the
// distinct years, most recent first.
func yearOptions(listings []schema.Listing) []string {
	years := view.Years(listings)
	options := make([]string, 0, len(years)+1)
	options = append(options, "All years")
	for _, y := range years {
		options = append(options, strconv.Itoa(y))
	}
	return options
}
