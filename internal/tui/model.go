// Package tui renders the interactive listings browser with Bubble Tea.
// All session state lives in a view.State; the model here only adds terminal
// concerns (spinner, table widget, overlay cursors) on top of it.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/unleaded-cli/unleaded/internal/schema"
	"github.com/unleaded-cli/unleaded/internal/view"
)

// sessionState is the coarse screen the model is showing.
type sessionState int

const (
	// stateLoading shows fetch progress until the listing set arrives.
	stateLoading sessionState = iota
	// stateBrowsing is the interactive filter/sort/page view.
	stateBrowsing
	// stateQuitting indicates the user asked to exit.
	stateQuitting
	// stateFailed indicates the fetch failed before browsing began.
	stateFailed
)

// Messages delivered from the fetch goroutine via Program.Send. They form
// the observable cell through which a concurrently rendering UI sees fetch
// progress.
type (
	// FetchProgressMsg carries the cumulative listing count fetched so far.
	FetchProgressMsg int

	// FetchStatusMsg carries a human-readable fetch status line.
	FetchStatusMsg string

	// FetchDoneMsg carries the full validated listing set.
	FetchDoneMsg struct{ Listings []schema.Listing }

	// FetchErrMsg carries a fetch failure; the program exits on receipt.
	FetchErrMsg struct{ Err error }
)

// Default dimensions before the first WindowSizeMsg arrives.
const (
	defaultWidth  = 160
	defaultHeight = 40
)

// Model is the Bubble Tea model for the listings browser.
type Model struct {
	state    sessionState
	vs       view.State
	listings []schema.Listing

	spinner spinner.Model
	table   table.Model

	loadedCount int
	statusMsg   string
	fetchErr    error

	// pickerCursor is the highlighted row of whichever overlay is open.
	pickerCursor int

	width  int
	height int

	// now is replaceable for deterministic "listed N ago" rendering in tests.
	now func() time.Time
}

// NewModel creates the browser model in its loading state.
func NewModel() Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		state:     stateLoading,
		vs:        view.New(),
		spinner:   sp,
		table:     newListingTable(),
		statusMsg: "Loading cache",
		width:     defaultWidth,
		height:    defaultHeight,
		now:       time.Now,
	}
}

// FetchErr returns the fetch failure that ended the session, if any.
func (m Model) FetchErr() error {
	return m.fetchErr
}

// Init starts the loading spinner.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles fetch messages, terminal resizes, and key presses.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.state != stateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case FetchProgressMsg:
		m.loadedCount = int(msg)
		return m, nil

	case FetchStatusMsg:
		m.statusMsg = string(msg)
		return m, nil

	case FetchDoneMsg:
		m.listings = msg.Listings
		m.loadedCount = len(msg.Listings)
		m.state = stateBrowsing
		m.refreshTable()
		return m, nil

	case FetchErrMsg:
		m.fetchErr = msg.Err
		m.state = stateFailed
		return m, tea.Quit

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(m.vs.PageSize + 1)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.state = stateQuitting
		return m, tea.Quit
	}

	switch {
	case m.state == stateLoading:
		if msg.String() == "q" {
			m.state = stateQuitting
			return m, tea.Quit
		}
		return m, nil
	case m.vs.SearchMode:
		return m.handleSearchKey(msg), nil
	case m.vs.ModelSelectMode:
		return m.handleModelPickerKey(msg), nil
	case m.vs.YearSelectMode:
		return m.handleYearPickerKey(msg), nil
	default:
		return m.handleBrowseKey(msg)
	}
}

// handleSearchKey edits the search buffer; every other key is ignored so a
// stray arrow does not leak characters into the query.
func (m Model) handleSearchKey(msg tea.KeyMsg) Model {
	switch msg.Type {
	case tea.KeyEnter:
		m.vs = m.vs.CommitSearch()
		m.refreshTable()
	case tea.KeyEscape:
		m.vs = m.vs.CancelSearch()
	case tea.KeyBackspace, tea.KeyDelete:
		m.vs = m.vs.DeleteSearchChar()
	case tea.KeySpace:
		m.vs = m.vs.AppendSearch(" ")
	case tea.KeyRunes:
		m.vs = m.vs.AppendSearch(string(msg.Runes))
	default:
	}
	return m
}

func (m Model) handleModelPickerKey(msg tea.KeyMsg) Model {
	options := len(view.Models(m.listings)) + 1 // sentinel row first
	switch keyName(msg) {
	case "up", "k":
		if m.pickerCursor > 0 {
			m.pickerCursor--
		}
	case "down", "j":
		if m.pickerCursor < options-1 {
			m.pickerCursor++
		}
	case "enter":
		if m.pickerCursor == 0 {
			m.vs = m.vs.ApplyModelFilter("")
		} else {
			m.vs = m.vs.ApplyModelFilter(view.Models(m.listings)[m.pickerCursor-1])
		}
		m.refreshTable()
	case "esc":
		m.vs = m.vs.CloseModelSelect()
	}
	return m
}

func (m Model) handleYearPickerKey(msg tea.KeyMsg) Model {
	options := len(view.Years(m.listings)) + 1
	switch keyName(msg) {
	case "up", "k":
		if m.pickerCursor > 0 {
			m.pickerCursor--
		}
	case "down", "j":
		if m.pickerCursor < options-1 {
			m.pickerCursor++
		}
	case "enter":
		if m.pickerCursor == 0 {
			m.vs = m.vs.ApplyYearFilter(0)
		} else {
			m.vs = m.vs.ApplyYearFilter(view.Years(m.listings)[m.pickerCursor-1])
		}
		m.refreshTable()
	case "esc":
		m.vs = m.vs.CloseYearSelect()
	}
	return m
}

//nolint:gocyclo // the browse key table is inherently one branch per binding
func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keyName(msg) {
	case "q":
		m.state = stateQuitting
		return m, tea.Quit
	case "p":
		m.vs = m.vs.SetSortKey(view.SortByPrice)
	case "m":
		m.vs = m.vs.SetSortKey(view.SortByMiles)
	case "y":
		m.vs = m.vs.SetSortKey(view.SortByYear)
	case "l":
		m.vs = m.vs.SetSortKey(view.SortByListed)
	case "r":
		m.vs = m.vs.ToggleSortDir()
	case "n":
		m.vs = m.vs.NextPage(m.totalPages())
	case "b":
		m.vs = m.vs.PrevPage()
	case "c":
		m.vs = m.vs.ClearSearch()
	case "o":
		m.vs = m.vs.ToggleCpo()
	case "/":
		m.vs = m.vs.StartSearch()
	case "s":
		m.vs = m.vs.OpenModelSelect()
		m.pickerCursor = 0
	case "Y":
		m.vs = m.vs.OpenYearSelect()
		m.pickerCursor = 0
	default:
		return m, nil
	}
	m.refreshTable()
	return m, nil
}

// filtered is the listing set after every active filter.
func (m Model) filtered() []schema.Listing {
	return view.Filter(m.listings, m.vs)
}

func (m Model) totalPages() int {
	return view.TotalPages(len(m.filtered()), m.vs.PageSize)
}

// visible is the sorted page slice currently on screen.
func (m Model) visible() []schema.Listing {
	return view.Visible(m.listings, m.vs)
}

func keyName(msg tea.KeyMsg) string {
	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
		return string(msg.Runes)
	}
	return msg.String()
}

func newListingTable() table.Model {
	t := table.New(
		table.WithColumns(listingColumns()),
		table.WithHeight(view.DefaultPageSize+1),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.Bold(true).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true)
	s.Selected = lipgloss.NewStyle() // no row selection in a paged grid
	t.SetStyles(s)
	return t
}
