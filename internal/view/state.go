// Package view holds the interactive session state and the pure derivation
// functions over it. Nothing here touches the terminal: the TUI layer feeds
// key events in and renders whatever the derivations return, so derived data
// can never desynchronize from its inputs.
package view

// SortKey selects the listing attribute ordered by.
type SortKey string

// Sort keys.
const (
	SortByPrice  SortKey = "price"
	SortByMiles  SortKey = "miles"
	SortByYear   SortKey = "year"
	SortByListed SortKey = "listed"
)

// SortDir is the sort direction.
type SortDir string

// Sort directions.
const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// DefaultPageSize is the number of rows shown per page.
const DefaultPageSize = 15

// State is the view-state of one browsing session. Transitions return a new
// value, so replacing a State is atomic with respect to readers; a filter of
// "" (or year 0) means no filter.
type State struct {
	Search      string
	SearchInput string
	SearchMode  bool

	SortKey SortKey
	SortDir SortDir

	Page     int
	PageSize int

	CpoOnly bool

	ModelFilter     string
	ModelSelectMode bool
	YearFilter      int
	YearSelectMode  bool
}

// New returns the initial view state: sorted by ascending price, first page.
func New() State {
	return State{
		SortKey:  SortByPrice,
		SortDir:  SortAsc,
		PageSize: DefaultPageSize,
	}
}

// SetSortKey selects the sort key and rewinds to the first page.
func (s State) SetSortKey(key SortKey) State {
	s.SortKey = key
	s.Page = 0
	return s
}

// ToggleSortDir flips the sort direction. The page is kept.
func (s State) ToggleSortDir() State {
	if s.SortDir == SortAsc {
		s.SortDir = SortDesc
	} else {
		s.SortDir = SortAsc
	}
	return s
}

// NextPage advances one page, clamped to the last page.
func (s State) NextPage(totalPages int) State {
	if s.Page < totalPages-1 {
		s.Page++
	}
	return s
}

// PrevPage goes back one page, clamped to the first.
func (s State) PrevPage() State {
	if s.Page > 0 {
		s.Page--
	}
	return s
}

// ToggleCpo flips the certified-pre-owned-only filter and rewinds paging.
func (s State) ToggleCpo() State {
	s.CpoOnly = !s.CpoOnly
	s.Page = 0
	return s
}

// ClearSearch drops the active search text and rewinds paging.
func (s State) ClearSearch() State {
	s.Search = ""
	s.SearchInput = ""
	s.Page = 0
	return s
}

// StartSearch enters search-edit mode, seeding the edit buffer with the
// active search text.
func (s State) StartSearch() State {
	s.SearchMode = true
	s.SearchInput = s.Search
	return s
}

// CancelSearch leaves search-edit mode, discarding the edit buffer.
func (s State) CancelSearch() State {
	s.SearchMode = false
	s.SearchInput = s.Search
	return s
}

// CommitSearch copies the edit buffer into the active search, leaves edit
// mode, and rewinds paging.
func (s State) CommitSearch() State {
	s.Search = s.SearchInput
	s.SearchMode = false
	s.Page = 0
	return s
}

// AppendSearch appends text to the edit buffer.
func (s State) AppendSearch(text string) State {
	s.SearchInput += text
	return s
}

// DeleteSearchChar removes the last character from the edit buffer.
func (s State) DeleteSearchChar() State {
	if s.SearchInput != "" {
		runes := []rune(s.SearchInput)
		s.SearchInput = string(runes[:len(runes)-1])
	}
	return s
}

// OpenModelSelect opens the model-picker overlay.
func (s State) OpenModelSelect() State {
	s.ModelSelectMode = true
	return s
}

// CloseModelSelect closes the model-picker overlay without changes.
func (s State) CloseModelSelect() State {
	s.ModelSelectMode = false
	return s
}

// ApplyModelFilter sets the exact-match model filter ("" clears it), closes
// the overlay, and rewinds paging.
func (s State) ApplyModelFilter(model string) State {
	s.ModelFilter = model
	s.ModelSelectMode = false
	s.Page = 0
	return s
}

// ClearModelFilter drops the model filter and rewinds paging.
func (s State) ClearModelFilter() State {
	s.ModelFilter = ""
	s.Page = 0
	return s
}

// OpenYearSelect opens the year-picker overlay.
func (s State) OpenYearSelect() State {
	s.YearSelectMode = true
	return s
}

// CloseYearSelect closes the year-picker overlay without changes.
func (s State) CloseYearSelect() State {
	s.YearSelectMode = false
	return s
}

// ApplyYearFilter sets the exact-match year filter (0 clears it), closes the
// overlay, and rewinds paging.
func (s State) ApplyYearFilter(year int) State {
	s.YearFilter = year
	s.YearSelectMode = false
	s.Page = 0
	return s
}

// ClearYearFilter drops the year filter and rewinds paging.
func (s State) ClearYearFilter() State {
	s.YearFilter = 0
	s.Page = 0
	return s
}
