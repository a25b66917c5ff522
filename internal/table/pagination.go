package table

import (
	"fmt"
	"slices"
)

// PageSizes are the selectable page sizes.
var PageSizes = []int{5, 10, 20, 50}

const DefaultPageSize = 10

// State is the search and pagination state of one table view.
type State struct {
	search   string
	page     int
	pageSize int
}

func NewState() *State {
	return &State{page: 1, pageSize: DefaultPageSize}
}

func (s *State) Search() string { return s.search }

func (s *State) Page() int { return s.page }

func (s *State) PageSize() int { return s.pageSize }

// SetSearch changes the term and returns to the first page.
func (s *State) SetSearch(term string) {
	s.search = term
	s.page = 1
}

// SetPageSize changes the page size and returns to the first page. Sizes
// outside PageSizes are rejected.
func (s *State) SetPageSize(size int) error {
	if !slices.Contains(PageSizes, size) {
		return fmt.Errorf("page size %d: must be one of %v", size, PageSizes)
	}
	s.pageSize = size
	s.page = 1
	return nil
}

// SetPage jumps to page, clamped to [1, TotalPages(total)].
func (s *State) SetPage(page, total int) {
	last := max(TotalPages(total, s.pageSize), 1)
	s.page = min(max(page, 1), last)
}

func (s *State) CanPrev() bool { return s.page > 1 }

func (s *State) CanNext(total int) bool { return s.page < TotalPages(total, s.pageSize) }

// Prev moves back one page; no-op on the first page.
func (s *State) Prev() {
	if s.CanPrev() {
		s.page--
	}
}

// Next moves forward one page; no-op on the last page.
func (s *State) Next(total int) {
	if s.CanNext(total) {
		s.page++
	}
}

// TotalPages is ceil(total/size).
func TotalPages(total, size int) int {
	if size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Slice returns the records of the current page.
func (s *State) Slice(records []*Record) []*Record {
	start := (s.page - 1) * s.pageSize
	if start >= len(records) {
		return nil
	}
	end := min(start+s.pageSize, len(records))
	return records[start:end]
}

// Window is the position of the current page within total rows.
type Window struct {
	From, To, Total int
}

func (s *State) Window(total int) Window {
	if total == 0 {
		return Window{}
	}
	return Window{
		From:  (s.page-1)*s.pageSize + 1,
		To:    min(s.page*s.pageSize, total),
		Total: total,
	}
}

func (w Window) String() string {
	return fmt.Sprintf("Showing %d to %d of %d results", w.From, w.To, w.Total)
}
