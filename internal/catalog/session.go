package catalog

import (
	"sync"

	"github.com/google/uuid"

	"promohub/pkg/models"
)

// PageView is what the rendering collaborator consumes for one render:
// the visible slice, the paging numbers and the chrome around the grid.
type PageView struct {
	Items      []models.NormalizedPromotion
	Page       int
	TotalPages int
	TotalItems int
	Categories []string
	Summary    string
	// Message is set when there is nothing to show: the empty-filter text,
	// or the no-promotions text when the whole active set is empty.
	Message string
}

// Session is one viewer's UI state: search term, category, sort mode and
// current page. Filter or sort changes reset the page to 1 and re-run the
// projection; page moves only clamp and slice, they never re-filter.
//
// The session re-projects lazily when it notices the store swapped in a
// new snapshot, so a catalog reload shows up on the next render.
type Session struct {
	mu       sync.Mutex
	store    *Store
	pageSize int

	search   string
	category string
	sort     SortMode
	page     int

	snapID   uuid.UUID
	filtered []models.NormalizedPromotion
}

func NewSession(store *Store, pageSize int) *Session {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Session{
		store:    store,
		pageSize: pageSize,
		sort:     SortUrgency,
		page:     1,
	}
}

func (s *Session) SetSearch(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = term
	s.page = 1
	s.reproject()
}

func (s *Session) SetCategory(category string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.category = category
	s.page = 1
	s.reproject()
}

func (s *Session) SetSort(mode SortMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sort = mode
	s.page = 1
	s.reproject()
}

// SetPage moves to an absolute page, clamped to the available range.
func (s *Session) SetPage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh()
	s.page = ClampPage(page, TotalPages(len(s.filtered), s.pageSize))
}

// Next advances one page; at the last page it is a no-op.
func (s *Session) Next() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh()
	if s.page < TotalPages(len(s.filtered), s.pageSize) {
		s.page++
	}
}

// Prev goes back one page; at page 1 it is a no-op.
func (s *Session) Prev() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh()
	if s.page > 1 {
		s.page--
	}
}

// View renders the current page. ok is false while no catalog has ever
// been loaded (the load-error state is the caller's to report).
func (s *Session) View() (PageView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, loaded := s.store.Current()
	if !loaded {
		return PageView{}, false
	}
	s.refresh()

	total := len(s.filtered)
	totalPages := TotalPages(total, s.pageSize)
	s.page = ClampPage(s.page, totalPages)

	view := PageView{
		Items:      PageSlice(s.filtered, s.page, s.pageSize),
		Page:       s.page,
		TotalPages: totalPages,
		TotalItems: total,
		Categories: snap.Categories,
		Summary:    Summary(s.page, totalPages, total),
	}
	if total == 0 {
		if len(snap.Active) == 0 {
			view.Message = NoPromosMessage
		} else {
			view.Message = EmptyFilterMessage
		}
	}
	return view, true
}

// refresh re-projects if the store has a newer snapshot than the one this
// session last projected. The page is kept (and later clamped), because a
// mere re-render must not reset it.
func (s *Session) refresh() {
	snap, ok := s.store.Current()
	if !ok {
		s.filtered = nil
		s.snapID = uuid.Nil
		return
	}
	if snap.LoadID == s.snapID {
		return
	}
	s.snapID = snap.LoadID
	s.filtered = Project(snap.Active, s.search, s.category, s.sort)
}

func (s *Session) reproject() {
	snap, ok := s.store.Current()
	if !ok {
		s.filtered = nil
		s.snapID = uuid.Nil
		return
	}
	s.snapID = snap.LoadID
	s.filtered = Project(snap.Active, s.search, s.category, s.sort)
}
