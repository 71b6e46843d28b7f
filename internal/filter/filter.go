// Package filter derives the displayed subset of the bookmark collection
// from a free-text query and a category selection.
package filter

import (
	"strings"

	"github.com/yusi/shuqian/internal/model"
)

// MatchesQuery reports whether query is a case-insensitive substring of the
// bookmark's title or description. An empty query matches everything.
func MatchesQuery(b model.Bookmark, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(b.Title), q) ||
		strings.Contains(strings.ToLower(b.Description), q)
}

// Apply returns the bookmarks that match both the query and the selection,
// in source order. The input is not modified and the result is never nil.
func Apply(bookmarks []model.Bookmark, query string, sel model.Selection) []model.Bookmark {
	result := make([]model.Bookmark, 0, len(bookmarks))
	for _, b := range bookmarks {
		if MatchesQuery(b, query) && sel.Matches(b) {
			result = append(result, b)
		}
	}
	return result
}

// Source is the collection an Engine reads from. Version must change
// whenever the collection does.
type Source interface {
	Bookmarks() []model.Bookmark
	Version() uint64
}

// Engine memoizes Apply over a Source. Not safe for concurrent use; the UI
// owns it.
type Engine struct {
	src   Source
	valid bool

	version uint64
	query   string
	sel     model.Selection
	result  []model.Bookmark
}

// NewEngine creates an Engine over src.
func NewEngine(src Source) *Engine {
	return &Engine{src: src}
}

// Result returns the filtered collection for the given inputs, recomputing
// only when the source version, query or selection changed.
func (e *Engine) Result(query string, sel model.Selection) []model.Bookmark {
	v := e.src.Version()
	if e.valid && v == e.version && query == e.query && sel == e.sel {
		return e.result
	}

	e.result = Apply(e.src.Bookmarks(), query, sel)
	e.version = v
	e.query = query
	e.sel = sel
	e.valid = true
	return e.result
}

// Empty reports whether the current inputs produce no bookmarks.
func (e *Engine) Empty(query string, sel model.Selection) bool {
	return len(e.Result(query, sel)) == 0
}

// Invalidate drops the cached result.
func (e *Engine) Invalidate() {
	e.valid = false
	e.result = nil
}
