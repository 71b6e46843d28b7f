package search

import (
	"github.com/sahilm/fuzzy"

	"github.com/yusi/shuqian/internal/model"
)

// SearchResult represents a fuzzy search match.
type SearchResult struct {
	Bookmark model.Bookmark
	// MatchedIndexes are rune offsets into the title. Matches that fall in
	// the description are not reported.
	MatchedIndexes []int
	Score          int
}

// bookmarkText implements fuzzy.Source over title and description.
type bookmarkText []model.Bookmark

func (bt bookmarkText) String(i int) string {
	if bt[i].Description == "" {
		return bt[i].Title
	}
	return bt[i].Title + " " + bt[i].Description
}

func (bt bookmarkText) Len() int {
	return len(bt)
}

// FuzzySearchBookmarks ranks bookmarks against query by fuzzy matching the
// title and description. Results are sorted best first.
func FuzzySearchBookmarks(bookmarks []model.Bookmark, query string) []SearchResult {
	if query == "" {
		return nil
	}

	matches := fuzzy.FindFrom(query, bookmarkText(bookmarks))

	results := make([]SearchResult, len(matches))
	for i, m := range matches {
		b := bookmarks[m.Index]
		results[i] = SearchResult{
			Bookmark:       b,
			MatchedIndexes: titleIndexes(b.Title, m.MatchedIndexes),
			Score:          m.Score,
		}
	}

	return results
}

// titleIndexes converts fuzzy byte offsets into rune offsets within title.
func titleIndexes(title string, idx []int) []int {
	if len(idx) == 0 {
		return nil
	}
	byteToRune := make(map[int]int, len(title))
	r := 0
	for i := range title {
		byteToRune[i] = r
		r++
	}

	var out []int
	for _, i := range idx {
		if ri, ok := byteToRune[i]; ok {
			out = append(out, ri)
		}
	}
	return out
}
