package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yusi/shuqian/internal/locale"
	"github.com/yusi/shuqian/internal/model"
)

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/shuqian-export-YYYY-MM-DD.html
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("shuqian-export-%s.html", time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML renders bookmarks as Netscape bookmark HTML with one folder
// per category. Known categories come first in their fixed order, then
// unknown ones in order of first appearance. Folder names use the
// catalog's category labels; a nil catalog uses the default locale.
func ExportHTML(bookmarks []model.Bookmark, catalog *locale.Catalog) string {
	if catalog == nil {
		catalog = locale.Default()
	}

	var b strings.Builder

	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Bookmarks</TITLE>\n")
	b.WriteString("<H1>Bookmarks</H1>\n")
	b.WriteString("<DL><p>\n")

	for _, group := range groupByCategory(bookmarks) {
		prefix := "    "
		fmt.Fprintf(&b, "%s<DT><H3>%s</H3>\n", prefix, html.EscapeString(catalog.CategoryLabel(group.category)))
		fmt.Fprintf(&b, "%s<DL><p>\n", prefix)
		for _, bm := range group.bookmarks {
			writeBookmark(&b, bm, prefix+"    ")
		}
		fmt.Fprintf(&b, "%s</DL><p>\n", prefix)
	}

	b.WriteString("</DL><p>\n")

	return b.String()
}

func writeBookmark(b *strings.Builder, bm model.Bookmark, prefix string) {
	fmt.Fprintf(b, "%s<DT><A HREF=\"%s\"", prefix, html.EscapeString(bm.URL))
	if ts, ok := model.IDTime(bm.ID); ok {
		fmt.Fprintf(b, " ADD_DATE=\"%d\"", ts.Unix())
	}
	fmt.Fprintf(b, ">%s</A>\n", html.EscapeString(bm.Title))
	if bm.Description != "" {
		fmt.Fprintf(b, "%s<DD>%s\n", prefix, html.EscapeString(bm.Description))
	}
}

type categoryGroup struct {
	category  model.Category
	bookmarks []model.Bookmark
}

func groupByCategory(bookmarks []model.Bookmark) []categoryGroup {
	byCategory := make(map[model.Category][]model.Bookmark)
	var unknown []model.Category
	for _, bm := range bookmarks {
		if _, seen := byCategory[bm.Category]; !seen && !bm.Category.Valid() {
			unknown = append(unknown, bm.Category)
		}
		byCategory[bm.Category] = append(byCategory[bm.Category], bm)
	}

	var groups []categoryGroup
	for _, cat := range append(model.Categories(), unknown...) {
		if list := byCategory[cat]; len(list) > 0 {
			groups = append(groups, categoryGroup{category: cat, bookmarks: list})
		}
	}
	return groups
}
