// Package locale holds the user-facing message catalogs and the category
// display-label table.
package locale

import (
	"os"
	"strings"

	"golang.org/x/text/language"

	"github.com/yusi/shuqian/internal/model"
)

// Catalog is one language's set of user-facing strings.
type Catalog struct {
	Tag language.Tag

	AppTitle    string
	AppSubtitle string

	// Per-operation failure messages shown in the error slot.
	LoadFailed     string
	AddFailed      string
	DeleteFailed   string
	EditFailed     string
	FavoriteFailed string

	Loading    string
	EmptyTitle string
	EmptyHint  string

	SearchPlaceholder string
	AddTitle          string
	EditTitle         string
	DeleteConfirm     string
	FieldTitle        string
	FieldURL          string
	FieldDescription  string
	FieldCategory     string
	Copied            string

	All       string
	Favorites string

	categoryLabels map[model.Category]string
}

var zhHans = Catalog{
	Tag:         language.SimplifiedChinese,
	AppTitle:    "书签盒",
	AppSubtitle: "管理和发现你喜欢的网站",

	LoadFailed:     "加载书签失败",
	AddFailed:      "添加书签失败",
	DeleteFailed:   "删除书签失败",
	EditFailed:     "编辑书签失败",
	FavoriteFailed: "同步常用页失败",

	Loading:    "加载中...",
	EmptyTitle: "没有找到书签",
	EmptyHint:  "请尝试调整搜索或筛选条件",

	SearchPlaceholder: "搜索书签...",
	AddTitle:          "添加新书签",
	EditTitle:         "编辑书签",
	DeleteConfirm:     "删除这个书签？(y/n)",
	FieldTitle:        "标题",
	FieldURL:          "网址",
	FieldDescription:  "描述",
	FieldCategory:     "分类",
	Copied:            "已复制网址",

	All:       "全部",
	Favorites: "常用页",
}

var english = Catalog{
	Tag:         language.English,
	AppTitle:    "Bookmark Box",
	AppSubtitle: "Manage and discover the sites you love",

	LoadFailed:     "Failed to load bookmarks",
	AddFailed:      "Failed to add bookmark",
	DeleteFailed:   "Failed to delete bookmark",
	EditFailed:     "Failed to edit bookmark",
	FavoriteFailed: "Failed to sync favorite",

	Loading:    "Loading...",
	EmptyTitle: "No bookmarks found",
	EmptyHint:  "Try adjusting the search or filter",

	SearchPlaceholder: "Search bookmarks...",
	AddTitle:          "Add bookmark",
	EditTitle:         "Edit bookmark",
	DeleteConfirm:     "Delete this bookmark? (y/n)",
	FieldTitle:        "Title",
	FieldURL:          "URL",
	FieldDescription:  "Description",
	FieldCategory:     "Category",
	Copied:            "URL copied",

	All:       "All",
	Favorites: "Favorites",

	categoryLabels: map[model.Category]string{
		model.CategoryAI:        "AI tools",
		model.CategoryResearch:  "Academic research",
		model.CategoryDev:       "Programming",
		model.CategoryTools:     "Tools & platforms",
		model.CategoryResources: "Resource sites",
		model.CategoryNetwork:   "Network services",
		model.CategoryCampus:    "Tongji University",
		model.CategoryStudy:     "Study aids",
		model.CategoryMedia:     "Media",
		model.CategoryGaming:    "Games & wallpapers",
		model.CategoryCommunity: "Communities",
		model.CategoryTravel:    "Travel & news",
		model.CategoryLifestyle: "Lifestyle",
		model.CategoryOther:     "Other",
	},
}

var (
	catalogs = []*Catalog{&zhHans, &english}
	matcher  = language.NewMatcher([]language.Tag{zhHans.Tag, english.Tag})
)

// Default returns the Simplified Chinese catalog.
func Default() *Catalog {
	return &zhHans
}

// For returns the catalog that best matches the given BCP 47 or POSIX
// locale string (e.g. "en", "zh-CN", "en_US.UTF-8"). Unknown or empty
// input falls back to Simplified Chinese.
func For(lang string) *Catalog {
	lang = normalize(lang)
	if lang == "" {
		return Default()
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return Default()
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return Default()
	}
	return catalogs[idx]
}

// FromEnv picks a catalog from LC_ALL, LC_MESSAGES or LANG.
func FromEnv() *Catalog {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(key); v != "" && v != "C" && v != "POSIX" {
			return For(v)
		}
	}
	return Default()
}

// normalize turns POSIX locale names into BCP 47: "en_US.UTF-8" -> "en-US".
func normalize(lang string) string {
	if i := strings.IndexAny(lang, ".@"); i >= 0 {
		lang = lang[:i]
	}
	return strings.ReplaceAll(strings.TrimSpace(lang), "_", "-")
}

// CategoryLabel returns the display label for c. Categories without a
// translation (including unknown values) are shown as stored.
func (c *Catalog) CategoryLabel(cat model.Category) string {
	if label, ok := c.categoryLabels[cat]; ok {
		return label
	}
	return string(cat)
}

// SelectionLabel returns the display label for a selector value.
func (c *Catalog) SelectionLabel(sel model.Selection) string {
	switch sel.Kind() {
	case model.SelectionAll:
		return c.All
	case model.SelectionFavorites:
		return c.Favorites
	}
	cat, _ := sel.Category()
	return c.CategoryLabel(cat)
}

// LookupCategory maps a display label or wire value back to a category.
// Used by the importer to match folder names.
func LookupCategory(label string) (model.Category, bool) {
	label = strings.TrimSpace(label)
	if cat, ok := model.ParseCategory(label); ok {
		return cat, true
	}
	for _, cat := range model.Categories() {
		for _, catalog := range catalogs {
			if strings.EqualFold(catalog.CategoryLabel(cat), label) {
				return cat, true
			}
		}
	}
	return "", false
}
