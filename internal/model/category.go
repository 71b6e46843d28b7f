package model

// Category is one label from the fixed category set. The string value is
// what travels over the wire; display labels live in the locale catalog.
type Category string

const (
	CategoryAI        Category = "AI 工具"
	CategoryResearch  Category = "学术研究"
	CategoryDev       Category = "编程与开发"
	CategoryTools     Category = "工具与平台"
	CategoryResources Category = "资源网站"
	CategoryNetwork   Category = "网络服务与机场"
	CategoryCampus    Category = "同济大学"
	CategoryStudy     Category = "学习与答题"
	CategoryMedia     Category = "影音娱乐"
	CategoryGaming    Category = "游戏与壁纸"
	CategoryCommunity Category = "社区与论坛"
	CategoryTravel    Category = "文旅资讯"
	CategoryLifestyle Category = "生活百科"
	CategoryOther     Category = "其他"
)

var categories = []Category{
	CategoryAI,
	CategoryResearch,
	CategoryDev,
	CategoryTools,
	CategoryResources,
	CategoryNetwork,
	CategoryCampus,
	CategoryStudy,
	CategoryMedia,
	CategoryGaming,
	CategoryCommunity,
	CategoryTravel,
	CategoryLifestyle,
	CategoryOther,
}

// Categories returns the concrete categories in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// Valid reports whether c belongs to the fixed set.
func (c Category) Valid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory returns the category whose wire value equals s.
func ParseCategory(s string) (Category, bool) {
	c := Category(s)
	return c, c.Valid()
}

// Index returns the position of c in Categories(), or -1.
func (c Category) Index() int {
	for i, known := range categories {
		if c == known {
			return i
		}
	}
	return -1
}

// SelectionKind distinguishes the filter selector variants.
type SelectionKind int

const (
	SelectionAll SelectionKind = iota
	SelectionFavorites
	SelectionCategory
)

// Selection is the value of the category selector: everything, favorites
// only, or one concrete category. The pseudo-categories never appear on a
// stored bookmark.
type Selection struct {
	kind     SelectionKind
	category Category
}

// SelectAll matches every bookmark.
func SelectAll() Selection { return Selection{kind: SelectionAll} }

// SelectFavorites matches bookmarks with Favorite set.
func SelectFavorites() Selection { return Selection{kind: SelectionFavorites} }

// SelectCategory matches bookmarks in exactly c.
func SelectCategory(c Category) Selection {
	return Selection{kind: SelectionCategory, category: c}
}

// Kind returns the variant.
func (s Selection) Kind() SelectionKind { return s.kind }

// Category returns the concrete category for SelectionCategory.
func (s Selection) Category() (Category, bool) {
	return s.category, s.kind == SelectionCategory
}

// Matches reports whether b passes the selector.
func (s Selection) Matches(b Bookmark) bool {
	switch s.kind {
	case SelectionFavorites:
		return b.Favorite
	case SelectionCategory:
		return b.Category == s.category
	default:
		return true
	}
}

// String returns the CLI name of the selection.
func (s Selection) String() string {
	switch s.kind {
	case SelectionFavorites:
		return "favorites"
	case SelectionCategory:
		return string(s.category)
	default:
		return "all"
	}
}

// Selections returns the selector cycle: all, favorites, then each category.
func Selections() []Selection {
	out := make([]Selection, 0, len(categories)+2)
	out = append(out, SelectAll(), SelectFavorites())
	for _, c := range categories {
		out = append(out, SelectCategory(c))
	}
	return out
}

// ParseSelection accepts "all"/"全部", "favorites"/"常用页" or a category value.
func ParseSelection(s string) (Selection, bool) {
	switch s {
	case "", "all", "全部":
		return SelectAll(), true
	case "favorites", "常用页":
		return SelectFavorites(), true
	}
	if c, ok := ParseCategory(s); ok {
		return SelectCategory(c), true
	}
	return Selection{}, false
}
