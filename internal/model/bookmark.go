package model

// Bookmark represents a saved URL with descriptive metadata.
type Bookmark struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Favorite    bool     `json:"favorite,omitempty"`
}

// Fields returns the editable fields of the bookmark.
func (b Bookmark) Fields() Fields {
	return Fields{
		Title:       b.Title,
		URL:         b.URL,
		Description: b.Description,
		Category:    b.Category,
	}
}

// Apply overwrites the editable fields. ID and Favorite are left alone.
func (b *Bookmark) Apply(f Fields) {
	b.Title = f.Title
	b.URL = f.URL
	b.Description = f.Description
	b.Category = f.Category
}

// Fields holds the four user-editable bookmark fields.
type Fields struct {
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
}

// Patch is a partial update. Only non-nil fields are sent and applied.
type Patch struct {
	Title       *string   `json:"title,omitempty"`
	URL         *string   `json:"url,omitempty"`
	Description *string   `json:"description,omitempty"`
	Category    *Category `json:"category,omitempty"`
	Favorite    *bool     `json:"favorite,omitempty"`
}

// PatchFromFields builds a Patch that replaces all four editable fields.
func PatchFromFields(f Fields) Patch {
	return Patch{
		Title:       &f.Title,
		URL:         &f.URL,
		Description: &f.Description,
		Category:    &f.Category,
	}
}

// ApplyTo merges the set fields of p into b.
func (p Patch) ApplyTo(b *Bookmark) {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.URL != nil {
		b.URL = *p.URL
	}
	if p.Description != nil {
		b.Description = *p.Description
	}
	if p.Category != nil {
		b.Category = *p.Category
	}
	if p.Favorite != nil {
		b.Favorite = *p.Favorite
	}
}

// Draft is the buffer behind the add form.
type Draft struct {
	Title       string
	URL         string
	Description string
	Category    Category
}

// NewDraft returns an empty draft preset to the given category.
func NewDraft(category Category) Draft {
	return Draft{Category: category}
}

// Complete reports whether the required fields are filled in.
func (d Draft) Complete() bool {
	return d.Title != "" && d.URL != ""
}

// NewBookmark creates a Bookmark from a draft under the given ID.
func NewBookmark(id string, d Draft) Bookmark {
	return Bookmark{
		ID:          id,
		Title:       d.Title,
		URL:         d.URL,
		Description: d.Description,
		Category:    d.Category,
	}
}
