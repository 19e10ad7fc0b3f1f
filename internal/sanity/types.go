package sanity

import "github.com/hvalle/blogforge/internal/richtext"

// Post is the content document created for each generated article.
type Post struct {
	Type        string           `json:"_type"`
	Title       string           `json:"title"`
	Slug        Slug             `json:"slug"`
	PublishedAt string           `json:"publishedAt"`
	Excerpt     string           `json:"excerpt,omitempty"`
	ReadingTime int              `json:"readingTime,omitempty"`
	MainImage   *Image           `json:"mainImage,omitempty"`
	Categories  []Reference      `json:"categories,omitempty"`
	Body        []richtext.Block `json:"body"`
}

// Slug is the store's slug object.
type Slug struct {
	Type    string `json:"_type"`
	Current string `json:"current"`
}

// Reference points at another document. References kept in arrays need a
// _key so the store can address the array item.
type Reference struct {
	Type string `json:"_type"`
	Key  string `json:"_key,omitempty"`
	Ref  string `json:"_ref"`
}

// Image wraps an uploaded image asset reference.
type Image struct {
	Type  string    `json:"_type"`
	Asset Reference `json:"asset"`
}

// NewSlug builds a slug object from its URL path segment.
func NewSlug(current string) Slug {
	return Slug{Type: "slug", Current: current}
}

// NewCategoryRef builds a keyed category reference for the post's
// categories array.
func NewCategoryRef(categoryID string) Reference {
	return Reference{Type: "reference", Key: richtext.Key(), Ref: categoryID}
}

// NewImage wraps an uploaded asset ID as a main-image field value.
func NewImage(assetID string) *Image {
	return &Image{
		Type:  "image",
		Asset: Reference{Type: "reference", Ref: assetID},
	}
}
