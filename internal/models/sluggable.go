package models

// Sluggable is implemented by entities whose slug is derived from a
// human-readable field and must be unique among entities of the same kind.
type Sluggable interface {
	SlugSource() string
	SetSlug(string)
}

var (
	_ Sluggable = (*Post)(nil)
	_ Sluggable = (*Category)(nil)
)
