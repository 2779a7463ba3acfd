package models

// Tag is a shared categorical label attachable to both articles and
// submissions. Promotion copies tag references; tags are never moved.
type Tag struct {
	ID   string `json:"id" db:"id"`
	Slug string `json:"slug" db:"slug"`
	Name string `json:"name" db:"name"`
}
