// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// Category groups posts. A post may belong to any number of categories
// through the post_categories link table.
type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Slug        string    `json:"slug"`
	CreatedAt   time.Time `json:"createdAt"`

	// PostCount is the number of published posts in the category.
	// Only populated by CategoryStore.List.
	PostCount int `json:"postCount"`
}

// SlugSource returns the category name.
func (c *Category) SlugSource() string { return c.Name }

// SetSlug stores a derived slug on the category.
func (c *Category) SetSlug(s string) { c.Slug = s }

// CategoryPatch is a partial category update. Nil fields are left as is.
type CategoryPatch struct {
	Name        *string
	Description *string
}

// Empty reports whether the patch changes nothing.
func (p CategoryPatch) Empty() bool {
	return p.Name == nil && p.Description == nil
}
