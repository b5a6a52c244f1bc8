// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models holds the domain types shared by the store and the HTTP
// handlers.
package models

import "time"

// Post is a blog post. Only published posts are visible through the
// public read paths (slug lookup, published listing, pagination).
type Post struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Slug      string    `json:"slug"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SlugSource returns the title, from which the post slug is derived.
func (p *Post) SlugSource() string { return p.Title }

// SetSlug stores a derived slug on the post.
func (p *Post) SetSlug(s string) { p.Slug = s }

// PostInput carries the writable fields of a post for create and update.
//
// CategoryIDs nil means "leave associations alone" on update; a non-nil
// empty slice unlinks every category.
type PostInput struct {
	Title       string
	Content     string
	Published   bool
	CategoryIDs []int64
}
