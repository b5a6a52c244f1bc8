// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store implements the PostgreSQL data access for posts, categories
// and the links between them. Store methods wrap failures with the operation
// name; callers classify them with errors.Is against the sentinels below.
package store

import "errors"

var (
	// ErrNotFound is returned when the addressed post or category does not
	// exist, or a public lookup matches only unpublished posts.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateSlug is returned when the derived slug is already taken by
	// another entity of the same kind.
	ErrDuplicateSlug = errors.New("slug already exists")

	// ErrUnknownCategory is returned when a post references a category id
	// that does not exist.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrInvalid is returned for input the store refuses to persist, such as
	// a title that yields an empty slug or out-of-range paging.
	ErrInvalid = errors.New("invalid input")
)
