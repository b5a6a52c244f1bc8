// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug derives URL-safe path segments from post titles and
// category names.
package slug

import (
	gosimple "github.com/gosimple/slug"
)

// Generate returns the lowercase, hyphen-separated slug for s. Non-ASCII
// letters are transliterated and punctuation becomes a separator.
// Example: "Café, au lait! 2026" → "cafe-au-lait-2026"
//
// Input without any transliterable letter or digit yields "". Callers that
// persist slugs must treat that as invalid.
func Generate(s string) string {
	return gosimple.Make(s)
}

// Valid reports whether s is a non-empty slug that Generate would leave
// unchanged. Lookups use it to reject path segments no entity can carry.
func Valid(s string) bool {
	return s != "" && Generate(s) == s
}
