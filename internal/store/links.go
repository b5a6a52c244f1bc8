// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// links.go maintains the post_categories association. Link rows are only
// written inside the transaction that writes the owning post, so a post is
// never observed with a half-replaced category set.
package store

import (
	"database/sql"
	"fmt"
)

// dedupeIDs returns ids without repeats, keeping first-appearance order.
func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// insertLinks links postID to each distinct id in categoryIDs.
func insertLinks(tx *sql.Tx, postID int64, categoryIDs []int64) error {
	ids := dedupeIDs(categoryIDs)
	if len(ids) == 0 {
		return nil
	}

	stmt, err := tx.Prepare(`INSERT INTO post_categories (post_id, category_id) VALUES ($1, $2)`)
	if err != nil {
		return fmt.Errorf("prepare link insert: %w", err)
	}
	defer stmt.Close()

	for _, categoryID := range ids {
		if _, err := stmt.Exec(postID, categoryID); err != nil {
			return fmt.Errorf("link post %d to category %d: %w", postID, categoryID, classifyWrite(err))
		}
	}
	return nil
}

// replaceLinks drops every link of postID and inserts the target set.
// Categories missing from categoryIDs end up unlinked; the category rows
// themselves are not touched.
func replaceLinks(tx *sql.Tx, postID int64, categoryIDs []int64) error {
	if _, err := tx.Exec(`DELETE FROM post_categories WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("clear links of post %d: %w", postID, err)
	}
	return insertLinks(tx, postID, categoryIDs)
}

// SetCategories replaces the category set of an existing post and bumps its
// updated_at. Returns ErrNotFound if the post does not exist.
func (s *PostStore) SetCategories(postID int64, categoryIDs []int64) error {
	err := withTx(s.db, func(tx *sql.Tx) error {
		res, err := tx.Exec(`UPDATE posts SET updated_at = NOW() WHERE id = $1`, postID)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err != nil {
			return err
		} else if n == 0 {
			return ErrNotFound
		}
		return replaceLinks(tx, postID, categoryIDs)
	})
	if err != nil {
		return fmt.Errorf("set categories of post %d: %w", postID, err)
	}
	return nil
}
