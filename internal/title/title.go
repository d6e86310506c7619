// Copyright (c) 2026 Mecra. All rights reserved.
// Author: umut.kirgoz@posteo.net

// Package title owns the discussion topics that entries are written under.
//
// # Architecture
//
// A title is a thin container: it carries a unique name, a URL slug, and a
// visibility flag. All written content lives in the entry domain.
package title

import (
	"time"
)

// Title represents a discussion topic.
//
// # Rules
//   - Name is unique (case-sensitive) and 1 to 60 characters.
//   - Slug is derived from Name at creation time and never changes.
//   - Hidden titles are visible to moderators and admins only.
type Title struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	IsHidden  bool      `json:"is_hidden"`
	CreatedBy int64     `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
