// Copyright (c) 2026 Mecra. All rights reserved.
// Author: umut.kirgoz@posteo.net

// Package entry owns the written content of the platform: the entries posted
// under titles, their recycle bin lifecycle, and the vote/favorite signals
// attached to them.
package entry

import (
	"time"
)

// Entry represents one piece of member-written content under a title.
//
// # Lifecycle
//
// An entry is live while DeletedAt is nil. Soft deletion stamps DeletedAt and
// moves the entry into its author's recycle bin, from where it can be
// recovered or purged. Hard deletion removes the row permanently.
type Entry struct {
	ID        int64      `json:"id"`
	TitleID   int64      `json:"title_id"`
	AuthorID  int64      `json:"author_id"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`

	// Aggregates computed at read time, not stored on the row.
	VoteScore     int64 `json:"vote_score"`
	FavoriteCount int64 `json:"favorite_count"`
}

// Vote values accepted by the API.
const (
	VoteUp   = 1
	VoteDown = -1
)
