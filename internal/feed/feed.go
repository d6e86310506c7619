// Copyright (c) 2026 Mecra. All rights reserved.
// Author: umut.kirgoz@posteo.net

// Package feed serves the aggregated front-page views: trending titles and
// today's titles.
//
// # Architecture
//
// Feed queries aggregate over the entry table and are the hottest read path
// of the platform, so results are cached in Redis for a short TTL. The cache
// is strictly read-through; a Redis outage degrades to direct SQL.
package feed

import (
	"context"
	"time"
)

// Item is one row of a feed: a title and its recent entry activity.
type Item struct {
	TitleID    int64     `json:"title_id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	EntryCount int64     `json:"entry_count"`
	LastEntry  time.Time `json:"last_entry"`
}

// Repository defines the aggregation queries behind the feeds.
type Repository interface {
	// Trends returns the titles with the most live entries posted inside
	// the window, busiest first.
	Trends(ctx context.Context, window time.Duration, limit int) ([]*Item, error)

	// Today returns the titles that received live entries since local
	// midnight, most recently active first.
	Today(ctx context.Context, limit int) ([]*Item, error)
}
