// Package entity defines the domain models for the games feature.
package entity

import "time"

// Game is one entry of the games catalog demo resource.
type Game struct {
	ID        uint
	Name      string
	Genre     string
	Year      int
	CreatedAt time.Time
}
