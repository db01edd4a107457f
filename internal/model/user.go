// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other
// languages, but without inheritance. Go favours composition over inheritance.
package model

import "time"

// User represents a chat participant.
//
// Users are keyed two ways: a numeric surrogate ID (the database primary key,
// exposed on the wire as a positive integer) and a unique, case-sensitive
// Handle chosen by the human. Messages reference the Handle, not the ID —
// the handle is the natural key for message ownership.
//
// A User is created either by explicit registration (POST /api/users) or
// implicitly on the first message posted under an unseen handle. Once created
// it is never mutated.
type User struct {
	ID        int64     `json:"id"`
	Handle    string    `json:"handle"`
	CreatedAt time.Time `json:"createdAt"`
}
