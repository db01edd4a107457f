package model

import "time"

// Room is a password-gated, named channel that scopes message visibility.
//
// PasswordHash stores the base64-encoded SHA-256 digest of the room password,
// never the plaintext. The `json:"-"` tag keeps the hash out of every API
// response — a Room serialized to JSON only carries id, name, createdBy and
// createdAt.
//
// CreatedBy is free text (the handle the creator typed); it is deliberately
// NOT validated against the users table, matching the loose coupling of the
// original system.
type Room struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedBy    string    `json:"createdBy"`
	CreatedAt    time.Time `json:"createdAt"`
}
