package model

import "time"

// Message is a single chat message, optionally enriched with a sentiment
// label/score pair inferred by an external analysis backend.
//
// WHY POINTERS FOR THE SENTIMENT FIELDS?
// Enrichment is best-effort: when the analysis backend is unavailable the
// message is stored without a sentiment. *string / *float64 give us a real
// "absent" state — nil marshals to JSON null and maps to SQL NULL. The two
// fields are always set or cleared together; a label without a score (or the
// reverse) never exists.
//
// CreatedAt is assigned at persistence time, so creation order and timestamp
// order agree (ties are broken by ID, which is monotonically increasing).
type Message struct {
	ID             int64     `json:"id"`
	Handle         string    `json:"handle"`
	Text           string    `json:"text"`
	SentimentLabel *string   `json:"sentimentLabel"`
	SentimentScore *float64  `json:"sentimentScore"`
	RoomID         int64     `json:"roomId"`
	CreatedAt      time.Time `json:"createdAt"`
}
