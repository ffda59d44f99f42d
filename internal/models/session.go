// Package models defines the domain types for Dagaz.
package models

import "time"

// Decision records one decision made during a work session.
type Decision struct {
	Date         time.Time `json:"date"`
	Status       string    `json:"status,omitempty"`
	Details      string    `json:"details"`
	Context      string    `json:"context,omitempty"`
	Rationale    string    `json:"rationale,omitempty"`
	Consequences []string  `json:"consequences,omitempty"`
}

// Summary is the structured record of one closed work session.
// It is built once per close request and immutable afterwards.
type Summary struct {
	Timestamp       time.Time  `json:"timestamp"`
	Accomplishments []string   `json:"accomplishments"`
	Decisions       []Decision `json:"decisions"`
	Blockers        []string   `json:"blockers"`
	NextSteps       []string   `json:"next_steps"`
	FilesChanged    []string   `json:"files_changed"`
}

// EntryMetadata is a lightweight representation of a journal file,
// returned by list operations.
type EntryMetadata struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}
