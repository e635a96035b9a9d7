package main

import (
	"context"
	"errors"
	"time"
)

// Kinds of journal events.
const (
	EventBookCreated   = "book.created"
	EventBookUpdated   = "book.updated"
	EventBooksUpdated  = "books.updated"
	EventBookCheckout  = "book.checkout"
	EventBookDeleted   = "book.deleted"
	EventBooksDeleted  = "books.deleted"
	EventBooksCleared  = "books.cleared"
	EventIDPrefix      = "e"
	defaultJournalSize = 50
	maxJournalSize     = 1000
)

var ErrJournalDisabled = errors.New("journal is disabled")

// Event describes a successful mutation of the books collection.
type Event struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	ISBN      int       `json:"isbn"`
	Book      *Book     `json:"book,omitempty"`
	Status    *bool     `json:"status,omitempty"`
	RequestID string    `json:"requestid,omitempty"`
	At        time.Time `json:"at"`
}

// JournalStorage defines operations on the archive of events.
type JournalStorage interface {
	Append(ctx context.Context, event Event) error
	Latest(ctx context.Context, limit int) ([]Event, error)
}
