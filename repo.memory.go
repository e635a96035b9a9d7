package main

import (
	"context"
	"sync"
)

var _ BookStorage = (*memoryBookStorage)(nil) // ensure memoryBookStorage implements BookStorage.

// memoryBookStorage keeps books in a slice so the insertion order
// drives which record a single-record operation resolves to. All
// operations are serialized by a single lock.
type memoryBookStorage struct {
	mu    sync.RWMutex
	books []Book
}

// NewMemoryBookStorage provides an empty in-memory book storage.
func NewMemoryBookStorage() *memoryBookStorage {
	return &memoryBookStorage{books: []Book{}}
}

// Add appends a copy of the book as a new in stock record.
func (ms *memoryBookStorage) Add(_ context.Context, book Book) Book {
	book.CheckedOut = false
	ms.mu.Lock()
	ms.books = append(ms.books, book)
	ms.mu.Unlock()
	return book
}

// AddFields builds a new in stock record from discrete values and appends it.
func (ms *memoryBookStorage) AddFields(ctx context.Context, isbn int, title, author string) Book {
	return ms.Add(ctx, NewBook(isbn, title, author))
}

// GetAll returns a snapshot of all books in store order.
func (ms *memoryBookStorage) GetAll(_ context.Context) []Book {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	books := make([]Book, len(ms.books))
	copy(books, ms.books)
	return books
}

// GetFirst returns the earliest book with the given isbn.
func (ms *memoryBookStorage) GetFirst(_ context.Context, isbn int) (Book, bool) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	if i := ms.indexOf(isbn); i >= 0 {
		return ms.books[i], true
	}
	return Book{}, false
}

// GetAllByISBN returns every book with the given isbn in store order.
// The result is empty but never nil when nothing matches.
func (ms *memoryBookStorage) GetAllByISBN(_ context.Context, isbn int) []Book {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	books := []Book{}
	for _, b := range ms.books {
		if b.ISBN == isbn {
			books = append(books, b)
		}
	}
	return books
}

// UpdateFirst overwrites the fields of the earliest book with the given isbn.
func (ms *memoryBookStorage) UpdateFirst(_ context.Context, isbn int, fields BookFields) bool {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	i := ms.indexOf(isbn)
	if i < 0 {
		return false
	}
	ms.books[i].apply(fields)
	return true
}

// UpdateAll overwrites the fields of every book with the given isbn. It
// succeeds when at least one book matched and all matches were updated.
func (ms *memoryBookStorage) UpdateAll(_ context.Context, isbn int, fields BookFields) bool {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	matched := ms.count(isbn)
	if matched == 0 {
		return false
	}
	updated := 0
	for i := range ms.books {
		if ms.books[i].ISBN == isbn {
			ms.books[i].apply(fields)
			updated++
		}
	}
	return updated == matched
}

// SetCheckedOut sets the checkout status of the earliest book with the given isbn.
func (ms *memoryBookStorage) SetCheckedOut(_ context.Context, isbn int, status bool) bool {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	i := ms.indexOf(isbn)
	if i < 0 {
		return false
	}
	ms.books[i].CheckedOut = status
	return true
}

// DeleteFirst removes the earliest book with the given isbn.
func (ms *memoryBookStorage) DeleteFirst(_ context.Context, isbn int) bool {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	i := ms.indexOf(isbn)
	if i < 0 {
		return false
	}
	ms.books = append(ms.books[:i], ms.books[i+1:]...)
	return true
}

// DeleteAll removes every book with the given isbn. It fails
// only when no book matched before the call.
func (ms *memoryBookStorage) DeleteAll(_ context.Context, isbn int) bool {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	kept := ms.books[:0]
	for _, b := range ms.books {
		if b.ISBN != isbn {
			kept = append(kept, b)
		}
	}
	removed := len(ms.books) - len(kept)
	// zero the tail so removed records are not retained by the backing array.
	for i := len(kept); i < len(ms.books); i++ {
		ms.books[i] = Book{}
	}
	ms.books = kept
	return removed > 0
}

// Clear removes all books.
func (ms *memoryBookStorage) Clear(_ context.Context) {
	ms.mu.Lock()
	ms.books = []Book{}
	ms.mu.Unlock()
}

// indexOf must be called with the lock held.
func (ms *memoryBookStorage) indexOf(isbn int) int {
	for i, b := range ms.books {
		if b.ISBN == isbn {
			return i
		}
	}
	return -1
}

// count must be called with the lock held.
func (ms *memoryBookStorage) count(isbn int) int {
	n := 0
	for _, b := range ms.books {
		if b.ISBN == isbn {
			n++
		}
	}
	return n
}
