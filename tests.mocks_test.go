package main

import (
	"context"
	"sync"
	"time"
)

// This file contains mocks definitions needed to perform unit tests.

// MockBookStorage wraps a memory storage and lets tests override single
// operations. Every call is recorded in Calls.
type MockBookStorage struct {
	BookStorage
	mu                sync.Mutex
	Calls             []string
	GetAllFunc        func(ctx context.Context) []Book
	SetCheckedOutFunc func(ctx context.Context, isbn int, status bool) bool
}

// NewMockBookStorage returns a mock backed by an empty memory storage.
func NewMockBookStorage() *MockBookStorage {
	return &MockBookStorage{BookStorage: NewMemoryBookStorage()}
}

func (m *MockBookStorage) record(name string) {
	m.mu.Lock()
	m.Calls = append(m.Calls, name)
	m.mu.Unlock()
}

// GetAll mocks the behavior of listing all books by the repository.
func (m *MockBookStorage) GetAll(ctx context.Context) []Book {
	m.record("GetAll")
	if m.GetAllFunc != nil {
		return m.GetAllFunc(ctx)
	}
	return m.BookStorage.GetAll(ctx)
}

// GetFirst mocks the behavior of fetching the first match by the repository.
func (m *MockBookStorage) GetFirst(ctx context.Context, isbn int) (Book, bool) {
	m.record("GetFirst")
	return m.BookStorage.GetFirst(ctx, isbn)
}

// UpdateFirst mocks the behavior of updating the first match by the repository.
func (m *MockBookStorage) UpdateFirst(ctx context.Context, isbn int, fields BookFields) bool {
	m.record("UpdateFirst")
	return m.BookStorage.UpdateFirst(ctx, isbn, fields)
}

// SetCheckedOut mocks the behavior of the checkout toggle by the repository.
func (m *MockBookStorage) SetCheckedOut(ctx context.Context, isbn int, status bool) bool {
	m.record("SetCheckedOut")
	if m.SetCheckedOutFunc != nil {
		return m.SetCheckedOutFunc(ctx, isbn, status)
	}
	return m.BookStorage.SetCheckedOut(ctx, isbn, status)
}

// MockQueuer records pushed events and serves popped ones from PopFunc.
type MockQueuer struct {
	mu       sync.Mutex
	PushFunc func(ctx context.Context, qid string, event Event) error
	PopFunc  func(ctx context.Context, qids ...string) (string, Event, error)
	Pushed   map[string][]Event
}

// NewMockQueuer returns a queue which accepts every push.
func NewMockQueuer() *MockQueuer {
	return &MockQueuer{Pushed: make(map[string][]Event)}
}

// Push records the event then calls PushFunc when set.
func (m *MockQueuer) Push(ctx context.Context, qid string, event Event) error {
	m.mu.Lock()
	m.Pushed[qid] = append(m.Pushed[qid], event)
	m.mu.Unlock()
	if m.PushFunc != nil {
		return m.PushFunc(ctx, qid, event)
	}
	return nil
}

// Pop mocks the blocking dequeue.
func (m *MockQueuer) Pop(ctx context.Context, qids ...string) (string, Event, error) {
	return m.PopFunc(ctx, qids...)
}

// Events returns a copy of the events pushed on the queue.
func (m *MockQueuer) Events(qid string) []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Event(nil), m.Pushed[qid]...)
}

// MockJournalStorage keeps appended events in memory.
type MockJournalStorage struct {
	mu         sync.Mutex
	Events     []Event
	AppendFunc func(ctx context.Context, event Event) error
	LatestFunc func(ctx context.Context, limit int) ([]Event, error)
}

// Append mocks the archiving of an event.
func (m *MockJournalStorage) Append(ctx context.Context, event Event) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, event)
	}
	m.mu.Lock()
	m.Events = append(m.Events, event)
	m.mu.Unlock()
	return nil
}

// Latest mocks the listing of archived events.
func (m *MockJournalStorage) Latest(ctx context.Context, limit int) ([]Event, error) {
	return m.LatestFunc(ctx, limit)
}

// Len returns the number of appended events.
func (m *MockJournalStorage) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Events)
}

// MockClocker implements a fake Clocker.
type MockClocker struct {
	MockNow time.Time
}

// NewMockClocker returns a mocked instance with fixed time.
func NewMockClocker() *MockClocker {
	return &MockClocker{time.Date(2023, 0o7, 0o2, 0o0, 0o0, 0o0, 0o00000000, time.UTC)}
}

// Now returns an already defined time to be used as mock. This
// equals to `Sun, 02 Jul 2023 00:00:00 UTC` in time.RFC1123 format.
func (mck *MockClocker) Now() time.Time {
	return mck.MockNow
}

// MockUIDHandler implements a fake UIDHandler.
type MockUIDHandler struct {
	MockedUID string
	Valid     bool
}

// NewMockUIDHandler returns a mocked instance with predictable id.
func NewMockUIDHandler(id string, valid bool) *MockUIDHandler {
	return &MockUIDHandler{MockedUID: id, Valid: valid}
}

// Generate constructs a predictable id to be used as mock.
func (muid *MockUIDHandler) Generate(prefix string) string {
	return prefix + ":" + muid.MockedUID
}

// IsValid mocks IsValid behavior by providing configured status.
func (muid *MockUIDHandler) IsValid(_, _ string) bool {
	return muid.Valid
}
