package main

import (
	"context"

	"go.uber.org/zap"
)

// BookServiceProvider exposes the books use cases to the api handlers.
type BookServiceProvider interface {
	Add(ctx context.Context, book Book) Book
	AddFields(ctx context.Context, isbn int, title, author string) Book
	GetAll(ctx context.Context) []Book
	InStock(ctx context.Context) []Book
	CheckedOut(ctx context.Context) []Book
	GetFirst(ctx context.Context, isbn int) (Book, bool)
	GetAllByISBN(ctx context.Context, isbn int) []Book
	UpdateFirst(ctx context.Context, isbn int, fields BookFields) bool
	UpdateAll(ctx context.Context, isbn int, fields BookFields) bool
	CheckOut(ctx context.Context, isbn int, status bool) bool
	DeleteFirst(ctx context.Context, isbn int) bool
	DeleteAll(ctx context.Context, isbn int) bool
	Clear(ctx context.Context)
}

// BookService delegates to the storage and publishes a journal
// event after each successful mutation when a queue is set.
type BookService struct {
	logger     *zap.Logger
	config     *Config
	clock      Clocker
	idsHandler UIDHandler
	storage    BookStorage
	queue      Queuer
}

func NewBookService(logger *zap.Logger, config *Config, clock Clocker, idsHandler UIDHandler, storage BookStorage, queue Queuer) BookServiceProvider {
	return &BookService{
		logger:     logger,
		config:     config,
		clock:      clock,
		idsHandler: idsHandler,
		storage:    storage,
		queue:      queue,
	}
}

func (bs *BookService) Add(ctx context.Context, book Book) Book {
	book = bs.storage.Add(ctx, book)
	bs.publish(ctx, Event{Kind: EventBookCreated, ISBN: book.ISBN, Book: &book})
	return book
}

func (bs *BookService) AddFields(ctx context.Context, isbn int, title, author string) Book {
	book := bs.storage.AddFields(ctx, isbn, title, author)
	bs.publish(ctx, Event{Kind: EventBookCreated, ISBN: book.ISBN, Book: &book})
	return book
}

func (bs *BookService) GetAll(ctx context.Context) []Book {
	return bs.storage.GetAll(ctx)
}

// InStock lists the books not checked out, in store order.
func (bs *BookService) InStock(ctx context.Context) []Book {
	return filterBooks(bs.storage.GetAll(ctx), false)
}

// CheckedOut lists the checked out books, in store order.
func (bs *BookService) CheckedOut(ctx context.Context) []Book {
	return filterBooks(bs.storage.GetAll(ctx), true)
}

func (bs *BookService) GetFirst(ctx context.Context, isbn int) (Book, bool) {
	return bs.storage.GetFirst(ctx, isbn)
}

func (bs *BookService) GetAllByISBN(ctx context.Context, isbn int) []Book {
	return bs.storage.GetAllByISBN(ctx, isbn)
}

func (bs *BookService) UpdateFirst(ctx context.Context, isbn int, fields BookFields) bool {
	if !bs.storage.UpdateFirst(ctx, isbn, fields) {
		return false
	}
	bs.publish(ctx, Event{Kind: EventBookUpdated, ISBN: isbn, Book: &Book{ISBN: fields.ISBN, Title: fields.Title, Author: fields.Author}})
	return true
}

func (bs *BookService) UpdateAll(ctx context.Context, isbn int, fields BookFields) bool {
	if !bs.storage.UpdateAll(ctx, isbn, fields) {
		return false
	}
	bs.publish(ctx, Event{Kind: EventBooksUpdated, ISBN: isbn, Book: &Book{ISBN: fields.ISBN, Title: fields.Title, Author: fields.Author}})
	return true
}

// CheckOut sets the checkout status of the first book with the isbn.
func (bs *BookService) CheckOut(ctx context.Context, isbn int, status bool) bool {
	if !bs.storage.SetCheckedOut(ctx, isbn, status) {
		return false
	}
	bs.publish(ctx, Event{Kind: EventBookCheckout, ISBN: isbn, Status: &status})
	return true
}

func (bs *BookService) DeleteFirst(ctx context.Context, isbn int) bool {
	if !bs.storage.DeleteFirst(ctx, isbn) {
		return false
	}
	bs.publish(ctx, Event{Kind: EventBookDeleted, ISBN: isbn})
	return true
}

func (bs *BookService) DeleteAll(ctx context.Context, isbn int) bool {
	if !bs.storage.DeleteAll(ctx, isbn) {
		return false
	}
	bs.publish(ctx, Event{Kind: EventBooksDeleted, ISBN: isbn})
	return true
}

func (bs *BookService) Clear(ctx context.Context) {
	bs.storage.Clear(ctx)
	bs.publish(ctx, Event{Kind: EventBooksCleared})
}

// publish pushes the event to its queue. Failures are only logged.
func (bs *BookService) publish(ctx context.Context, event Event) {
	if bs.queue == nil {
		return
	}
	event.ID = bs.idsHandler.Generate(EventIDPrefix)
	event.RequestID = GetValueFromContext(ctx, RequestIDContextKey)
	event.At = bs.clock.Now()
	qid := QueueForEvent(event.Kind)
	if err := bs.queue.Push(ctx, qid, event); err != nil {
		bs.logger.Error("service: failed to push event to queue",
			zap.String("qid", qid),
			zap.String("event.kind", event.Kind),
			zap.String("request.id", event.RequestID),
			zap.Error(err),
		)
	}
}

func filterBooks(books []Book, checkedOut bool) []Book {
	filtered := []Book{}
	for _, b := range books {
		if b.CheckedOut == checkedOut {
			filtered = append(filtered, b)
		}
	}
	return filtered
}
