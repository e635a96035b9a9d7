package main

import "context"

// Book represents a book entity. The ISBN is not a unique key:
// several books may share the same value.
type Book struct {
	ISBN       int    `json:"isbn"`
	Title      string `json:"title"`
	Author     string `json:"author"`
	CheckedOut bool   `json:"checkedOut"`
}

// BookFields holds the values written by update operations.
// It never carries the checkout status.
type BookFields struct {
	ISBN   int    `json:"isbn"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

// NewBook returns a book which is in stock.
func NewBook(isbn int, title, author string) Book {
	return Book{ISBN: isbn, Title: title, Author: author}
}

// Fields extracts the updatable values of the book.
func (b Book) Fields() BookFields {
	return BookFields{ISBN: b.ISBN, Title: b.Title, Author: b.Author}
}

// apply overwrites the identifying values and keeps the checkout status.
func (b *Book) apply(f BookFields) {
	b.ISBN = f.ISBN
	b.Title = f.Title
	b.Author = f.Author
}

// BookStorage defines possible operations on book entity. Every single-record
// operation resolves to the first book in insertion order with the given isbn.
// A missing book is reported through the boolean results.
type BookStorage interface {
	Add(ctx context.Context, book Book) Book
	AddFields(ctx context.Context, isbn int, title, author string) Book
	GetAll(ctx context.Context) []Book
	GetFirst(ctx context.Context, isbn int) (Book, bool)
	GetAllByISBN(ctx context.Context, isbn int) []Book
	UpdateFirst(ctx context.Context, isbn int, fields BookFields) bool
	UpdateAll(ctx context.Context, isbn int, fields BookFields) bool
	SetCheckedOut(ctx context.Context, isbn int, status bool) bool
	DeleteFirst(ctx context.Context, isbn int) bool
	DeleteAll(ctx context.Context, isbn int) bool
	Clear(ctx context.Context)
}
