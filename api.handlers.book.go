package main

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// Index provides same details like `Status` handler by redirecting the request.
func (api *APIHandler) Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	http.Redirect(w, r, "/status", http.StatusSeeOther)
}

// Status provides basics details about the application to the public users.
func (api *APIHandler) Status(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	if err := json.NewEncoder(w).Encode(
		map[string]interface{}{
			"requestid": requestID,
			"status":    fmt.Sprintf("up & running since %.0f mins", api.clock.Now().Sub(api.stats.started).Minutes()),
			"message":   "Hello. Book manager api is available. Enjoy :)",
		},
	); err != nil {
		api.GetLoggerFromContext(r.Context()).Error("failed to send status response", zap.Error(err))
	}
}

// sendError logs the failure and writes the error envelope.
func (api *APIHandler) sendError(w http.ResponseWriter, r *http.Request, status int, message string, data interface{}, fields ...zap.Field) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	logger := api.GetLoggerFromContext(r.Context())
	logger.Error(message, fields...)
	if err := WriteErrorResponse(r.Context(), w, NewAPIError(requestID, status, message, data)); err != nil {
		logger.Error("failed to send error response", zap.Error(err))
	}
}

// send writes the success envelope.
func (api *APIHandler) send(w http.ResponseWriter, r *http.Request, status int, message string, total *int, data interface{}) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	if err := WriteResponse(r.Context(), w, GenericResponse(requestID, status, message, total, data)); err != nil {
		api.GetLoggerFromContext(r.Context()).Error("failed to send response", zap.Error(err))
	}
}

// isbnParam parses the `isbn` path parameter and answers with 400 on failure.
func (api *APIHandler) isbnParam(w http.ResponseWriter, r *http.Request, ps httprouter.Params) (int, bool) {
	isbn, err := ParseISBN(ps.ByName("isbn"))
	if err != nil {
		api.sendError(w, r, http.StatusBadRequest, "book isbn provided is not valid", err.Error(), zap.String("book.isbn", ps.ByName("isbn")), zap.Error(err))
		return 0, false
	}
	return isbn, true
}

// bookFields reads the update values either from the isbn, title and author
// query parameters when one of them is set or from the json body.
func (api *APIHandler) bookFields(w http.ResponseWriter, r *http.Request, message string) (BookFields, bool) {
	q := r.URL.Query()
	if HasBookFieldsQuery(q) {
		fields, err := ParseBookFieldsQuery(q)
		if err != nil {
			api.sendError(w, r, http.StatusBadRequest, message, err.Error(), zap.Error(err))
			return fields, false
		}
		return fields, true
	}

	var book Book
	if err := DecodeBookRequestBody(r, &book); err != nil {
		api.sendError(w, r, http.StatusBadRequest, message, err.Error(), zap.Error(err))
		return BookFields{}, false
	}
	return book.Fields(), true
}

// GetAllBooks lists the books in store order. The optional `status` query
// parameter restricts the listing to in-stock or checked-out books.
func (api *APIHandler) GetAllBooks(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var books []Book
	filter := r.URL.Query().Get("status")
	switch filter {
	case "":
		books = api.bookService.GetAll(r.Context())
	case FilterInStock:
		books = api.bookService.InStock(r.Context())
	case FilterCheckedOut:
		books = api.bookService.CheckedOut(r.Context())
	default:
		api.sendError(w, r, http.StatusBadRequest, "failed to get books", ErrInvalidFilter.Error(), zap.String("books.filter", filter))
		return
	}
	api.GetLoggerFromContext(r.Context()).Info("success to get books", zap.String("books.filter", filter), zap.Int("books.total", len(books)))
	total := len(books)
	api.send(w, r, http.StatusOK, "Books fetched successfully.", &total, books)
}

// GetOneBook returns the first book with the isbn.
func (api *APIHandler) GetOneBook(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	isbn, ok := api.isbnParam(w, r, ps)
	if !ok {
		return
	}
	book, found := api.bookService.GetFirst(r.Context(), isbn)
	if !found {
		api.sendError(w, r, http.StatusNotFound, "book does not exist", EmptyData, zap.Int("book.isbn", isbn))
		return
	}
	api.GetLoggerFromContext(r.Context()).Info("success to get book", zap.Int("book.isbn", isbn))
	api.send(w, r, http.StatusOK, "Book fetched successfully.", nil, book)
}

// GetBooksByISBN returns every book sharing the isbn. An empty list is a success.
func (api *APIHandler) GetBooksByISBN(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	isbn, ok := api.isbnParam(w, r, ps)
	if !ok {
		return
	}
	books := api.bookService.GetAllByISBN(r.Context(), isbn)
	api.GetLoggerFromContext(r.Context()).Info("success to get books by isbn", zap.Int("book.isbn", isbn), zap.Int("books.total", len(books)))
	total := len(books)
	api.send(w, r, http.StatusOK, "Books fetched successfully.", &total, books)
}

// CreateBook adds a book from the json body or from the isbn, title and author query parameters.
func (api *APIHandler) CreateBook(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var book Book
	q := r.URL.Query()
	if HasBookFieldsQuery(q) {
		fields, err := ParseBookFieldsQuery(q)
		if err != nil {
			api.sendError(w, r, http.StatusBadRequest, "failed to create the book", err.Error(), zap.Error(err))
			return
		}
		book = api.bookService.AddFields(r.Context(), fields.ISBN, fields.Title, fields.Author)
	} else {
		if err := DecodeBookRequestBody(r, &book); err != nil {
			api.sendError(w, r, http.StatusBadRequest, "failed to create the book", err.Error(), zap.Error(err))
			return
		}
		book = api.bookService.Add(r.Context(), book)
	}
	api.GetLoggerFromContext(r.Context()).Info("success to create book", zap.Int("book.isbn", book.ISBN))
	api.send(w, r, http.StatusCreated, "Book created successfully.", nil, book)
}

// UpdateBook overwrites the first book with the isbn. The checkout status is kept.
func (api *APIHandler) UpdateBook(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	isbn, ok := api.isbnParam(w, r, ps)
	if !ok {
		return
	}
	fields, ok := api.bookFields(w, r, "failed to update the book")
	if !ok {
		return
	}
	if !api.bookService.UpdateFirst(r.Context(), isbn, fields) {
		api.sendError(w, r, http.StatusNotFound, "book does not exist", EmptyData, zap.Int("book.isbn", isbn))
		return
	}
	api.GetLoggerFromContext(r.Context()).Info("success to update book", zap.Int("book.isbn", isbn), zap.Int("book.new_isbn", fields.ISBN))
	if err := WriteNoContentResponse(r.Context(), w); err != nil {
		api.GetLoggerFromContext(r.Context()).Error("failed to send response", zap.Error(err))
	}
}

// UpdateBooksByISBN overwrites every book with the isbn.
func (api *APIHandler) UpdateBooksByISBN(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	isbn, ok := api.isbnParam(w, r, ps)
	if !ok {
		return
	}
	fields, ok := api.bookFields(w, r, "failed to update the books")
	if !ok {
		return
	}
	if !api.bookService.UpdateAll(r.Context(), isbn, fields) {
		api.sendError(w, r, http.StatusNotFound, "books do not exist", EmptyData, zap.Int("book.isbn", isbn))
		return
	}
	api.GetLoggerFromContext(r.Context()).Info("success to update books", zap.Int("book.isbn", isbn), zap.Int("book.new_isbn", fields.ISBN))
	if err := WriteNoContentResponse(r.Context(), w); err != nil {
		api.GetLoggerFromContext(r.Context()).Error("failed to send response", zap.Error(err))
	}
}

// CheckOutBook sets the checkout status of the first book with the isbn.
func (api *APIHandler) CheckOutBook(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	isbn, ok := api.isbnParam(w, r, ps)
	if !ok {
		return
	}
	status, err := ParseCheckoutStatus(r.URL.Query())
	if err != nil {
		api.sendError(w, r, http.StatusBadRequest, "failed to update the book status", err.Error(), zap.Int("book.isbn", isbn), zap.Error(err))
		return
	}
	if !api.bookService.CheckOut(r.Context(), isbn, status) {
		api.sendError(w, r, http.StatusNotFound, "book does not exist", EmptyData, zap.Int("book.isbn", isbn))
		return
	}
	api.GetLoggerFromContext(r.Context()).Info("success to update book status", zap.Int("book.isbn", isbn), zap.Bool("book.checkedout", status))
	api.send(w, r, http.StatusOK, "Book status updated successfully.", nil, map[string]interface{}{"isbn": isbn, "checkedOut": status})
}

// DeleteOneBook removes the first book with the isbn.
func (api *APIHandler) DeleteOneBook(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	isbn, ok := api.isbnParam(w, r, ps)
	if !ok {
		return
	}
	if !api.bookService.DeleteFirst(r.Context(), isbn) {
		api.sendError(w, r, http.StatusNotFound, "book does not exist", EmptyData, zap.Int("book.isbn", isbn))
		return
	}
	api.GetLoggerFromContext(r.Context()).Info("success to delete book", zap.Int("book.isbn", isbn))
	api.send(w, r, http.StatusOK, "Book deleted successfully.", nil, EmptyData)
}

// DeleteBooksByISBN removes every book with the isbn.
func (api *APIHandler) DeleteBooksByISBN(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	isbn, ok := api.isbnParam(w, r, ps)
	if !ok {
		return
	}
	if !api.bookService.DeleteAll(r.Context(), isbn) {
		api.sendError(w, r, http.StatusNotFound, "books do not exist", EmptyData, zap.Int("book.isbn", isbn))
		return
	}
	api.GetLoggerFromContext(r.Context()).Info("success to delete books", zap.Int("book.isbn", isbn))
	api.send(w, r, http.StatusOK, "Books deleted successfully.", nil, EmptyData)
}

// DeleteAllBooks empties the collection. It always succeeds.
func (api *APIHandler) DeleteAllBooks(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	api.bookService.Clear(r.Context())
	api.GetLoggerFromContext(r.Context()).Info("success to delete all books")
	api.send(w, r, http.StatusOK, "All books deleted successfully.", nil, EmptyData)
}
