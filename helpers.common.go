package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidISBN        = errors.New("isbn must be an integer")
	ErrInvalidRequestBody = errors.New("invalid book request body")
	ErrInvalidStatus      = errors.New("status must be a boolean")
	ErrInvalidFilter      = errors.New("status filter must be in-stock or checked-out")
)

type (
	ContextKey        string
	missingFieldError string
)

const (
	RequestIDPrefix         string     = "r"
	RequestIDHeader         string     = "X-Request-ID"
	RequestIDContextKey     ContextKey = "request.id"
	RequestNumberContextKey ContextKey = "request.number"
)

// Books listing filters.
const (
	FilterInStock    = "in-stock"
	FilterCheckedOut = "checked-out"
)

var validate = validator.New()

func (m missingFieldError) Error() string {
	return string(m) + " is required"
}

// GetValueFromContext returns the value of a given key in the context
// if this key is not available, it returns an empty string.
func GetValueFromContext(ctx context.Context, contextKey ContextKey) string {
	if val, ok := ctx.Value(contextKey).(string); ok {
		return val
	}
	return ""
}

// GetRequestNumberFromContext returns the request number set in
// the context. if not previously set then it returns 0.
func GetRequestNumberFromContext(ctx context.Context) uint64 {
	if val, ok := ctx.Value(RequestNumberContextKey).(uint64); ok {
		return val
	}
	return 0
}

// ParseISBN converts a path or query isbn value into an integer.
func ParseISBN(value string) (int, error) {
	isbn, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidISBN, value)
	}
	return isbn, nil
}

// ParseCheckoutStatus reads the mandatory boolean `status` query parameter.
func ParseCheckoutStatus(q url.Values) (bool, error) {
	if !q.Has("status") {
		return false, missingFieldError("status")
	}
	status, err := strconv.ParseBool(q.Get("status"))
	if err != nil {
		return false, fmt.Errorf("%w: %q", ErrInvalidStatus, q.Get("status"))
	}
	return status, nil
}

// DecodeBookRequestBody is a helper function to read the content of a book creation or update request.
func DecodeBookRequestBody(r *http.Request, book *Book) error {
	if r.Body == nil || r.Body == http.NoBody {
		return ErrInvalidRequestBody
	}
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(book); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequestBody, err)
	}
	return nil
}

// bookFieldsQuery holds the discrete-fields form of a book. Pointers
// distinguish a missing parameter from an empty one.
type bookFieldsQuery struct {
	ISBN   *string `validate:"required,numeric"`
	Title  *string `validate:"required"`
	Author *string `validate:"required"`
}

// HasBookFieldsQuery tells whether the request uses the discrete-fields form.
func HasBookFieldsQuery(q url.Values) bool {
	return q.Has("isbn") || q.Has("title") || q.Has("author")
}

// ParseBookFieldsQuery extracts and validates the isbn, title and author
// query parameters. All three must be present and isbn must be numeric.
func ParseBookFieldsQuery(q url.Values) (BookFields, error) {
	var bq bookFieldsQuery
	for key, dst := range map[string]**string{"isbn": &bq.ISBN, "title": &bq.Title, "author": &bq.Author} {
		if q.Has(key) {
			v := q.Get(key)
			*dst = &v
		}
	}

	if err := validate.Struct(bq); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			field := strings.ToLower(verrs[0].Field())
			if verrs[0].Tag() == "required" {
				return BookFields{}, missingFieldError(field)
			}
			return BookFields{}, fmt.Errorf("%w: %q", ErrInvalidISBN, *bq.ISBN)
		}
		return BookFields{}, err
	}

	isbn, err := ParseISBN(*bq.ISBN)
	if err != nil {
		return BookFields{}, err
	}
	return BookFields{ISBN: isbn, Title: *bq.Title, Author: *bq.Author}, nil
}

// GetRequestRemoteIP returns the IP of the peer connection, ignoring any proxy header.
func GetRequestRemoteIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return ""
	}
	if net.ParseIP(ip) == nil {
		return ""
	}
	return ip
}

// GetRequestSourceIP helps find the source IP of the caller.
func GetRequestSourceIP(r *http.Request) string {
	// Get IP from the X-REAL-IP header
	ip := r.Header.Get("X-REAL-IP")
	netIP := net.ParseIP(ip)
	if netIP != nil {
		return ip
	}

	// Get IP from X-FORWARDED-FOR header
	ips := r.Header.Get("X-FORWARDED-FOR")
	splitIps := strings.Split(ips, ",")
	for _, ip := range splitIps {
		ip = strings.TrimSpace(ip)
		netIP = net.ParseIP(ip)
		if netIP != nil {
			return ip
		}
	}

	return GetRequestRemoteIP(r)
}

// IsAppRunningInDocker checks the existence of the .dockerenv
// file at the root directory and returns a boolean result. This
// helps know if the App is running in a docker container or not.
func IsAppRunningInDocker() bool {
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true
	}
	return false
}
