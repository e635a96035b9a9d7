package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseISBN(t *testing.T) {
	isbn, err := ParseISBN(" 42 ")
	assert.NoError(t, err)
	assert.Equal(t, 42, isbn)

	isbn, err = ParseISBN("-7")
	assert.NoError(t, err)
	assert.Equal(t, -7, isbn)

	for _, v := range []string{"", "abc", "1.5", "9x"} {
		_, err = ParseISBN(v)
		assert.ErrorIs(t, err, ErrInvalidISBN, v)
	}
}

func TestParseCheckoutStatus(t *testing.T) {
	status, err := ParseCheckoutStatus(url.Values{"status": {"true"}})
	assert.NoError(t, err)
	assert.True(t, status)

	status, err = ParseCheckoutStatus(url.Values{"status": {"0"}})
	assert.NoError(t, err)
	assert.False(t, status)

	_, err = ParseCheckoutStatus(url.Values{})
	assert.EqualError(t, err, "status is required")

	_, err = ParseCheckoutStatus(url.Values{"status": {"yes"}})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestParseBookFieldsQuery(t *testing.T) {
	testCases := []struct {
		name     string
		query    string
		expected BookFields
		err      string
	}{
		{"all fields", "isbn=12&title=Dune&author=Herbert", BookFields{12, "Dune", "Herbert"}, ""},
		{"empty title is allowed", "isbn=12&title=&author=Herbert", BookFields{12, "", "Herbert"}, ""},
		{"missing isbn", "title=Dune&author=Herbert", BookFields{}, "isbn is required"},
		{"missing title", "isbn=12&author=Herbert", BookFields{}, "title is required"},
		{"missing author", "isbn=12&title=Dune", BookFields{}, "author is required"},
		{"non numeric isbn", "isbn=x&title=Dune&author=Herbert", BookFields{}, "isbn must be an integer"},
		{"decimal isbn", "isbn=1.5&title=Dune&author=Herbert", BookFields{}, "isbn must be an integer"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			q, err := url.ParseQuery(tc.query)
			require.NoError(t, err)
			assert.True(t, HasBookFieldsQuery(q))
			fields, err := ParseBookFieldsQuery(q)
			if tc.err != "" {
				require.Error(t, err)
				assert.True(t, strings.HasPrefix(err.Error(), tc.err), err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, fields)
		})
	}

	assert.False(t, HasBookFieldsQuery(url.Values{"status": {"true"}}))
}

func TestDecodeBookRequestBody(t *testing.T) {
	var book Book
	req := httptest.NewRequest(http.MethodPost, "/v1/books", bytes.NewBufferString(`{"isbn":3,"title":"t","author":"a"}`))
	require.NoError(t, DecodeBookRequestBody(req, &book))
	assert.Equal(t, NewBook(3, "t", "a"), book)

	req = httptest.NewRequest(http.MethodPost, "/v1/books", bytes.NewBufferString(`[`))
	assert.ErrorIs(t, DecodeBookRequestBody(req, &book), ErrInvalidRequestBody)

	req = httptest.NewRequest(http.MethodPost, "/v1/books", nil)
	assert.ErrorIs(t, DecodeBookRequestBody(req, &book), ErrInvalidRequestBody)
}

func TestGetRequestSourceIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:5000"
	assert.Equal(t, "10.0.0.1", GetRequestSourceIP(req))

	req.Header.Set("X-FORWARDED-FOR", "bad, 10.0.0.2")
	assert.Equal(t, "10.0.0.2", GetRequestSourceIP(req))

	req.Header.Set("X-REAL-IP", "10.0.0.3")
	assert.Equal(t, "10.0.0.3", GetRequestSourceIP(req))
	assert.Equal(t, "10.0.0.1", GetRequestRemoteIP(req))

	req.RemoteAddr = "not-an-address"
	assert.Equal(t, "", GetRequestRemoteIP(req))
}

func TestContextValues(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "", GetValueFromContext(ctx, RequestIDContextKey))
	assert.Equal(t, uint64(0), GetRequestNumberFromContext(ctx))

	ctx = context.WithValue(ctx, RequestIDContextKey, "r:1")
	ctx = context.WithValue(ctx, RequestNumberContextKey, uint64(9))
	assert.Equal(t, "r:1", GetValueFromContext(ctx, RequestIDContextKey))
	assert.Equal(t, uint64(9), GetRequestNumberFromContext(ctx))
}

func TestIDsHandler(t *testing.T) {
	idh := NewIDsHandler()
	id := idh.Generate(RequestIDPrefix)
	assert.True(t, strings.HasPrefix(id, "r:"))
	assert.True(t, idh.IsValid(id, RequestIDPrefix))
	assert.False(t, idh.IsValid(id, EventIDPrefix))
	assert.False(t, idh.IsValid("r:not-a-uuid", RequestIDPrefix))
	assert.False(t, idh.IsValid("", RequestIDPrefix))
	assert.NotEqual(t, id, idh.Generate(RequestIDPrefix))
}

func TestClock(t *testing.T) {
	assert.Equal(t, time.UTC, NewClock(true).Now().Location())
	assert.Equal(t, time.Local, NewClock(false).Now().Location())

	tc := NewTickClock(NewMockClocker())
	assert.Equal(t, NewMockClocker().Now(), tc.Now())
	ticker := tc.NewTicker(time.Hour)
	ticker.Stop()
}

func TestWriteResponses(t *testing.T) {
	w := httptest.NewRecorder()
	total := 1
	require.NoError(t, WriteResponse(context.Background(), w, GenericResponse("r:1", http.StatusOK, "ok", &total, []int{1})))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"requestid":"r:1","status":200,"message":"ok","total":1,"data":[1]}`, w.Body.String())

	w = httptest.NewRecorder()
	require.NoError(t, WriteErrorResponse(context.Background(), w, NewAPIError("r:1", http.StatusNotFound, "nope", EmptyData)))
	assert.JSONEq(t, `{"requestid":"r:1","status":404,"message":"nope","data":{}}`, w.Body.String())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w = httptest.NewRecorder()
	err := WriteNoContentResponse(ctx, w)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 499, w.Code)

	ctx, cancel = context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()
	w = httptest.NewRecorder()
	assert.Error(t, WriteResponse(ctx, w, GenericResponse("", http.StatusOK, "", nil, EmptyData)))
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
}

func TestRSyncWriter(t *testing.T) {
	folder := t.TempDir()
	clock := NewMockClocker()
	rsw := NewRSyncWriter(&Config{LogFolder: folder, LogMaxSize: 1}, clock)
	defer rsw.Close()

	n, err := rsw.Write([]byte("first line\n"))
	require.NoError(t, err)
	assert.Equal(t, 11, n)
	require.NoError(t, rsw.Sync())

	path := CreateLogFilePath(folder, false, clock.Now())
	assert.Equal(t, filepath.Join(folder, "20230702.000000.dev.log"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first line\n", string(data))

	_, err = rsw.Write(make([]byte, 2*1048576))
	assert.Error(t, err)
}

func TestSetupLogging(t *testing.T) {
	folder := t.TempDir()
	clock := NewTickClock(NewMockClocker())
	config := &Config{IsProduction: true, LogFolder: folder, LogMaxSize: 1, LogLevel: zapcore.InfoLevel, GitTag: "v0.1.0"}
	rsw := NewRSyncWriter(config, clock)
	defer rsw.Close()

	logger, flush := SetupLogging(config, rsw, clock)
	logger.Debug("hidden")
	logger.Info("visible")
	require.NoError(t, flush())

	data, err := os.ReadFile(CreateLogFilePath(folder, true, clock.Now()))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"visible"`)
	assert.Contains(t, string(data), `"app.tag":"v0.1.0"`)
	assert.NotContains(t, string(data), "hidden")
}
