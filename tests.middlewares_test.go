package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// TestMiddlewaresStacks ensures we get both public and ops middlewares
// stacks with exact number of elements in those stacks.
func TestMiddlewaresStacks(t *testing.T) {
	api, _ := newTestAPI(nil)
	pub, ops := api.MiddlewaresStacks()
	assert.Equal(t, 8, len(*pub))
	assert.Equal(t, 6, len(*ops))
}

// TestChain ensures each middleware in the stack is called as well the handler.
func TestChain(t *testing.T) {
	var ca, cb, cc, ch bool
	queue := make(chan int, 4)

	middlewareA := func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			queue <- 1
			ca = true
			next(w, r, ps)
		}
	}
	middlewareB := func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			queue <- 2
			cb = true
			next(w, r, ps)
		}
	}
	middlewareC := func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			queue <- 3
			cc = true
			next(w, r, ps)
		}
	}
	middlewares := Middlewares{
		middlewareA,
		middlewareB,
		middlewareC,
	}

	handler := func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		queue <- 4
		ch = true
	}

	chained := (&middlewares).Chain(handler)
	req := httptest.NewRequest("GET", "/v1/books", nil)
	w := httptest.NewRecorder()
	chained(w, req, nil)

	t.Run("check calling", func(t *testing.T) {
		assert.Equal(t, true, ca)
		assert.Equal(t, true, cb)
		assert.Equal(t, true, cc)
		assert.Equal(t, true, ch)
	})

	t.Run("check ordering", func(t *testing.T) {
		assert.Equal(t, 1, <-queue)
		assert.Equal(t, 2, <-queue)
		assert.Equal(t, 3, <-queue)
		assert.Equal(t, 4, <-queue)
	})

	t.Run("empty stack", func(t *testing.T) {
		called := false
		h := (&Middlewares{}).Chain(func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) { called = true })
		h(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil), nil)
		assert.True(t, called)
	})
}

// TestRequestsCounterMiddleware ensures the request counter increment.
func TestRequestsCounterMiddleware(t *testing.T) {
	api, _ := newTestAPI(nil)
	req := httptest.NewRequest("GET", "/v1/books", nil)
	w := httptest.NewRecorder()
	var num uint64
	handler := func(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
		num = GetRequestNumberFromContext(req.Context())
	}
	wrapped := api.RequestsCounterMiddleware(handler)
	wrapped(w, req, nil)
	wrapped(w, req, nil)
	assert.Equal(t, uint64(2), num)
	assert.Equal(t, uint64(2), api.stats.called)
}

// TestRequestIDMiddleware ensures a request id is set and a valid client one is reused.
func TestRequestIDMiddleware(t *testing.T) {
	testCases := []struct {
		name     string
		valid    bool
		header   string
		expected string
	}{
		{"generated id", false, "", "r:abc"},
		{"invalid client id", false, "bogus", "r:abc"},
		{"valid client id", true, "r:client", "r:client"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clock := NewMockClocker()
			api := NewAPIHandler(zap.NewNop(), nil, &Statistics{started: clock.Now()}, clock, NewMockUIDHandler("abc", tc.valid), nil, nil)
			req := httptest.NewRequest("GET", "/v1/books", nil)
			if tc.header != "" {
				req.Header.Set(RequestIDHeader, tc.header)
			}
			w := httptest.NewRecorder()
			var got string
			api.RequestIDMiddleware(func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
				got = GetValueFromContext(r.Context(), RequestIDContextKey)
			})(w, req, nil)
			assert.Equal(t, tc.expected, got)
			assert.Equal(t, tc.expected, w.Header().Get(RequestIDHeader))
		})
	}
}

// TestCoreMiddleware ensures a request scoped logger is injected.
func TestCoreMiddleware(t *testing.T) {
	api, _ := newTestAPI(nil)
	req := httptest.NewRequest("GET", "/v1/books", nil)
	w := httptest.NewRecorder()
	var logger *zap.Logger
	api.CoreMiddleware(func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		logger, _ = r.Context().Value(LoggerContextKey).(*zap.Logger)
	})(w, req, nil)
	assert.NotNil(t, logger)
}

// TestStatsMiddleware ensures responses are counted by status code.
func TestStatsMiddleware(t *testing.T) {
	api, _ := newTestAPI(nil)
	h := api.StatsMiddleware(func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		w.WriteHeader(http.StatusNotFound)
	})
	h(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil), nil)
	h(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil), nil)
	ok := api.StatsMiddleware(func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		_, _ = w.Write([]byte("ok"))
	})
	ok(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil), nil)
	assert.Equal(t, uint64(2), api.stats.status[http.StatusNotFound])
	assert.Equal(t, uint64(1), api.stats.status[http.StatusOK])
}

// TestCORSMiddleware ensures cors headers are set.
func TestCORSMiddleware(t *testing.T) {
	w := httptest.NewRecorder()
	CORSMiddleware(func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {})(w, httptest.NewRequest("GET", "/", nil), nil)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, RequestIDHeader, w.Header().Get("Access-Control-Expose-Headers"))
}

// TestPanicRecoveryMiddleware ensures a panicking handler ends with 500.
func TestPanicRecoveryMiddleware(t *testing.T) {
	api, _ := newTestAPI(nil)
	w := httptest.NewRecorder()
	api.PanicRecoveryMiddleware(func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		panic("boom")
	})(w, httptest.NewRequest("GET", "/", nil), nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

// TestRateLimitMiddleware ensures clients over their budget get 429.
func TestRateLimitMiddleware(t *testing.T) {
	config := &Config{RateLimit: RateLimitConfig{Enable: true, RPS: 1, Burst: 2}}
	api, _ := newTestAPI(config)
	require.NotNil(t, api.limiter)
	router := newTestRouter(api)

	for i := 0; i < 2; i++ {
		res, _ := doRequest(t, router, http.MethodGet, "/v1/books", nil)
		assert.Equal(t, http.StatusOK, res.StatusCode)
	}
	res, body := doRequest(t, router, http.MethodGet, "/v1/books", nil)
	assert.Equal(t, http.StatusTooManyRequests, res.StatusCode)
	assert.Equal(t, "too many requests.", body.Message)

	t.Run("disabled", func(t *testing.T) {
		api, _ := newTestAPI(nil)
		assert.Nil(t, api.limiter)
		router := newTestRouter(api)
		for i := 0; i < 5; i++ {
			res, _ := doRequest(t, router, http.MethodGet, "/v1/books", nil)
			assert.Equal(t, http.StatusOK, res.StatusCode)
		}
	})
}

// TestRateLimitMiddlewareClientKey ensures proxy headers only pick the
// client budget when they are trusted.
func TestRateLimitMiddlewareClientKey(t *testing.T) {
	send := func(router http.Handler, forwarded string) int {
		req := httptest.NewRequest(http.MethodGet, "/v1/books", nil)
		req.RemoteAddr = "192.0.2.1:4000"
		req.Header.Set("X-FORWARDED-FOR", forwarded)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	t.Run("untrusted headers", func(t *testing.T) {
		api, _ := newTestAPI(&Config{RateLimit: RateLimitConfig{Enable: true, RPS: 1, Burst: 2}})
		router := newTestRouter(api)
		assert.Equal(t, http.StatusOK, send(router, "10.0.0.1"))
		assert.Equal(t, http.StatusOK, send(router, "10.0.0.2"))
		assert.Equal(t, http.StatusTooManyRequests, send(router, "10.0.0.3"))
	})

	t.Run("trusted headers", func(t *testing.T) {
		api, _ := newTestAPI(&Config{RateLimit: RateLimitConfig{Enable: true, RPS: 1, Burst: 2, TrustProxy: true}})
		router := newTestRouter(api)
		assert.Equal(t, http.StatusOK, send(router, "10.0.0.1"))
		assert.Equal(t, http.StatusOK, send(router, "10.0.0.1"))
		assert.Equal(t, http.StatusTooManyRequests, send(router, "10.0.0.1"))
		assert.Equal(t, http.StatusOK, send(router, "10.0.0.2"))
	})
}

// TestRateLimiter ensures budgets are per client and refill over time.
func TestRateLimiter(t *testing.T) {
	clock := NewMockClocker()
	rl := NewRateLimiter(1, 1, clock)

	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
	assert.True(t, rl.Allow("b"))

	clock.MockNow = clock.MockNow.Add(time.Second)
	assert.True(t, rl.Allow("a"))

	clock.MockNow = clock.MockNow.Add(10 * time.Minute)
	assert.True(t, rl.Allow("c"))
	rl.mu.Lock()
	_, exists := rl.clients["b"]
	rl.mu.Unlock()
	assert.False(t, exists)
}
