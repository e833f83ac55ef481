package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/dashboard"
	"github.com/trezcool/darasa/core/fetch"
	"github.com/trezcool/darasa/core/student"
)

var testFetchConf = core.FetchConfig{
	CacheTTL:        time.Minute,
	CacheMaxEntries: 16,
	RetryAttempts:   3,
	RetryDelay:      time.Millisecond,
	PollInterval:    10 * time.Millisecond,
}

func testStudent() student.Student {
	return student.Student{ID: "st-1", Name: "Amina Yusuf", RegNo: "DRS/2022/0147", Email: "amina@darasa.io"}
}

func Test_Client_unauthorizedFiresCallbackAndIsNotRetried(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(apiError{Error: "token expired"})
	}))
	defer srv.Close()

	var callbacks int32
	c := New(srv.URL, time.Second)
	c.OnUnauthorized = func() { atomic.AddInt32(&callbacks, 1) }

	p := NewPortal(c, testFetchConf)
	defer p.Close()

	_, err := p.Profile.Execute(context.Background())
	require.Error(t, err)
	assert.True(t, fetch.IsUnauthorized(err))
	assert.EqualValues(t, 1, atomic.LoadInt32(&hits), "unauthorized must not be retried")
	assert.EqualValues(t, 1, atomic.LoadInt32(&callbacks))

	state := p.Profile.State()
	assert.False(t, state.Loading)
	assert.True(t, fetch.IsUnauthorized(state.Err))
}

func Test_Client_transientServerErrorIsRetried(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) <= 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(testStudent())
	}))
	defer srv.Close()

	p := NewPortal(New(srv.URL, time.Second), testFetchConf)
	defer p.Close()

	res, err := p.Profile.Execute(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 3, atomic.LoadInt32(&hits))

	st, ok := res.(student.Student)
	require.True(t, ok)
	assert.Equal(t, "Amina Yusuf", st.Name)
}

func Test_Portal_cachesResponsesAcrossExecutes(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(testStudent())
	}))
	defer srv.Close()

	p := NewPortal(New(srv.URL, time.Second), testFetchConf)
	defer p.Close()

	_, err := p.Profile.Execute(context.Background())
	require.NoError(t, err)
	_, err = p.Profile.Execute(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt32(&hits), "second execute must be served from cache")

	_, err = p.Profile.Refetch(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt32(&hits), "refetch must bypass the cache")
}

func Test_Portal_zeroArgEndpointsDoNotShareCacheEntries(t *testing.T) {
	var profileHits, dashHits int32
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/profile", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&profileHits, 1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(testStudent())
	})
	mux.HandleFunc("/v1/dashboard", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&dashHits, 1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(dashboard.Dashboard{Semester: "2024/2025 S1"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	p := NewPortal(New(srv.URL, time.Second), testFetchConf)
	defer p.Close()

	_, err := p.Profile.Execute(context.Background())
	require.NoError(t, err)

	// both endpoints are zero-arg; the dashboard must still call its own
	// endpoint instead of serving the cached profile payload
	res, err := p.Dashboard.Execute(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt32(&dashHits))

	dash, ok := res.(dashboard.Dashboard)
	require.True(t, ok)
	assert.Equal(t, "2024/2025 S1", dash.Semester)

	// and each stays cached under its own key
	_, _ = p.Profile.Execute(context.Background())
	_, _ = p.Dashboard.Execute(context.Background())
	assert.EqualValues(t, 1, atomic.LoadInt32(&profileHits))
	assert.EqualValues(t, 1, atomic.LoadInt32(&dashHits))
}

func Test_Client_httpErrorCarriesAPIMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(apiError{Error: "course not found"})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	_, err := c.Course(context.Background(), "NOPE101")
	require.Error(t, err)

	ferr := fetch.Normalize(err)
	assert.Equal(t, fetch.CodeHTTP, ferr.Code)
	assert.Equal(t, http.StatusNotFound, ferr.StatusCode)
	assert.Equal(t, "course not found", ferr.Message)
}

func Test_JWTTokenSource(t *testing.T) {
	sign := func(exp time.Time) string {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
			Subject:   "st-1",
			ExpiresAt: exp.Unix(),
		}).SignedString([]byte("test-secret"))
		require.NoError(t, err)
		return token
	}

	t.Run("valid token is handed out", func(t *testing.T) {
		src := NewJWTTokenSource(sign(time.Now().Add(time.Hour)), 0)
		token, err := src.Token()
		require.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("expired token fails as unauthorized without a round trip", func(t *testing.T) {
		src := NewJWTTokenSource(sign(time.Now().Add(-time.Hour)), 0)
		_, err := src.Token()
		require.Error(t, err)
		assert.True(t, fetch.IsUnauthorized(err))
	})

	t.Run("missing token fails as unauthorized", func(t *testing.T) {
		src := NewJWTTokenSource("", 0)
		_, err := src.Token()
		require.Error(t, err)
		assert.True(t, fetch.IsUnauthorized(err))
	})

	t.Run("expired token aborts the request and fires the callback", func(t *testing.T) {
		var hits int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&hits, 1)
		}))
		defer srv.Close()

		var callbacks int32
		c := New(srv.URL, time.Second)
		c.Tokens = NewJWTTokenSource(sign(time.Now().Add(-time.Hour)), 0)
		c.OnUnauthorized = func() { atomic.AddInt32(&callbacks, 1) }

		_, err := c.Profile(context.Background())
		require.Error(t, err)
		assert.True(t, fetch.IsUnauthorized(err))
		assert.EqualValues(t, 0, atomic.LoadInt32(&hits), "request must not hit the wire")
		assert.EqualValues(t, 1, atomic.LoadInt32(&callbacks))
	})
}
