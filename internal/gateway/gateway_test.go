package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studiowebux/foodboard/internal/mock"
	"github.com/studiowebux/foodboard/internal/types"
)

func newBackend(t *testing.T, foods ...types.FoodRecord) (*mock.Server, *HTTPGateway) {
	t.Helper()
	backend := mock.NewServer(&mock.Config{Foods: foods}, zerolog.Nop())
	ts := httptest.NewServer(backend.Handler())
	t.Cleanup(ts.Close)

	gw, err := New(Options{BaseURL: ts.URL + "/", Timeout: 5 * time.Second})
	require.NoError(t, err)
	return backend, gw
}

func cake() types.FoodRecord {
	return types.FoodRecord{ID: "1", Name: "Cake", Image: "http://img/cake.png", Price: 10, Description: "Chocolate", Available: true}
}

func TestNew_RequiresBaseURL(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}

func TestNew_TrimsTrailingSlash(t *testing.T) {
	gw, err := New(Options{BaseURL: "http://localhost:3333/"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3333", gw.BaseURL())
}

func TestList(t *testing.T) {
	_, gw := newBackend(t, cake())

	foods, err := gw.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []types.FoodRecord{cake()}, foods)
}

func TestList_EmptyIsNonNil(t *testing.T) {
	_, gw := newBackend(t)

	foods, err := gw.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, foods)
	assert.Empty(t, foods)
}

func TestCreate_ForcesAvailable(t *testing.T) {
	backend, gw := newBackend(t)

	created, err := gw.Create(context.Background(), types.FoodInput{Name: "Pie", Image: "img", Price: 8, Description: "Apple"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.Available)
	assert.Equal(t, "Pie", created.Name)

	logs := backend.GetLogs()
	require.Len(t, logs, 1)
	assert.Equal(t, http.MethodPost, logs[0].Method)
	assert.Equal(t, "/foods", logs[0].Path)
	assert.Contains(t, logs[0].Body, `"available":true`)
}

func TestUpdate(t *testing.T) {
	backend, gw := newBackend(t, cake())

	rec := cake()
	rec.Price = 12
	updated, err := gw.Update(context.Background(), "1", rec)
	require.NoError(t, err)
	assert.Equal(t, rec, updated)
	assert.Equal(t, []types.FoodRecord{rec}, backend.Foods())
}

func TestUpdate_NotFound(t *testing.T) {
	_, gw := newBackend(t)

	_, err := gw.Update(context.Background(), "missing", cake())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))

	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, http.StatusNotFound, te.Status)
	assert.Equal(t, "update", te.Op)
	assert.False(t, te.Temporary())
}

func TestDelete(t *testing.T) {
	backend, gw := newBackend(t, cake())

	require.NoError(t, gw.Delete(context.Background(), "1"))
	assert.Empty(t, backend.Foods())
	assert.ErrorIs(t, gw.Delete(context.Background(), "1"), ErrNotFound)
}

func TestDelete_EscapesID(t *testing.T) {
	backend, gw := newBackend(t)

	_ = gw.Delete(context.Background(), "a/b")
	logs := backend.GetLogs()
	require.Len(t, logs, 1)
	assert.Equal(t, "/foods/a%2Fb", logs[0].Path)
}

func TestServerError(t *testing.T) {
	backend, gw := newBackend(t)
	backend.FailNext(http.MethodPost, http.StatusInternalServerError)

	_, err := gw.Create(context.Background(), types.FoodInput{Name: "Pie"})
	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, http.StatusInternalServerError, te.Status)
	assert.True(t, te.Temporary())
	assert.Contains(t, te.Error(), "500")
	assert.Contains(t, te.Body, "injected failure")
}

func TestNetworkError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	gw, err := New(Options{BaseURL: url, Timeout: time.Second})
	require.NoError(t, err)

	_, err = gw.List(context.Background())
	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, 0, te.Status)
	assert.True(t, te.Temporary())
}

func TestDecodeError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	t.Cleanup(ts.Close)

	gw, err := New(Options{BaseURL: ts.URL})
	require.NoError(t, err)

	_, err = gw.List(context.Background())
	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, http.StatusOK, te.Status)
}

func TestContextCancelled(t *testing.T) {
	_, gw := newBackend(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gw.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestList_ConcurrentCallsShareRequest(t *testing.T) {
	var hits atomic.Int32
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		<-release
		w.Write([]byte(`[{"id":1,"name":"Cake"}]`))
	}))
	t.Cleanup(ts.Close)

	gw, err := New(Options{BaseURL: ts.URL})
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([][]types.FoodRecord, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = gw.List(context.Background())
		}(i)
	}

	// Give every caller time to join the flight before answering
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), hits.Load())
	for _, r := range results {
		require.Len(t, r, 1)
		assert.Equal(t, "1", r[0].ID)
	}

	// Results are independent copies
	results[0][0].Name = "Mutated"
	assert.Equal(t, "Cake", results[1][0].Name)
}

func TestList_CancelledCallerDoesNotFailJoinedCaller(t *testing.T) {
	started := make(chan struct{}, 1)
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started <- struct{}{}
		<-release
		w.Write([]byte(`[{"id":1,"name":"Cake"}]`))
	}))
	t.Cleanup(ts.Close)

	gw, err := New(Options{BaseURL: ts.URL, Timeout: 5 * time.Second})
	require.NoError(t, err)

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := gw.List(firstCtx)
		firstErr <- err
	}()
	<-started

	type listResult struct {
		foods []types.FoodRecord
		err   error
	}
	second := make(chan listResult, 1)
	go func() {
		foods, err := gw.List(context.Background())
		second <- listResult{foods, err}
	}()

	// Let the second caller join the flight, then drop the first
	time.Sleep(50 * time.Millisecond)
	cancelFirst()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(release)
	got := <-second
	require.NoError(t, got.err)
	require.Len(t, got.foods, 1)
	assert.Equal(t, "1", got.foods[0].ID)
}
