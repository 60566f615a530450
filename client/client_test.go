package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/word-orbit/events"
)

// fakeProducer serves a fixed 3-batch sequence for any anchor
func fakeProducer(t *testing.T, hits *atomic.Int64) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/api/word/check", func(w http.ResponseWriter, r *http.Request) {
		var req checkRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		json.NewEncoder(w).Encode(checkResponse{Exists: req.Word != "xyzzy", Word: req.Word})
	})

	mux.HandleFunc("/api/visualization/3d/progressive", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		var req batchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		const total = 3
		resp := BatchResponse{
			BaseWord:     req.BaseWord,
			BatchNumber:  req.BatchNumber,
			TotalBatches: total,
			WordCount:    total * 2,
			IsComplete:   req.BatchNumber >= total-1,
			Points: []WirePoint{
				{Word: req.BaseWord, IsBase: req.BatchNumber == 0},
				{Word: "w" + string(rune('a'+req.BatchNumber)), X: float64(req.BatchNumber)},
			},
		}
		json.NewEncoder(w).Encode(resp)
	})

	return httptest.NewServer(mux)
}

func drain(q *events.Queue) []events.Event {
	var all []events.Event
	for {
		batch := q.Consume()
		if batch == nil {
			return all
		}
		all = append(all, batch...)
	}
}

func TestCheckWord(t *testing.T) {
	var hits atomic.Int64
	srv := fakeProducer(t, &hits)
	defer srv.Close()

	c := New(srv.URL, "test-model", nil)

	word, exists, err := c.CheckWord(context.Background(), "king")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, "king", word)

	_, exists, err = c.CheckWord(context.Background(), "xyzzy")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFetchSequenceLoopsUntilComplete(t *testing.T) {
	var hits atomic.Int64
	srv := fakeProducer(t, &hits)
	defer srv.Close()

	c := New(srv.URL, "test-model", nil)
	q := events.NewQueue()

	c.FetchSequence(context.Background(), FetchSpec{Anchor: "king", BatchSize: 2}, 7, q)

	evs := drain(q)
	require.Len(t, evs, 4) // 3 batches + completion

	for i := 0; i < 3; i++ {
		payload, ok := evs[i].Payload.(*events.BatchArrivedPayload)
		require.True(t, ok, "event %d has wrong payload", i)
		assert.Equal(t, uint64(7), payload.Generation)
		assert.Equal(t, i, payload.BatchNum)
		assert.Equal(t, "king", payload.Anchor)
		assert.Len(t, payload.Points, 2)
		assert.Equal(t, i == 2, payload.IsComplete)
	}

	done, ok := evs[3].Payload.(*events.SequenceDonePayload)
	require.True(t, ok)
	assert.Equal(t, uint64(7), done.Generation)
	assert.EqualValues(t, 3, hits.Load())
}

func TestFetchSequenceFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"no model loaded"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	c := New(srv.URL, "test-model", nil)
	q := events.NewQueue()

	c.FetchSequence(context.Background(), FetchSpec{Anchor: "king"}, 1, q)

	evs := drain(q)
	require.Len(t, evs, 1)
	payload, ok := evs[0].Payload.(*events.SequenceFailedPayload)
	require.True(t, ok)
	assert.Error(t, payload.Err)
}

func TestWirePointConversion(t *testing.T) {
	w := WirePoint{Word: "king", X: 1, Y: 2, Z: 3, IsBase: true, IsNeighbor: true}
	p := w.Point()
	assert.Equal(t, "king", p.Word)
	assert.Equal(t, 1.0, p.Pos.X)
	assert.True(t, p.Role.IsAnchor)
	assert.True(t, p.Role.IsNeighbor)
	assert.False(t, p.Role.IsMixMarker)
}

func TestCacheRoundTrip(t *testing.T) {
	cache, err := OpenCache(filepath.Join(t.TempDir(), "layouts.db"))
	require.NoError(t, err)
	defer cache.Close()

	spec := FetchSpec{Anchor: "king", Neighbors: []string{"queen", "crown"}}
	batches := [][]WirePoint{
		{{Word: "king", IsBase: true}},
		{{Word: "queen", X: 1, IsNeighbor: true}},
	}
	require.NoError(t, cache.Put("m", spec, batches))

	// Neighbor order must not matter
	got, ok := cache.Get("m", FetchSpec{Anchor: "king", Neighbors: []string{"crown", "queen"}})
	require.True(t, ok)
	assert.Equal(t, batches, got)

	// Different neighbor set is a miss
	_, ok = cache.Get("m", FetchSpec{Anchor: "king", Neighbors: []string{"crown"}})
	assert.False(t, ok)

	require.NoError(t, cache.Invalidate("m", "king"))
	_, ok = cache.Get("m", spec)
	assert.False(t, ok)
}

func TestFetchSequenceUsesCache(t *testing.T) {
	var hits atomic.Int64
	srv := fakeProducer(t, &hits)
	defer srv.Close()

	cache, err := OpenCache(filepath.Join(t.TempDir(), "layouts.db"))
	require.NoError(t, err)
	defer cache.Close()

	c := New(srv.URL, "test-model", cache)
	q := events.NewQueue()
	spec := FetchSpec{Anchor: "king", BatchSize: 2}

	c.FetchSequence(context.Background(), spec, 1, q)
	require.EqualValues(t, 3, hits.Load())
	first := drain(q)

	c.FetchSequence(context.Background(), spec, 2, q)
	second := drain(q)

	assert.EqualValues(t, 3, hits.Load(), "cache hit still reached the network")
	require.Len(t, second, len(first))
	payload, ok := second[0].Payload.(*events.BatchArrivedPayload)
	require.True(t, ok)
	assert.Equal(t, uint64(2), payload.Generation)
	assert.Len(t, payload.Points, 2)
}
