package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lixenwraith/word-orbit/core"
	"github.com/lixenwraith/word-orbit/events"
)

// WirePoint is one record of a coordinate batch as the producer serializes it
type WirePoint struct {
	Word       string  `json:"word"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	IsBase     bool    `json:"is_base"`
	IsMix      bool    `json:"is_mix"`
	IsNeighbor bool    `json:"is_neighbor"`
}

// Point converts the wire record to the core representation
func (w WirePoint) Point() core.Point {
	return core.Point{
		Word: w.Word,
		Pos:  r3.Vec{X: w.X, Y: w.Y, Z: w.Z},
		Role: core.Role{
			IsAnchor:    w.IsBase,
			IsMixMarker: w.IsMix,
			IsNeighbor:  w.IsNeighbor,
		},
	}
}

type batchRequest struct {
	BaseWord      string    `json:"base_word"`
	MixedVector   []float64 `json:"mixed_vector,omitempty"`
	BatchSize     int       `json:"batch_size"`
	BatchNumber   int       `json:"batch_number"`
	NeighborWords []string  `json:"neighbor_words,omitempty"`
}

// BatchResponse is one progressive layout batch from the producer
type BatchResponse struct {
	Points       []WirePoint `json:"points"`
	WordCount    int         `json:"word_count"`
	BaseWord     string      `json:"base_word"`
	BatchNumber  int         `json:"batch_number"`
	TotalBatches int         `json:"total_batches"`
	IsComplete   bool        `json:"is_complete"`
}

type checkRequest struct {
	Word string `json:"word"`
}

type checkResponse struct {
	Exists bool   `json:"exists"`
	Word   string `json:"word"`
}

// FetchSpec describes one layout sequence request
type FetchSpec struct {
	Anchor      string
	MixedVector []float64
	BatchSize   int
	Neighbors   []string
}

// Client talks to the coordinate-producing service
// The producer recomputes an independent layout per anchor, so responses are
// only meaningful within one sequence; the caller tags each sequence with a
// generation and drops events from superseded generations
type Client struct {
	baseURL string
	model   string
	http    *http.Client
	cache   *Cache // nil = caching disabled
}

func New(baseURL, model string, cache *Cache) *Client {
	return &Client{
		baseURL: baseURL,
		model:   model,
		http:    &http.Client{Timeout: 60 * time.Second},
		cache:   cache,
	}
}

// CheckWord resolves word against the producer vocabulary
// The producer may answer with a normalized variant of the word
func (c *Client) CheckWord(ctx context.Context, word string) (string, bool, error) {
	var resp checkResponse
	if err := c.post(ctx, "/api/word/check", checkRequest{Word: word}, &resp); err != nil {
		return "", false, err
	}
	return resp.Word, resp.Exists, nil
}

// FetchBatch requests one batch of a layout sequence
func (c *Client) FetchBatch(ctx context.Context, spec FetchSpec, batchNumber int) (*BatchResponse, error) {
	req := batchRequest{
		BaseWord:      spec.Anchor,
		MixedVector:   spec.MixedVector,
		BatchSize:     spec.BatchSize,
		BatchNumber:   batchNumber,
		NeighborWords: spec.Neighbors,
	}
	var resp BatchResponse
	if err := c.post(ctx, "/api/visualization/3d/progressive", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// FetchSequence pulls batches until is_complete, pushing each onto the queue
// tagged with gen. Runs on its own goroutine; the frame loop only ever sees
// queue events. A cache hit replays the stored sequence without any HTTP
func (c *Client) FetchSequence(ctx context.Context, spec FetchSpec, gen uint64, q *events.Queue) {
	if c.cache != nil {
		if batches, ok := c.cache.Get(c.model, spec); ok {
			for i, b := range batches {
				q.Push(batchEvent(gen, spec.Anchor, i, b, i == len(batches)-1))
			}
			q.Push(events.Event{Type: events.EventSequenceComplete, Payload: &events.SequenceDonePayload{
				Generation: gen,
				Anchor:     spec.Anchor,
			}})
			return
		}
	}

	var stored [][]WirePoint
	for batchNum := 0; ; batchNum++ {
		resp, err := c.FetchBatch(ctx, spec, batchNum)
		if err != nil {
			q.Push(events.Event{Type: events.EventSequenceFailed, Payload: &events.SequenceFailedPayload{
				Generation: gen,
				Anchor:     spec.Anchor,
				Err:        err,
			}})
			return
		}

		stored = append(stored, resp.Points)
		q.Push(batchEvent(gen, spec.Anchor, batchNum, resp.Points, resp.IsComplete))

		if resp.IsComplete {
			break
		}
	}

	if c.cache != nil {
		// Best effort; a failed store never fails the sequence
		_ = c.cache.Put(c.model, spec, stored)
	}
	q.Push(events.Event{Type: events.EventSequenceComplete, Payload: &events.SequenceDonePayload{
		Generation: gen,
		Anchor:     spec.Anchor,
	}})
}

func batchEvent(gen uint64, anchor string, num int, wire []WirePoint, complete bool) events.Event {
	pts := make([]core.Point, 0, len(wire))
	for _, w := range wire {
		pts = append(pts, w.Point())
	}
	return events.Event{Type: events.EventBatchArrived, Payload: &events.BatchArrivedPayload{
		Generation: gen,
		Anchor:     anchor,
		BatchNum:   num,
		Points:     pts,
		IsComplete: complete,
	}}
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("post %s: status %d: %s", path, resp.StatusCode, bytes.TrimSpace(data))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
