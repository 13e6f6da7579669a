// Package embedding provides cached, batched access to the embedding model.
package embedding

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-optimizer/internal/llm"
)

const (
	defaultBatchSize   = 64
	defaultConcurrency = 4
	defaultMaxRetries  = 3
	defaultRetryBase   = time.Second
	defaultCallTimeout = 30 * time.Second
)

// Client wraps an llm.Embedder with an exact-text cache, request batching,
// and retry with exponential backoff. Safe for concurrent use.
type Client struct {
	embedder    llm.Embedder
	batchSize   int
	concurrency int
	maxRetries  int
	retryBase   time.Duration
	callTimeout time.Duration

	mu    sync.Mutex
	cache map[string][]float32
	hits  int
}

// Option configures a Client.
type Option func(*Client)

// WithBatchSize sets the maximum number of texts per upstream call.
func WithBatchSize(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.batchSize = n
		}
	}
}

// WithConcurrency sets the number of upstream calls issued in parallel.
func WithConcurrency(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithMaxRetries sets how many times a failed upstream call is retried.
func WithMaxRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.maxRetries = n
		}
	}
}

// WithRetryBase sets the base delay for exponential backoff between retries.
func WithRetryBase(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.retryBase = d
		}
	}
}

// WithCallTimeout sets the per-attempt timeout for upstream calls.
func WithCallTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.callTimeout = d
		}
	}
}

// NewClient creates an embedding client backed by the given embedder.
func NewClient(embedder llm.Embedder, opts ...Option) *Client {
	c := &Client{
		embedder:    embedder,
		batchSize:   defaultBatchSize,
		concurrency: defaultConcurrency,
		maxRetries:  defaultMaxRetries,
		retryBase:   defaultRetryBase,
		callTimeout: defaultCallTimeout,
		cache:       make(map[string][]float32),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Embed returns one vector per input text, in input order. Texts already in
// the cache are served without an upstream call; repeated texts within a
// single call are embedded once.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	results := make([][]float32, len(texts))

	// Collect the distinct texts that are not yet cached.
	var missing []string
	missingIdx := make(map[string][]int)
	c.mu.Lock()
	for i, text := range texts {
		if vec, ok := c.cache[text]; ok {
			results[i] = vec
			c.hits++
			continue
		}
		if _, seen := missingIdx[text]; !seen {
			missing = append(missing, text)
		}
		missingIdx[text] = append(missingIdx[text], i)
	}
	c.mu.Unlock()

	if len(missing) == 0 {
		return results, nil
	}

	vectors := make([][]float32, len(missing))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for start := 0; start < len(missing); start += c.batchSize {
		end := start + c.batchSize
		if end > len(missing) {
			end = len(missing)
		}
		start, end := start, end
		g.Go(func() error {
			batch, err := c.embedWithRetry(gctx, missing[start:end])
			if err != nil {
				return err
			}
			copy(vectors[start:], batch)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	for i, text := range missing {
		if len(vectors[i]) == 0 {
			c.mu.Unlock()
			return nil, &Error{Message: fmt.Sprintf("empty vector for text %d", i)}
		}
		c.cache[text] = vectors[i]
		for _, idx := range missingIdx[text] {
			results[idx] = vectors[i]
		}
	}
	c.mu.Unlock()

	return results, nil
}

// EmbedOne embeds a single text.
func (c *Client) EmbedOne(ctx context.Context, text string) ([]float32, error) {
	vecs, err := c.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// CacheHits returns the number of cache hits served so far.
func (c *Client) CacheHits() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits
}

func (c *Client) embedWithRetry(ctx context.Context, batch []string) ([][]float32, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := c.retryBase * time.Duration(1<<(attempt-1))
			select {
			case <-ctx.Done():
				return nil, &Error{Message: "canceled while retrying", Cause: ctx.Err()}
			case <-time.After(delay):
			}
		}

		callCtx, cancel := context.WithTimeout(ctx, c.callTimeout)
		vecs, err := c.embedder.EmbedBatch(callCtx, batch)
		cancel()
		if err == nil {
			if len(vecs) != len(batch) {
				return nil, &Error{Message: fmt.Sprintf("got %d vectors for %d texts", len(vecs), len(batch))}
			}
			return vecs, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return nil, &Error{Message: fmt.Sprintf("after %d attempts", c.maxRetries+1), Cause: lastErr}
}
