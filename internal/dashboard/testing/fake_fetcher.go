package testing

import (
	"context"
	"sync"
)

// FetchResult is one canned response.
type FetchResult struct {
	Data map[string]any
	Err  error
}

// FakeFetcher returns queued results in order, repeating the last one once
// the queue is exhausted.
type FakeFetcher struct {
	mu      sync.Mutex
	results []FetchResult
	last    *FetchResult
	Calls   []string
}

func NewFakeFetcher(results ...FetchResult) *FakeFetcher {
	return &FakeFetcher{results: results}
}

// Push queues another result.
func (f *FakeFetcher) Push(r FetchResult) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results = append(f.results, r)
}

func (f *FakeFetcher) Fetch(ctx context.Context, url string) (map[string]any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, url)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(f.results) > 0 {
		r := f.results[0]
		f.results = f.results[1:]
		f.last = &r
	}
	if f.last == nil {
		return map[string]any{}, nil
	}
	return f.last.Data, f.last.Err
}

// CallCount returns the number of Fetch calls.
func (f *FakeFetcher) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Calls)
}
