package coach

import (
	"context"
	"iter"
	"sync"
)

// fakeTransport 按模式返回预设回复
type fakeTransport struct {
	mu       sync.Mutex
	replies  map[Mode]string
	chunks   []string
	err      error
	requests []Request
}

func (f *fakeTransport) Name() string { return "fake" }

func (f *fakeTransport) Generate(_ context.Context, req Request) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return "", f.err
	}
	return f.replies[req.Mode], nil
}

func (f *fakeTransport) Stream(ctx context.Context, req Request) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		f.mu.Lock()
		f.requests = append(f.requests, req)
		chunks, err := f.chunks, f.err
		f.mu.Unlock()

		for _, c := range chunks {
			if !yield(c, nil) {
				return
			}
		}
		if err != nil {
			yield("", err)
		}
	}
}
