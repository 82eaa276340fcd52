package service

import (
	"context"
	"iter"
	"sync"
	"testing"
	"time"

	"BoostMe/internal/coach"
	"BoostMe/internal/model"
	"BoostMe/internal/repository"
	"BoostMe/internal/store"
)

// scriptedTransport 按模式返回固定回复，chat 模式按 chunks 分片
type scriptedTransport struct {
	mu      sync.Mutex
	replies map[coach.Mode]string
	chunks  []string
	err     error
	calls   []coach.Request
	// gate 不为 nil 时 chat 流在第一个片段后等待
	gate chan struct{}
}

func (f *scriptedTransport) Name() string { return "scripted" }

func (f *scriptedTransport) Generate(_ context.Context, req coach.Request) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	if f.err != nil {
		return "", f.err
	}
	return f.replies[req.Mode], nil
}

func (f *scriptedTransport) Stream(_ context.Context, req coach.Request) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		f.mu.Lock()
		f.calls = append(f.calls, req)
		chunks, err, gate := f.chunks, f.err, f.gate
		f.mu.Unlock()

		for i, c := range chunks {
			if !yield(c, nil) {
				return
			}
			if i == 0 && gate != nil {
				<-gate
			}
		}
		if err != nil {
			yield("", err)
		}
	}
}

type countingRestarter struct {
	mu sync.Mutex
	n  int
}

func (c *countingRestarter) Restart(context.Context) {
	c.mu.Lock()
	c.n++
	c.mu.Unlock()
}

func (c *countingRestarter) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

type env struct {
	st        *store.Memory
	repo      *repository.Repository
	transport *scriptedTransport
	restarts  *countingRestarter
	now       time.Time
	deps      Deps
}

func newEnv(t *testing.T) *env {
	t.Helper()
	e := &env{
		st:        store.NewMemory(),
		transport: &scriptedTransport{replies: map[coach.Mode]string{}},
		restarts:  &countingRestarter{},
		now:       time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC),
	}
	e.repo = repository.New(e.st)
	e.deps = Deps{
		Repo:      e.repo,
		Coach:     coach.New(e.transport, nil),
		Reminders: e.restarts,
		Location:  time.UTC,
		Now:       func() time.Time { return e.now },
	}
	return e
}

func (e *env) seedLogs(t *testing.T, recs ...model.CheckInRecord) {
	t.Helper()
	for i := len(recs) - 1; i >= 0; i-- {
		if _, err := e.repo.PrependLog(context.Background(), recs[i]); err != nil {
			t.Fatal(err)
		}
	}
}
