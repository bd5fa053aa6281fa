package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/duet/internal/adapters/mq/queue"
	"github.com/okian/duet/internal/adapters/repository"
	"github.com/okian/duet/pkg/logger"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

type fakeEmbedder struct {
	mu      sync.Mutex
	vectors map[string][]float64
	err     error
	calls   int
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.vectors[text], nil
}

type fakeSink struct {
	mu     sync.Mutex
	stored map[string][]float64
	err    error
}

func newFakeSink() *fakeSink {
	return &fakeSink{stored: make(map[string][]float64)}
}

func (f *fakeSink) SetEmbedding(ctx context.Context, profileID string, vec []float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.stored[profileID] = vec
	return nil
}

func (f *fakeSink) get(profileID string) ([]float64, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.stored[profileID]
	return v, ok
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		if cond() {
			return
		}
		select {
		case <-deadline:
			t.Fatal("condition not met in time")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestProcessEvent(t *testing.T) {
	Convey("Given a refresh worker", t, func() {
		ctx := context.Background()
		q := queue.NewInMemoryQueue()
		defer q.Close()

		Convey("a refresh event produces a stored embedding", func() {
			embedder := &fakeEmbedder{vectors: map[string][]float64{"hello": {1, 2, 3}}}
			sink := newFakeSink()
			w := NewRefreshWorker(q, embedder, sink)

			err := w.processEvent(ctx, Event{EventID: "e1", ProfileID: "u1", Text: "hello"})

			So(err, ShouldBeNil)
			vec, ok := sink.get("u1")
			So(ok, ShouldBeTrue)
			So(vec, ShouldResemble, []float64{1, 2, 3})
		})

		Convey("an embedder failure surfaces as an error", func() {
			embedder := &fakeEmbedder{err: errors.New("model down")}
			sink := newFakeSink()
			w := NewRefreshWorker(q, embedder, sink)

			err := w.processEvent(ctx, Event{EventID: "e1", ProfileID: "u1", Text: "hello"})

			So(err, ShouldNotBeNil)
			_, ok := sink.get("u1")
			So(ok, ShouldBeFalse)
		})

		Convey("a refresh for a removed profile is dropped quietly", func() {
			embedder := &fakeEmbedder{vectors: map[string][]float64{"hello": {1}}}
			sink := newFakeSink()
			sink.err = repository.ErrNotFound
			w := NewRefreshWorker(q, embedder, sink)

			err := w.processEvent(ctx, Event{EventID: "e1", ProfileID: "ghost", Text: "hello"})

			So(err, ShouldBeNil)
		})

		Convey("a sink failure surfaces as an error", func() {
			embedder := &fakeEmbedder{vectors: map[string][]float64{"hello": {1}}}
			sink := newFakeSink()
			sink.err = errors.New("store unavailable")
			w := NewRefreshWorker(q, embedder, sink)

			err := w.processEvent(ctx, Event{EventID: "e1", ProfileID: "u1", Text: "hello"})

			So(err, ShouldNotBeNil)
		})
	})
}

func TestWorkerRun(t *testing.T) {
	Convey("Given a running worker", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		q := queue.NewInMemoryQueue()
		embedder := &fakeEmbedder{vectors: map[string][]float64{
			"text-a": {1, 0},
			"text-b": {0, 1},
		}}
		sink := newFakeSink()
		w := NewRefreshWorker(q, embedder, sink)
		go w.Run(ctx)

		Convey("queued events are processed in the background", func() {
			So(q.Enqueue(ctx, Event{EventID: "e1", ProfileID: "u1", Text: "text-a"}), ShouldBeTrue)
			So(q.Enqueue(ctx, Event{EventID: "e2", ProfileID: "u2", Text: "text-b"}), ShouldBeTrue)

			waitFor(t, func() bool {
				_, a := sink.get("u1")
				_, b := sink.get("u2")
				return a && b
			})

			vec, _ := sink.get("u1")
			So(vec, ShouldResemble, []float64{1, 0})
		})

		Convey("shutdown stops the worker", func() {
			sctx, scancel := context.WithTimeout(context.Background(), time.Second)
			defer scancel()

			So(w.Shutdown(sctx), ShouldBeNil)
		})
	})
}

func TestPool(t *testing.T) {
	Convey("Given a worker pool", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		q := queue.NewInMemoryQueue()
		embedder := &fakeEmbedder{vectors: map[string][]float64{"txt": {0.5}}}
		sink := newFakeSink()

		pool := NewPool(4, q, embedder, sink)
		pool.Start(ctx)

		Convey("events are distributed across workers", func() {
			for i := 0; i < 20; i++ {
				So(q.Enqueue(ctx, Event{
					EventID:   "e-" + string(rune('a'+i)),
					ProfileID: "u-" + string(rune('a'+i)),
					Text:      "txt",
				}), ShouldBeTrue)
			}

			waitFor(t, func() bool {
				sink.mu.Lock()
				defer sink.mu.Unlock()
				return len(sink.stored) == 20
			})
		})

		Convey("shutdown drains the queue before stopping", func() {
			So(q.Enqueue(ctx, Event{EventID: "last", ProfileID: "u-last", Text: "txt"}), ShouldBeTrue)
			So(pool.Shutdown(ctx), ShouldBeNil)

			_, ok := sink.get("u-last")
			So(ok, ShouldBeTrue)
		})
	})
}
