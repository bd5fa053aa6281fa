package queue

import (
	"context"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestEnqueueDequeue(t *testing.T) {
	Convey("Given an in-memory queue", t, func() {
		ctx := context.Background()

		Convey("an enqueued event is delivered to the consumer", func() {
			q := NewInMemoryQueue()
			defer q.Close()

			So(q.Enqueue(ctx, Event{EventID: "e1", ProfileID: "u1"}), ShouldBeTrue)

			select {
			case e := <-q.Dequeue(ctx):
				So(e.EventID, ShouldEqual, "e1")
				So(e.ProfileID, ShouldEqual, "u1")
			case <-time.After(time.Second):
				t.Fatal("timed out waiting for event")
			}
		})

		Convey("Len reflects buffered events", func() {
			q := NewInMemoryQueue()
			defer q.Close()

			So(q.Len(ctx), ShouldEqual, 0)
			q.Enqueue(ctx, Event{EventID: "e1"})
			q.Enqueue(ctx, Event{EventID: "e2"})
			So(q.Len(ctx), ShouldEqual, 2)
		})

		Convey("enqueue fails once the capacity is reached", func() {
			q := NewInMemoryQueue(WithCapacity(2))
			defer q.Close()

			So(q.Enqueue(ctx, Event{EventID: "e1"}), ShouldBeTrue)
			So(q.Enqueue(ctx, Event{EventID: "e2"}), ShouldBeTrue)
			So(q.Enqueue(ctx, Event{EventID: "e3"}), ShouldBeFalse)
		})
	})
}

func TestClose(t *testing.T) {
	Convey("Given a closed queue", t, func() {
		ctx := context.Background()
		q := NewInMemoryQueue()

		So(q.IsClosed(), ShouldBeFalse)
		So(q.Close(), ShouldBeNil)
		So(q.IsClosed(), ShouldBeTrue)

		Convey("enqueue is rejected", func() {
			So(q.Enqueue(ctx, Event{EventID: "e1"}), ShouldBeFalse)
		})

		Convey("closing again is a no-op", func() {
			So(q.Close(), ShouldBeNil)
		})

		Convey("the dequeue channel drains and closes", func() {
			q2 := NewInMemoryQueue()
			q2.Enqueue(ctx, Event{EventID: "e1"})
			So(q2.Close(), ShouldBeNil)

			ch := q2.Dequeue(ctx)
			e, ok := <-ch
			So(ok, ShouldBeTrue)
			So(e.EventID, ShouldEqual, "e1")

			_, ok = <-ch
			So(ok, ShouldBeFalse)
		})
	})
}
