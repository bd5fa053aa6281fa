package repository

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/duet/internal/domain/model"
)

func TestUpsertAndGet(t *testing.T) {
	Convey("Given a profile store", t, func() {
		ctx := context.Background()
		s := NewStore()

		Convey("an upserted profile can be read back", func() {
			p := model.Profile{ID: "u1", Name: "Ada", Answers: model.AnswerSet{"prom_style": "chill"}}
			So(s.Upsert(ctx, p), ShouldBeNil)

			got, err := s.Get(ctx, "u1")
			So(err, ShouldBeNil)
			So(got.Name, ShouldEqual, "Ada")
			So(got.Answers["prom_style"], ShouldEqual, "chill")
			So(got.UpdatedAt.IsZero(), ShouldBeFalse)
		})

		Convey("an empty ID is rejected", func() {
			So(s.Upsert(ctx, model.Profile{}), ShouldEqual, ErrEmptyID)
		})

		Convey("an unknown ID reports not found", func() {
			_, err := s.Get(ctx, "missing")
			So(err, ShouldEqual, ErrNotFound)
		})

		Convey("the stored copy is isolated from the caller's maps", func() {
			answers := model.AnswerSet{"prom_style": "chill"}
			So(s.Upsert(ctx, model.Profile{ID: "u1", Answers: answers}), ShouldBeNil)
			answers["prom_style"] = "party"

			got, err := s.Get(ctx, "u1")
			So(err, ShouldBeNil)
			So(got.Answers["prom_style"], ShouldEqual, "chill")
		})

		Convey("re-upserting without an embedding keeps the stored vector", func() {
			So(s.Upsert(ctx, model.Profile{ID: "u1", Name: "Ada"}), ShouldBeNil)
			So(s.SetEmbedding(ctx, "u1", []float64{1, 2}), ShouldBeNil)
			So(s.Upsert(ctx, model.Profile{ID: "u1", Name: "Ada Lovelace"}), ShouldBeNil)

			got, err := s.Get(ctx, "u1")
			So(err, ShouldBeNil)
			So(got.Name, ShouldEqual, "Ada Lovelace")
			So(got.Embedding, ShouldResemble, []float64{1, 2})
		})
	})
}

func TestSetEmbedding(t *testing.T) {
	Convey("Given a profile store", t, func() {
		ctx := context.Background()
		s := NewStore()
		So(s.Upsert(ctx, model.Profile{ID: "u1"}), ShouldBeNil)

		Convey("an embedding is attached to an existing profile", func() {
			So(s.SetEmbedding(ctx, "u1", []float64{0.5, 0.5}), ShouldBeNil)

			got, _ := s.Get(ctx, "u1")
			So(got.Embedding, ShouldResemble, []float64{0.5, 0.5})
		})

		Convey("an unknown profile reports not found", func() {
			So(s.SetEmbedding(ctx, "ghost", []float64{1}), ShouldEqual, ErrNotFound)
		})
	})
}

func TestSimilar(t *testing.T) {
	Convey("Given a store with embedded profiles", t, func() {
		ctx := context.Background()
		s := NewStore()

		seed := func(id string, vec []float64) {
			So(s.Upsert(ctx, model.Profile{ID: id, Name: id}), ShouldBeNil)
			if vec != nil {
				So(s.SetEmbedding(ctx, id, vec), ShouldBeNil)
			}
		}

		seed("me", []float64{1, 0})
		seed("close", []float64{0.9, 0.1})
		seed("far", []float64{-1, 0})
		seed("mid", []float64{0, 1})

		Convey("candidates are ranked most similar first", func() {
			got, err := s.Similar(ctx, "me", 0, nil)
			So(err, ShouldBeNil)
			So(got, ShouldHaveLength, 3)
			So(got[0].ID, ShouldEqual, "close")
			So(got[1].ID, ShouldEqual, "mid")
			So(got[2].ID, ShouldEqual, "far")
		})

		Convey("the requester is never a candidate", func() {
			got, err := s.Similar(ctx, "me", 0, nil)
			So(err, ShouldBeNil)
			for _, c := range got {
				So(c.ID, ShouldNotEqual, "me")
			}
		})

		Convey("excluded IDs are skipped", func() {
			got, err := s.Similar(ctx, "me", 0, map[string]struct{}{"close": {}})
			So(err, ShouldBeNil)
			So(got, ShouldHaveLength, 2)
			So(got[0].ID, ShouldEqual, "mid")
		})

		Convey("the limit caps the result", func() {
			got, err := s.Similar(ctx, "me", 1, nil)
			So(err, ShouldBeNil)
			So(got, ShouldHaveLength, 1)
			So(got[0].ID, ShouldEqual, "close")
		})

		Convey("a candidate without an embedding scores zero", func() {
			seed("blank", nil)

			got, err := s.Similar(ctx, "me", 0, nil)
			So(err, ShouldBeNil)
			for _, c := range got {
				if c.ID == "blank" {
					So(c.Similarity, ShouldEqual, 0.0)
				}
			}
		})

		Convey("a requester without an embedding still gets candidates", func() {
			seed("noembed", nil)

			got, err := s.Similar(ctx, "noembed", 0, nil)
			So(err, ShouldBeNil)
			So(got, ShouldHaveLength, 4)
			for _, c := range got {
				So(c.Similarity, ShouldEqual, 0.0)
			}
		})

		Convey("an unknown requester reports not found", func() {
			_, err := s.Similar(ctx, "ghost", 0, nil)
			So(err, ShouldEqual, ErrNotFound)
		})
	})
}

func TestCounts(t *testing.T) {
	Convey("Given a profile store", t, func() {
		ctx := context.Background()
		s := NewStore()

		So(s.Count(ctx), ShouldEqual, 0)
		So(s.Upsert(ctx, model.Profile{ID: "u1"}), ShouldBeNil)
		So(s.Upsert(ctx, model.Profile{ID: "u2"}), ShouldBeNil)
		So(s.Count(ctx), ShouldEqual, 2)

		So(s.EmbeddedCount(ctx), ShouldEqual, 0)
		So(s.SetEmbedding(ctx, "u1", []float64{1}), ShouldBeNil)
		So(s.EmbeddedCount(ctx), ShouldEqual, 1)
	})
}
