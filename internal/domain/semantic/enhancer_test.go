package semantic

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/duet/internal/domain/model"
	"github.com/okian/duet/pkg/logger"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

type fakeProvider struct {
	vectors map[string][]float64
	err     error
	delay   time.Duration
}

func (f *fakeProvider) Embed(ctx context.Context, text string) ([]float64, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.vectors[text], nil
}

func TestCosineSimilarity(t *testing.T) {
	Convey("Given cosine similarity", t, func() {
		Convey("identical vectors score 1", func() {
			So(CosineSimilarity([]float64{1, 2, 3}, []float64{1, 2, 3}), ShouldAlmostEqual, 1.0, 1e-9)
		})

		Convey("opposite vectors score -1", func() {
			So(CosineSimilarity([]float64{1, 0}, []float64{-1, 0}), ShouldAlmostEqual, -1.0, 1e-9)
		})

		Convey("orthogonal vectors score 0", func() {
			So(CosineSimilarity([]float64{1, 0}, []float64{0, 1}), ShouldAlmostEqual, 0.0, 1e-9)
		})

		Convey("a zero vector scores 0", func() {
			So(CosineSimilarity([]float64{0, 0}, []float64{1, 1}), ShouldEqual, 0.0)
		})

		Convey("mismatched lengths score 0", func() {
			So(CosineSimilarity([]float64{1, 2}, []float64{1, 2, 3}), ShouldEqual, 0.0)
		})
	})
}

func TestEnhancerBoost(t *testing.T) {
	Convey("Given a semantic enhancer", t, func() {
		ctx := context.Background()

		Convey("identical texts yield the maximum boost", func() {
			p := &fakeProvider{vectors: map[string][]float64{
				"a": {1, 2, 3},
				"b": {1, 2, 3},
			}}
			e := NewEnhancer(p)

			So(e.Boost(ctx, "a", "b"), ShouldAlmostEqual, MaxBoost, 1e-9)
		})

		Convey("opposite texts yield the minimum boost", func() {
			p := &fakeProvider{vectors: map[string][]float64{
				"a": {1, 0},
				"b": {-1, 0},
			}}
			e := NewEnhancer(p)

			So(e.Boost(ctx, "a", "b"), ShouldAlmostEqual, MinBoost, 1e-9)
		})

		Convey("orthogonal texts yield the neutral boost", func() {
			p := &fakeProvider{vectors: map[string][]float64{
				"a": {1, 0},
				"b": {0, 1},
			}}
			e := NewEnhancer(p)

			So(e.Boost(ctx, "a", "b"), ShouldAlmostEqual, NeutralBoost, 1e-9)
		})

		Convey("the boost always stays inside its bounds", func() {
			p := &fakeProvider{vectors: map[string][]float64{
				"a": {3, 1, 4},
				"b": {2, 7, 1},
			}}
			e := NewEnhancer(p)

			boost := e.Boost(ctx, "a", "b")
			So(boost, ShouldBeGreaterThanOrEqualTo, MinBoost)
			So(boost, ShouldBeLessThanOrEqualTo, MaxBoost)
		})

		Convey("a provider error degrades to the neutral boost", func() {
			p := &fakeProvider{err: errors.New("model unavailable")}
			e := NewEnhancer(p)

			So(e.Boost(ctx, "a", "b"), ShouldEqual, NeutralBoost)
		})

		Convey("a provider timeout degrades to the neutral boost", func() {
			p := &fakeProvider{
				vectors: map[string][]float64{"a": {1}, "b": {1}},
				delay:   200 * time.Millisecond,
			}
			e := NewEnhancer(p, WithTimeout(10*time.Millisecond))

			So(e.Boost(ctx, "a", "b"), ShouldEqual, NeutralBoost)
		})

		Convey("an empty embedding degrades to the neutral boost", func() {
			p := &fakeProvider{vectors: map[string][]float64{
				"a": {},
				"b": {1, 2},
			}}
			e := NewEnhancer(p)

			So(e.Boost(ctx, "a", "b"), ShouldEqual, NeutralBoost)
		})

		Convey("mismatched embedding lengths degrade to the neutral boost", func() {
			p := &fakeProvider{vectors: map[string][]float64{
				"a": {1, 2},
				"b": {1, 2, 3},
			}}
			e := NewEnhancer(p)

			So(e.Boost(ctx, "a", "b"), ShouldEqual, NeutralBoost)
		})
	})
}

func TestDetectInconsistencies(t *testing.T) {
	Convey("Given answer inconsistency detection", t, func() {
		Convey("an introvert comfortable in big crowds is flagged", func() {
			notes := DetectInconsistencies(model.AnswerSet{
				"social_energy": "introvert",
				"crowd_comfort": float64(5),
			})

			So(notes, ShouldContain, "Social energy and crowd comfort seem inconsistent")
		})

		Convey("high energy with a chill prom style is flagged", func() {
			notes := DetectInconsistencies(model.AnswerSet{
				"energy_level": 4,
				"prom_style":   "chill",
			})

			So(notes, ShouldContain, "Energy level and prom style preferences differ")
		})

		Convey("consistent answers produce no notes", func() {
			notes := DetectInconsistencies(model.AnswerSet{
				"social_energy": "introvert",
				"crowd_comfort": float64(2),
				"energy_level":  float64(2),
				"prom_style":    "chill",
			})

			So(notes, ShouldBeEmpty)
		})

		Convey("an empty answer set produces no notes", func() {
			So(DetectInconsistencies(model.AnswerSet{}), ShouldBeEmpty)
		})
	})
}

func TestClamp(t *testing.T) {
	Convey("Given the boost clamp", t, func() {
		So(clamp(0, 1, -0.5), ShouldEqual, 0.0)
		So(clamp(0, 1, 1.5), ShouldEqual, 1.0)
		So(clamp(0, 1, 0.25), ShouldEqual, 0.25)
		So(math.IsNaN(clamp(0, 1, 0.5)), ShouldBeFalse)
	})
}
