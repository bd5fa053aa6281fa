package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/duet/internal/adapters/matchstore"
	"github.com/okian/duet/internal/domain/model"
	"github.com/okian/duet/internal/domain/questionnaire"
	"github.com/okian/duet/pkg/logger"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

type stubEmbedder struct {
	mu      sync.Mutex
	vectors map[string][]float64
	base    []float64
}

func (s *stubEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.vectors[text]; ok {
		return v, nil
	}
	return s.base, nil
}

func newTestService(t *testing.T, opts ...Option) *Service {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	base := []Option{
		WithMatchStore(matchstore.NewStore(client)),
		WithWorkerCount(2),
	}
	svc := New(append(base, opts...)...)
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("starting service: %v", err)
	}
	t.Cleanup(svc.Stop)
	return svc
}

func fullAnswers() model.AnswerSet {
	answers := model.AnswerSet{}
	for _, q := range questionnaire.Default().Questions() {
		switch q.Type {
		case questionnaire.MultipleChoice:
			answers[q.ID] = q.Options[0].Value
		case questionnaire.Slider:
			answers[q.ID] = q.Default
		}
	}
	return answers
}

func submit(t *testing.T, svc *Service, id, name string, answers model.AnswerSet) model.Profile {
	t.Helper()
	p, err := svc.SubmitProfile(context.Background(), model.Profile{
		ID:      id,
		Name:    name,
		Answers: answers,
	})
	if err != nil {
		t.Fatalf("submitting profile %s: %v", id, err)
	}
	return p
}

func TestSubmitProfile(t *testing.T) {
	Convey("Given a running service", t, func() {
		ctx := context.Background()
		svc := newTestService(t)

		Convey("a valid profile is stored and readable", func() {
			submit(t, svc, "u1", "Ada", fullAnswers())

			got, err := svc.Profile(ctx, "u1")
			So(err, ShouldBeNil)
			So(got.Name, ShouldEqual, "Ada")
		})

		Convey("a profile without an ID gets one generated", func() {
			p, err := svc.SubmitProfile(ctx, model.Profile{Name: "Ada", Answers: fullAnswers()})

			So(err, ShouldBeNil)
			So(p.ID, ShouldNotBeEmpty)
		})

		Convey("invalid answers are rejected", func() {
			_, err := svc.SubmitProfile(ctx, model.Profile{
				ID:      "u1",
				Answers: model.AnswerSet{"smoking": "sometimes"},
			})

			So(err, ShouldWrap, ErrInvalidAnswers)
		})

		Convey("unknown question ids are rejected", func() {
			_, err := svc.SubmitProfile(ctx, model.Profile{
				ID:      "u1",
				Answers: model.AnswerSet{"favorite_color": "blue"},
			})

			So(err, ShouldWrap, ErrInvalidAnswers)
		})
	})
}

func TestValidateAnswers(t *testing.T) {
	Convey("Given the answer validator", t, func() {
		ctx := context.Background()
		svc := newTestService(t)

		Convey("valid answers pass with no errors", func() {
			fieldErrors, warnings := svc.ValidateAnswers(ctx, fullAnswers())

			So(fieldErrors, ShouldBeEmpty)
			So(warnings, ShouldBeEmpty)
		})

		Convey("bad values and unknown ids are reported per question", func() {
			fieldErrors, _ := svc.ValidateAnswers(ctx, model.AnswerSet{
				"smoking":       "sometimes",
				"crowd_comfort": float64(99),
				"mystery":       "x",
			})

			So(fieldErrors, ShouldHaveLength, 3)
			So(fieldErrors["smoking"], ShouldEqual, "invalid answer value")
			So(fieldErrors["mystery"], ShouldEqual, "unknown question")
		})

		Convey("inconsistent answers raise warnings but no errors", func() {
			fieldErrors, warnings := svc.ValidateAnswers(ctx, model.AnswerSet{
				"social_energy": "introvert",
				"crowd_comfort": float64(5),
			})

			So(fieldErrors, ShouldBeEmpty)
			So(warnings, ShouldContain, "Social energy and crowd comfort seem inconsistent")
		})
	})
}

func TestQuestions(t *testing.T) {
	Convey("Given the questionnaire endpoint", t, func() {
		svc := newTestService(t)

		questions := svc.Questions(context.Background())

		So(questions, ShouldContainKey, "deal_breakers")
		So(questions["deal_breakers"], ShouldHaveLength, 2)

		total := 0
		for _, qs := range questions {
			total += len(qs)
		}
		So(total, ShouldEqual, questionnaire.Default().Count())
	})
}

func TestRecommendations(t *testing.T) {
	Convey("Given profiles in the store", t, func() {
		ctx := context.Background()
		svc := newTestService(t)

		me := fullAnswers()
		submit(t, svc, "me", "Me", me)

		alike := fullAnswers()
		submit(t, svc, "alike", "Alike", alike)

		different := fullAnswers()
		different["prom_style"] = "dancing"
		different["music_taste"] = "electronic"
		different["weekend_style"] = "relax"
		submit(t, svc, "different", "Different", different)

		Convey("candidates are ranked by compatibility", func() {
			recs, err := svc.Recommendations(ctx, "me", 10)

			So(err, ShouldBeNil)
			So(len(recs), ShouldBeGreaterThanOrEqualTo, 2)
			So(recs[0].CompatibilityPercentage, ShouldBeGreaterThanOrEqualTo, recs[len(recs)-1].CompatibilityPercentage)
			So(recs[0].Profile.ID, ShouldNotEqual, "me")
		})

		Convey("identical answers score 100 with a neutral boost", func() {
			recs, err := svc.Recommendations(ctx, "me", 10)

			So(err, ShouldBeNil)
			So(recs[0].CompatibilityPercentage, ShouldEqual, 100.0)
			So(recs[0].Details.Boost, ShouldEqual, 1.0)
		})

		Convey("a deal-breaker conflict removes the candidate", func() {
			conflicted := fullAnswers()
			conflicted["smoking"] = "okay"
			submit(t, svc, "strict", "Strict", map[string]any{
				"smoking": "deal_breaker",
			})
			submit(t, svc, "smokes", "Smokes", conflicted)

			recs, err := svc.Recommendations(ctx, "strict", 50)

			So(err, ShouldBeNil)
			for _, r := range recs {
				So(r.Profile.ID, ShouldNotEqual, "smokes")
			}
		})

		Convey("a candidate with no shared answers ranks last at zero", func() {
			submit(t, svc, "blank", "Blank", model.AnswerSet{})

			recs, err := svc.Recommendations(ctx, "me", 50)

			So(err, ShouldBeNil)
			ids := make([]string, 0, len(recs))
			for _, r := range recs {
				ids = append(ids, r.Profile.ID)
			}
			So(ids, ShouldContain, "blank")
			So(recs[len(recs)-1].Profile.ID, ShouldEqual, "blank")
			So(recs[len(recs)-1].CompatibilityPercentage, ShouldEqual, 0.0)
		})

		Convey("already-swiped candidates are excluded", func() {
			_, err := svc.Swipe(ctx, "me", "alike", model.ActionNo)
			So(err, ShouldBeNil)

			recs, err := svc.Recommendations(ctx, "me", 50)
			So(err, ShouldBeNil)
			for _, r := range recs {
				So(r.Profile.ID, ShouldNotEqual, "alike")
			}
		})

		Convey("the limit caps the result", func() {
			recs, err := svc.Recommendations(ctx, "me", 1)

			So(err, ShouldBeNil)
			So(recs, ShouldHaveLength, 1)
		})

		Convey("an unknown user reports an error", func() {
			_, err := svc.Recommendations(ctx, "ghost", 10)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestSwipe(t *testing.T) {
	Convey("Given two stored profiles", t, func() {
		ctx := context.Background()
		svc := newTestService(t)
		submit(t, svc, "a", "A", fullAnswers())
		submit(t, svc, "b", "B", fullAnswers())

		Convey("a one-sided yes records without a match", func() {
			res, err := svc.Swipe(ctx, "a", "b", model.ActionYes)

			So(err, ShouldBeNil)
			So(res.SwipeRecorded, ShouldBeTrue)
			So(res.MatchCreated, ShouldBeFalse)
		})

		Convey("a mutual yes creates a match with details", func() {
			_, err := svc.Swipe(ctx, "a", "b", model.ActionYes)
			So(err, ShouldBeNil)

			res, err := svc.Swipe(ctx, "b", "a", model.ActionYes)
			So(err, ShouldBeNil)
			So(res.MatchCreated, ShouldBeTrue)
			So(res.MatchID, ShouldNotBeEmpty)
			So(res.SuperMatch, ShouldBeFalse)
			So(res.CompatibilityScore, ShouldEqual, 100.0)
			So(res.Details, ShouldNotBeNil)
			So(res.Details.Confidence, ShouldEqual, 1.0)
		})

		Convey("a super on either side makes the match super", func() {
			_, err := svc.Swipe(ctx, "a", "b", model.ActionSuper)
			So(err, ShouldBeNil)

			res, err := svc.Swipe(ctx, "b", "a", model.ActionYes)
			So(err, ShouldBeNil)
			So(res.MatchCreated, ShouldBeTrue)
			So(res.SuperMatch, ShouldBeTrue)
		})

		Convey("a no never creates a match", func() {
			_, err := svc.Swipe(ctx, "a", "b", model.ActionYes)
			So(err, ShouldBeNil)

			res, err := svc.Swipe(ctx, "b", "a", model.ActionNo)
			So(err, ShouldBeNil)
			So(res.SwipeRecorded, ShouldBeTrue)
			So(res.MatchCreated, ShouldBeFalse)
		})

		Convey("repeating the same swipe is idempotent", func() {
			_, err := svc.Swipe(ctx, "a", "b", model.ActionYes)
			So(err, ShouldBeNil)
			_, err = svc.Swipe(ctx, "b", "a", model.ActionYes)
			So(err, ShouldBeNil)

			first, err := svc.Swipe(ctx, "b", "a", model.ActionYes)
			So(err, ShouldBeNil)
			second, err := svc.Swipe(ctx, "b", "a", model.ActionYes)
			So(err, ShouldBeNil)
			So(second.MatchID, ShouldEqual, first.MatchID)
		})

		Convey("an invalid action is rejected", func() {
			_, err := svc.Swipe(ctx, "a", "b", "maybe")
			So(err, ShouldEqual, ErrInvalidAction)
		})

		Convey("swiping on yourself is rejected", func() {
			_, err := svc.Swipe(ctx, "a", "a", model.ActionYes)
			So(err, ShouldEqual, ErrSelfSwipe)
		})

		Convey("swiping on a missing profile is rejected", func() {
			_, err := svc.Swipe(ctx, "a", "ghost", model.ActionYes)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestEmbeddingPipeline(t *testing.T) {
	Convey("Given a service with an embedding provider", t, func() {
		ctx := context.Background()
		embedder := &stubEmbedder{base: []float64{0.2, 0.4, 0.6}}
		svc := newTestService(t, WithEmbedder(embedder))

		submit(t, svc, "u1", "Ada", fullAnswers())

		Convey("the refresh pipeline eventually stores the vector", func() {
			deadline := time.After(2 * time.Second)
			for {
				stats, err := svc.Stats(ctx)
				So(err, ShouldBeNil)
				if stats.EmbeddedProfiles == 1 {
					break
				}
				select {
				case <-deadline:
					t.Fatal("embedding never stored")
				case <-time.After(10 * time.Millisecond):
				}
			}
		})
	})
}

func TestStatsAndHealth(t *testing.T) {
	Convey("Given a running service", t, func() {
		ctx := context.Background()
		svc := newTestService(t)

		Convey("stats reflect stored state", func() {
			submit(t, svc, "a", "A", fullAnswers())
			submit(t, svc, "b", "B", fullAnswers())
			_, err := svc.Swipe(ctx, "a", "b", model.ActionYes)
			So(err, ShouldBeNil)
			_, err = svc.Swipe(ctx, "b", "a", model.ActionYes)
			So(err, ShouldBeNil)

			stats, err := svc.Stats(ctx)
			So(err, ShouldBeNil)
			So(stats.TotalProfiles, ShouldEqual, 2)
			So(stats.TotalMatches, ShouldEqual, 1)
		})

		Convey("health passes while the match store is reachable", func() {
			So(svc.Healthy(ctx), ShouldBeNil)
		})
	})
}

func TestScore(t *testing.T) {
	Convey("Given two stored profiles", t, func() {
		ctx := context.Background()
		svc := newTestService(t)
		submit(t, svc, "a", "A", fullAnswers())
		submit(t, svc, "b", "B", fullAnswers())

		Convey("their pairwise score is computable on demand", func() {
			result, err := svc.Score(ctx, "a", "b")

			So(err, ShouldBeNil)
			So(result.OverallScore, ShouldEqual, 100.0)
			So(result.DealBreakers, ShouldBeEmpty)
		})

		Convey("a missing profile reports an error", func() {
			_, err := svc.Score(ctx, "a", "ghost")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestNotStarted(t *testing.T) {
	Convey("Given a service that was never started", t, func() {
		ctx := context.Background()
		svc := New()

		_, err := svc.SubmitProfile(ctx, model.Profile{ID: "u1"})
		So(err, ShouldEqual, ErrNotStarted)

		_, err = svc.Recommendations(ctx, "u1", 10)
		So(err, ShouldEqual, ErrNotStarted)

		_, err = svc.Swipe(ctx, "a", "b", model.ActionYes)
		So(err, ShouldEqual, ErrNotStarted)
	})
}

func TestStartWithoutMatchStore(t *testing.T) {
	Convey("Given a service configured with no match store", t, func() {
		svc := New()

		Convey("Start refuses to run", func() {
			err := svc.Start(context.Background())
			So(err, ShouldWrap, ErrNoMatchStore)
		})
	})
}
