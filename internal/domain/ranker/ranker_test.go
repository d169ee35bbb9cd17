package ranker

import (
	"context"
	"errors"
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/microlearn/sessionrank/internal/domain/feature"
	"github.com/microlearn/sessionrank/internal/domain/sample"
)

// separableGroup builds a ranking group where higher labels sit on clearly
// stronger feature vectors. Each archetype appears several times so the
// trees have enough samples per leaf to split on.
func separableGroup() *sample.Set {
	archetypes := []feature.Vector{
		{0.95, 0.9, 5, 0.9, 0.9, 2, 0, 0, 1, 1},
		{0.80, 0.8, 4, 0.8, 0.7, 2, 0, 0, 1, 2},
		{0.50, 0.5, 3, 0.6, 0.5, 2, 0, 0, 2, 3},
		{0.20, 0.2, 2, 0.3, 0.2, 1, 0, 1, 3, 4},
		{0.05, 0.1, 1, 0.1, 0.1, 1, 1, 1, 3, 5},
	}
	grades := []float64{4, 3, 2, 1, 0}

	const copies = 5
	var (
		vectors []feature.Vector
		labels  []float64
	)
	for i, vec := range archetypes {
		for j := 0; j < copies; j++ {
			vectors = append(vectors, vec)
			labels = append(labels, grades[i])
		}
	}
	return sample.Group(vectors, labels)
}

func TestNew(t *testing.T) {
	Convey("Given the backend factory", t, func() {
		Convey("When resolving each selectable name", func() {
			for _, name := range []string{LambdaMART, Pairwise, Fusion} {
				b, err := New(name)
				So(err, ShouldBeNil)
				So(b, ShouldNotBeNil)
				So(b.Name(), ShouldEqual, name)
			}
		})

		Convey("When resolving an unknown name", func() {
			b, err := New("xgboost")

			Convey("Then it should fail with the sentinel", func() {
				So(b, ShouldBeNil)
				So(errors.Is(err, ErrUnknownBackend), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, `"xgboost"`)
			})
		})

		Convey("When resolving the empty name", func() {
			_, err := New("")
			So(errors.Is(err, ErrUnknownBackend), ShouldBeTrue)
		})

		Convey("When the regression strategy is requested by name", func() {
			Convey("Then it should not be selectable", func() {
				_, err := New("regression")
				So(errors.Is(err, ErrUnknownBackend), ShouldBeTrue)
			})
		})
	})
}

func TestEmptySet(t *testing.T) {
	Convey("Given an empty training set", t, func() {
		ctx := context.Background()
		empty := sample.Group(nil, nil)

		Convey("When each backend fits it", func() {
			backends := []Backend{
				NewLambdaMART(),
				NewPairwise(),
				NewFusion(),
				NewRegression(),
			}
			for _, b := range backends {
				scores, err := b.FitAndScore(ctx, empty)
				So(scores, ShouldBeNil)
				So(errors.Is(err, ErrEmptySet), ShouldBeTrue)
			}
		})
	})
}

func TestLambdaMART(t *testing.T) {
	Convey("Given the lambdamart backend", t, func() {
		ctx := context.Background()
		b := NewLambdaMART()

		Convey("When fitting a separable group", func() {
			set := separableGroup()
			scores, err := b.FitAndScore(ctx, set)

			Convey("Then it should score every sample", func() {
				So(err, ShouldBeNil)
				So(len(scores), ShouldEqual, set.Len())
				for _, s := range scores {
					So(math.IsNaN(s), ShouldBeFalse)
					So(math.IsInf(s, 0), ShouldBeFalse)
				}
			})

			Convey("Then the top-graded candidate should outrank the bottom one", func() {
				So(err, ShouldBeNil)
				So(scores[0], ShouldBeGreaterThan, scores[len(scores)-1])
			})
		})

		Convey("When fitting the same group twice", func() {
			first, err := b.FitAndScore(ctx, separableGroup())
			So(err, ShouldBeNil)
			second, err := b.FitAndScore(ctx, separableGroup())
			So(err, ShouldBeNil)

			Convey("Then the scores should be identical", func() {
				So(second, ShouldResemble, first)
			})
		})

		Convey("When every label is identical", func() {
			vectors := []feature.Vector{
				{0.9, 0.6, 3, 0.8, 0.7, 2, 0, 0, 2, 3},
				{0.1, 0.2, 1, 0.3, 0.2, 1, 1, 1, 3, 5},
				{0.5, 0.5, 2, 0.5, 0.5, 2, 0, 0, 1, 1},
			}
			labels := []float64{2, 2, 2}
			scores, err := b.FitAndScore(ctx, sample.Group(vectors, labels))

			Convey("Then it should return a constant model, not an error", func() {
				So(err, ShouldBeNil)
				So(len(scores), ShouldEqual, 3)
				So(scores[1], ShouldEqual, scores[0])
				So(scores[2], ShouldEqual, scores[0])
			})
		})

		Convey("When the group has a single candidate", func() {
			set := sample.Group(
				[]feature.Vector{{0.9, 0.6, 3, 0.8, 0.7, 2, 0, 0, 2, 3}},
				[]float64{4},
			)
			scores, err := b.FitAndScore(ctx, set)

			Convey("Then it should still produce one finite score", func() {
				So(err, ShouldBeNil)
				So(len(scores), ShouldEqual, 1)
				So(math.IsNaN(scores[0]), ShouldBeFalse)
			})
		})
	})
}

func TestPairwise(t *testing.T) {
	Convey("Given the pairwise backend", t, func() {
		ctx := context.Background()
		b := NewPairwise()

		Convey("When fitting a separable group", func() {
			set := separableGroup()
			scores, err := b.FitAndScore(ctx, set)

			So(err, ShouldBeNil)
			So(len(scores), ShouldEqual, set.Len())
			So(scores[0], ShouldBeGreaterThan, scores[len(scores)-1])
		})

		Convey("When fitting the same group twice", func() {
			first, err := b.FitAndScore(ctx, separableGroup())
			So(err, ShouldBeNil)
			second, err := b.FitAndScore(ctx, separableGroup())
			So(err, ShouldBeNil)

			Convey("Then the fixed subsampling seed should make runs identical", func() {
				So(second, ShouldResemble, first)
			})
		})

		Convey("When every label is identical", func() {
			set := sample.Group(
				[]feature.Vector{
					{0.9, 0.6, 3, 0.8, 0.7, 2, 0, 0, 2, 3},
					{0.1, 0.2, 1, 0.3, 0.2, 1, 1, 1, 3, 5},
				},
				[]float64{3, 3},
			)
			scores, err := b.FitAndScore(ctx, set)

			So(err, ShouldBeNil)
			So(scores[0], ShouldEqual, scores[1])
		})
	})
}

func TestRegression(t *testing.T) {
	Convey("Given the regression strategy", t, func() {
		ctx := context.Background()
		b := NewRegression()

		So(b.Name(), ShouldEqual, "regression")

		Convey("When fitting a replicated single observation", func() {
			vec := feature.Vector{0.5, 0.5, 30, 0, 0, 0, 0, 0, 0, 0, 1}
			set := sample.Replicate(vec, 1.0, sample.StudentCopies)
			scores, err := b.FitAndScore(ctx, set)

			Convey("Then every score should recover the label exactly", func() {
				So(err, ShouldBeNil)
				So(len(scores), ShouldEqual, sample.StudentCopies)
				for _, s := range scores {
					So(s, ShouldAlmostEqual, 1.0, 1e-9)
				}
			})
		})

		Convey("When the replicated label is zero", func() {
			vec := feature.Vector{0.3, 0.2, 120, 0, 0, 0, 0, 0, 0, 0, 1}
			set := sample.Replicate(vec, 0.0, sample.StudentCopies)
			scores, err := b.FitAndScore(ctx, set)

			So(err, ShouldBeNil)
			for _, s := range scores {
				So(s, ShouldAlmostEqual, 0.0, 1e-9)
			}
		})

		Convey("When labels vary across samples", func() {
			high := feature.Vector{0.9, 0.8, 0.7}
			low := feature.Vector{0.1, 0.2, 0.3}
			var (
				vectors []feature.Vector
				labels  []float64
			)
			for j := 0; j < 6; j++ {
				vectors = append(vectors, high)
				labels = append(labels, 1)
			}
			for j := 0; j < 6; j++ {
				vectors = append(vectors, low)
				labels = append(labels, 0)
			}
			scores, err := b.FitAndScore(ctx, sample.Group(vectors, labels))

			Convey("Then distinct vectors should separate toward their labels", func() {
				So(err, ShouldBeNil)
				So(scores[0], ShouldBeGreaterThan, scores[len(scores)-1])
			})
		})
	})
}
