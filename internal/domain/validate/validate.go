// Package validate scores single entities (student credibility and teacher
// quality/pricing-trust) through the same bootstrapped pipeline the session
// ranker uses: build the vector, derive the heuristic label, duplicate the
// lone observation into a trainable set, fit an ephemeral model, predict on a
// representative sample, post-process.
package validate

import (
	"context"
	"math"

	"github.com/microlearn/sessionrank/internal/domain/feature"
	"github.com/microlearn/sessionrank/internal/domain/label"
	"github.com/microlearn/sessionrank/internal/domain/model"
	"github.com/microlearn/sessionrank/internal/domain/ranker"
	"github.com/microlearn/sessionrank/internal/domain/sample"
)

// Student scores round to 4 decimal digits.
const scorePrecision = 1e4

// TeacherScores bundles the two bounded teacher outputs.
type TeacherScores struct {
	Quality      float64
	PricingTrust float64
}

// ScoreStudent returns the student credibility score, rounded to 4 decimals
// and otherwise unclamped.
func ScoreStudent(ctx context.Context, f model.StudentFeatures) (float64, error) {
	vec := feature.StudentVector(f)
	lbl := label.StudentCredibility(f)

	set := sample.Replicate(vec, lbl, sample.StudentCopies)
	scores, err := ranker.NewRegression().FitAndScore(ctx, set)
	if err != nil {
		return 0, err
	}
	return math.Round(scores[0]*scorePrecision) / scorePrecision, nil
}

// ScoreTeacher returns the teacher quality and pricing-trust scores, each
// clamped into [0,1]. Two parallel training sets are synthesized, one per
// label.
func ScoreTeacher(ctx context.Context, f model.TeacherFeatures) (TeacherScores, error) {
	vec := feature.TeacherVector(f)

	quality, err := fitOne(ctx, vec, label.TeacherQuality(f))
	if err != nil {
		return TeacherScores{}, err
	}
	trust, err := fitOne(ctx, vec, label.TeacherPricingTrust(f))
	if err != nil {
		return TeacherScores{}, err
	}
	return TeacherScores{
		Quality:      clamp01(quality),
		PricingTrust: clamp01(trust),
	}, nil
}

func fitOne(ctx context.Context, vec feature.Vector, lbl float64) (float64, error) {
	set := sample.Replicate(vec, lbl, sample.TeacherCopies)
	scores, err := ranker.NewRegression().FitAndScore(ctx, set)
	if err != nil {
		return 0, err
	}
	return scores[0], nil
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
