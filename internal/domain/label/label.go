// Package label derives bootstrap supervisory labels from raw entity records.
//
// No real ground-truth labels exist in this system; every trainable label is
// produced by a deterministic heuristic rule, one rule set per entity type.
// Identical input yields identical output on every invocation.
package label

import (
	"math"

	"github.com/microlearn/sessionrank/internal/domain/feature"
	"github.com/microlearn/sessionrank/internal/domain/model"
)

// Session relevance grades span 0..4 (graded relevance for the rankers).
const maxGrade = 4

// Student credibility thresholds.
const (
	minCompletionRatio     = 0.4
	minNormalizedTimeSpent = 0.4
	minTimeToReviewSec     = 20
	// absentTimeToReview stands in when time_to_review_sec is missing. It
	// trivially satisfies the threshold; preserved as-is pending product
	// clarification.
	absentTimeToReview = 999
)

// Teacher label weights and pricing penalty.
const (
	completionWeight    = 0.4
	ratingWeight        = 0.3
	coverageWeight      = 0.3
	pricingPenalty      = 0.2
	priceRatioThreshold = 1.3
)

// SessionGrade converts a session's normalized average rating into an ordinal
// relevance grade in {0..4}. The structured tabular source is preferred when
// present.
func SessionGrade(s model.Session) int {
	r := feature.NormalizedAvgRating(s)
	return int(math.Round(r * maxGrade))
}

// StudentCredibility returns the binary credibility label: 1 iff the student
// completed enough, spent enough time, and did not review suspiciously fast.
// An absent time_to_review_sec defaults to 999 and therefore passes its
// threshold.
func StudentCredibility(f model.StudentFeatures) float64 {
	timeToReview := float64(absentTimeToReview)
	if f.TimeToReviewSec != nil {
		timeToReview = *f.TimeToReviewSec
	}
	if f.CompletionRatio > minCompletionRatio &&
		f.NormalizedTimeSpent > minNormalizedTimeSpent &&
		timeToReview > minTimeToReviewSec {
		return 1
	}
	return 0
}

// TeacherQuality returns the continuous quality label, conceptually in [0,1].
func TeacherQuality(f model.TeacherFeatures) float64 {
	return completionWeight*f.MeanCompletion +
		ratingWeight*(f.WeightedAvgRating/5.0) +
		coverageWeight*f.CoverageRatio
}

// TeacherPricingTrust returns the quality label minus a pricing penalty that
// applies only when price_vs_completion strictly exceeds 1.3; exactly 1.3
// incurs no penalty. The result is floored at 0.
func TeacherPricingTrust(f model.TeacherFeatures) float64 {
	trust := TeacherQuality(f)
	if f.PriceVsCompletion > priceRatioThreshold {
		trust -= pricingPenalty
	}
	return math.Max(0, trust)
}
