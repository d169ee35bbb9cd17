// Package feature maps raw entity records into fixed-order numeric vectors.
//
// Three schemas exist (session, student, teacher). Vector length and field
// order are part of the contract: every vector of the same entity type within
// one invocation has identical length and order, and the builders never
// reorder or pad implicitly.
package feature

import (
	"slices"
	"strings"

	"github.com/microlearn/sessionrank/internal/domain/model"
)

// Vector is a fixed-length ordered sequence of 32-bit floats.
type Vector []float32

// Dimensions per entity type.
const (
	SessionDims = 10
	StudentDims = 11
	TeacherDims = 9
)

// reviewCredibility is a constant placeholder, not a real signal yet.
const reviewCredibility = 1.0

// difficultyIDs maps difficulty strings to ordinal grades. Lookup is
// case-insensitive; unknown or missing difficulties grade as 0 (beginner).
var difficultyIDs = map[string]float64{
	"beginner":     0,
	"intermediate": 1,
	"advanced":     2,
}

// SessionVector builds the 10-dim session vector:
//
//	[semantic_max, semantic_mean, semantic_hits, avg_rating,
//	 review_credibility, difficulty_id, category_match,
//	 same_teacher_before, age_bucket, year_of_study]
//
// The structured tabular block wins when present; otherwise the five tabular
// dims are derived from the legacy raw fields.
func SessionVector(s model.Session, u model.UserProfile) Vector {
	avgRating, credibility, difficultyID, categoryMatch, sameTeacher := tabularDims(s, u)

	return Vector{
		float32(s.SemanticMax),
		float32(s.SemanticMean),
		float32(s.SemanticHits),
		float32(avgRating),
		float32(credibility),
		float32(difficultyID),
		float32(categoryMatch),
		float32(sameTeacher),
		float32(u.AgeBucket),
		float32(u.YearOfStudy),
	}
}

// NormalizedAvgRating returns the session's average rating scaled into [0,1],
// preferring the structured tabular source when present. An empty review list
// yields 0.
func NormalizedAvgRating(s model.Session) float64 {
	if s.Tabular != nil {
		return s.Tabular.AvgRating
	}
	if len(s.Reviews) == 0 {
		return 0
	}
	var sum float64
	for _, r := range s.Reviews {
		sum += r.Rating
	}
	return sum / float64(len(s.Reviews)) / 5.0
}

func tabularDims(s model.Session, u model.UserProfile) (avgRating, credibility, difficultyID, categoryMatch, sameTeacher float64) {
	if tf := s.Tabular; tf != nil {
		credibility = reviewCredibility
		if tf.ReviewCredibility != nil {
			credibility = *tf.ReviewCredibility
		}
		return tf.AvgRating, credibility, tf.DifficultyID, tf.CategoryMatch, tf.SameTeacherBefore
	}

	avgRating = NormalizedAvgRating(s)
	credibility = reviewCredibility
	difficultyID = difficultyIDs[strings.ToLower(s.Difficulty)]
	if slices.Contains(u.PreferredCategories, s.Category) {
		categoryMatch = 1
	}
	if slices.Contains(u.PreviousTeachers, s.TeacherID) {
		sameTeacher = 1
	}
	return avgRating, credibility, difficultyID, categoryMatch, sameTeacher
}

// StudentVector builds the 11-dim student vector:
//
//	[completion_ratio, normalized_time_spent, interaction_count,
//	 active_ratio, idle_ratio, rating_given, time_to_review_sec,
//	 student_avg_completion, student_extreme_ratio,
//	 session_avg_completion, session_avg_rating]
//
// Absent fields default to 0, including time_to_review_sec. The credibility
// label rule treats an absent time_to_review_sec differently; see the label
// package.
func StudentVector(f model.StudentFeatures) Vector {
	var timeToReview float64
	if f.TimeToReviewSec != nil {
		timeToReview = *f.TimeToReviewSec
	}
	return Vector{
		float32(f.CompletionRatio),
		float32(f.NormalizedTimeSpent),
		float32(f.InteractionCount),
		float32(f.ActiveRatio),
		float32(f.IdleRatio),
		float32(f.RatingGiven),
		float32(timeToReview),
		float32(f.StudentAvgCompletion),
		float32(f.StudentExtremeRatio),
		float32(f.SessionAvgCompletion),
		float32(f.SessionAvgRating),
	}
}

// TeacherVector builds the 9-dim teacher vector:
//
//	[mean_completion, dropoff_slope, coverage_ratio, rewind_rate,
//	 pause_rate, weighted_avg_rating, rating_variance, price_percentile,
//	 price_vs_completion]
func TeacherVector(f model.TeacherFeatures) Vector {
	return Vector{
		float32(f.MeanCompletion),
		float32(f.DropoffSlope),
		float32(f.CoverageRatio),
		float32(f.RewindRate),
		float32(f.PauseRate),
		float32(f.WeightedAvgRating),
		float32(f.RatingVariance),
		float32(f.PricePercentile),
		float32(f.PriceVsCompletion),
	}
}
