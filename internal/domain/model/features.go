package model

// StudentFeatures is the fixed schema for student credibility scoring.
type StudentFeatures struct {
	CompletionRatio      float64 `json:"completion_ratio"`
	NormalizedTimeSpent  float64 `json:"normalized_time_spent"`
	InteractionCount     float64 `json:"interaction_count"`
	ActiveRatio          float64 `json:"active_ratio"`
	IdleRatio            float64 `json:"idle_ratio"`
	RatingGiven          float64 `json:"rating_given"`
	// TimeToReviewSec is a pointer because "absent" and 0 mean different
	// things to the credibility rule (absent defaults to 999 there).
	TimeToReviewSec      *float64 `json:"time_to_review_sec"`
	StudentAvgCompletion float64  `json:"student_avg_completion"`
	StudentExtremeRatio  float64  `json:"student_extreme_ratio"`
	SessionAvgCompletion float64  `json:"session_avg_completion"`
	SessionAvgRating     float64  `json:"session_avg_rating"`
}

// TeacherFeatures is the fixed schema for teacher quality and pricing-trust
// scoring.
type TeacherFeatures struct {
	MeanCompletion    float64 `json:"mean_completion"`
	DropoffSlope      float64 `json:"dropoff_slope"`
	CoverageRatio     float64 `json:"coverage_ratio"`
	RewindRate        float64 `json:"rewind_rate"`
	PauseRate         float64 `json:"pause_rate"`
	WeightedAvgRating float64 `json:"weighted_avg_rating"`
	RatingVariance    float64 `json:"rating_variance"`
	PricePercentile   float64 `json:"price_percentile"`
	PriceVsCompletion float64 `json:"price_vs_completion"`
}
