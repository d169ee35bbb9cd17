// Package model contains domain models passed between layers.
package model

// Review is a single rating left on a session by a past student.
type Review struct {
	Rating float64 `json:"rating"`
}

// TabularFeatures is the structured per-session feature block produced by an
// upstream feature pipeline. When present on a Session it takes precedence
// over derivation from the raw legacy fields.
type TabularFeatures struct {
	AvgRating         float64  `json:"avg_rating"`
	ReviewCredibility *float64 `json:"review_credibility"` // nil means the 1.0 placeholder
	DifficultyID      float64  `json:"difficulty_id"`
	CategoryMatch     float64  `json:"category_match"`
	SameTeacherBefore float64  `json:"same_teacher_before"`
}

// Session is one ranking candidate in the shape handed over by lecture search.
type Session struct {
	SessionID   string  `json:"session_id"`
	Title       string  `json:"title"`
	TeacherID   string  `json:"teacher_id"`
	PricePerMin float64 `json:"price_per_min"`

	// Pass-through semantic signals supplied by the retrieval stage.
	SemanticMax  float64 `json:"semantic_max"`
	SemanticMean float64 `json:"semantic_mean"`
	SemanticHits float64 `json:"semantic_hits"`

	// Tabular is the structured feature block; when nil the legacy raw
	// fields below are used instead.
	Tabular *TabularFeatures `json:"tabular_features,omitempty"`

	// Legacy raw fields.
	Reviews    []Review `json:"reviews,omitempty"`
	Difficulty string   `json:"difficulty,omitempty"`
	Category   string   `json:"category,omitempty"`

	// ContentEmbedding is consumed by the fusion backend only.
	ContentEmbedding []float32 `json:"content_embedding,omitempty"`
}

// UserProfile describes the requesting student.
type UserProfile struct {
	UserID              string   `json:"user_id"`
	AgeBucket           float64  `json:"age_bucket"`
	YearOfStudy         float64  `json:"year_of_study"`
	PreferredCategories []string `json:"preferred_categories"`
	PreviousTeachers    []string `json:"previous_teachers"`
}

// RankingRequest groups one candidate set with its requester context.
// All sessions of one request form exactly one ranking group.
type RankingRequest struct {
	Query          string      `json:"query"`
	QueryEmbedding []float32   `json:"query_embedding,omitempty"`
	User           UserProfile `json:"user"`
	Sessions       []Session   `json:"sessions"`
}

// RankedSession is one row of the assembled ranking output.
type RankedSession struct {
	SessionID   string  `json:"session_id"`
	Title       string  `json:"title"`
	TeacherID   string  `json:"teacher_id"`
	PricePerMin float64 `json:"price_per_min"`
	RankScore   float64 `json:"rank_score"`
}

// RankingResponse wraps the sorted results with the originating query and
// user. Immutable once produced.
type RankingResponse struct {
	Query   string          `json:"query"`
	UserID  string          `json:"user_id"`
	Results []RankedSession `json:"results"`
}
