// Package reqgen generates synthetic ranking requests for the batch tools
// and for exercising the scoring pipeline without a live lecture search.
package reqgen

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"

	"github.com/microlearn/sessionrank/internal/domain/model"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
)

// Session archetypes. Each candidate is drawn from one of these so a
// generated group has a meaningful score spread instead of uniform noise.
const (
	caseStrongMatch = iota
	caseGoodMatch
	caseWeakMatch
	caseOffTopic
	archetypeCount
)

var difficulties = []string{"beginner", "intermediate", "advanced"}

var categories = []string{
	"mathematics", "physics", "chemistry", "biology",
	"computer science", "economics", "history", "philosophy",
}

// Config controls the shape of a generated request.
type Config struct {
	numSessions     int
	embeddingDim    int
	structuredShare float64
}

// Option applies a configuration option to the generator Config.
type Option func(*Config)

// WithSessions sets how many candidate sessions the request carries.
func WithSessions(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.numSessions = n
		}
	}
}

// WithEmbeddingDim attaches random query/content embeddings of the given
// dimension; zero generates none.
func WithEmbeddingDim(d int) Option {
	return func(c *Config) {
		if d >= 0 {
			c.embeddingDim = d
		}
	}
}

// WithStructuredShare sets the fraction of sessions carrying a structured
// tabular block instead of raw review fields.
func WithStructuredShare(f float64) Option {
	return func(c *Config) {
		if f >= 0 && f <= 1 {
			c.structuredShare = f
		}
	}
}

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

func pick(ss []string) string {
	return ss[int(getRandomFloat()*float64(len(ss)))%len(ss)]
}

// Generate builds one synthetic ranking request.
func Generate(ctx context.Context, opts ...Option) (model.RankingRequest, error) {
	cfg := &Config{
		numSessions:     8,
		embeddingDim:    0,
		structuredShare: 0.5,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if err := ctx.Err(); err != nil {
		return model.RankingRequest{}, fmt.Errorf("request generation cancelled: %w", err)
	}

	preferred := pick(categories)
	knownTeacher := uuid.New().String()

	user := model.UserProfile{
		UserID:              uuid.New().String(),
		AgeBucket:           float64(1 + int(getRandomFloat()*4)),
		YearOfStudy:         float64(1 + int(getRandomFloat()*5)),
		PreferredCategories: []string{preferred},
		PreviousTeachers:    []string{knownTeacher},
	}

	sessions := make([]model.Session, cfg.numSessions)
	for i := range sessions {
		sessions[i] = generateSession(i, preferred, knownTeacher, cfg)
	}

	req := model.RankingRequest{
		Query:    "introduction to " + preferred,
		User:     user,
		Sessions: sessions,
	}
	if cfg.embeddingDim > 0 {
		req.QueryEmbedding = randomEmbedding(cfg.embeddingDim)
	}
	return req, nil
}

// generateSession builds one candidate from an archetype.
func generateSession(i int, preferred, knownTeacher string, cfg *Config) model.Session {
	archetype := i % archetypeCount

	var semMax, avgRating float64
	category := preferred
	teacher := uuid.New().String()
	switch archetype {
	case caseStrongMatch:
		semMax = 0.8 + 0.2*getRandomFloat()
		avgRating = 4.0 + getRandomFloat()
		teacher = knownTeacher
	case caseGoodMatch:
		semMax = 0.6 + 0.2*getRandomFloat()
		avgRating = 3.5 + getRandomFloat()
	case caseWeakMatch:
		semMax = 0.3 + 0.3*getRandomFloat()
		avgRating = 2.5 + getRandomFloat()
		category = pick(categories)
	default: // caseOffTopic
		semMax = 0.3 * getRandomFloat()
		avgRating = 1.0 + 2.0*getRandomFloat()
		category = pick(categories)
	}

	sess := model.Session{
		SessionID:    uuid.New().String(),
		Title:        fmt.Sprintf("%s session %d", category, i+1),
		TeacherID:    teacher,
		PricePerMin:  0.5 + 2.5*getRandomFloat(),
		SemanticMax:  semMax,
		SemanticMean: semMax * (0.6 + 0.3*getRandomFloat()),
		SemanticHits: float64(int(semMax * 10)),
	}

	if getRandomFloat() < cfg.structuredShare {
		cred := 0.5 + 0.5*getRandomFloat()
		sess.Tabular = &model.TabularFeatures{
			AvgRating:         avgRating,
			ReviewCredibility: &cred,
			DifficultyID:      float64(int(getRandomFloat() * 3)),
			CategoryMatch:     boolToFloat(category == preferred),
			SameTeacherBefore: boolToFloat(teacher == knownTeacher),
		}
	} else {
		reviews := make([]model.Review, 2+int(getRandomFloat()*4))
		for r := range reviews {
			// Jitter around the archetype's rating, clamped to [1,5].
			rating := avgRating + getRandomFloat() - 0.5
			if rating < 1 {
				rating = 1
			}
			if rating > 5 {
				rating = 5
			}
			reviews[r] = model.Review{Rating: rating}
		}
		sess.Reviews = reviews
		sess.Difficulty = pick(difficulties)
		sess.Category = category
	}

	if cfg.embeddingDim > 0 {
		sess.ContentEmbedding = randomEmbedding(cfg.embeddingDim)
	}
	return sess
}

func randomEmbedding(dim int) []float32 {
	v := make([]float32, dim)
	for i := range v {
		v[i] = float32(getRandomFloat()*2 - 1)
	}
	return v
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
