// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/microlearn/sessionrank/internal/adapters/catalog"
	"github.com/microlearn/sessionrank/internal/adapters/genai"
	"github.com/microlearn/sessionrank/internal/domain/feature"
	"github.com/microlearn/sessionrank/internal/domain/label"
	"github.com/microlearn/sessionrank/internal/domain/model"
	"github.com/microlearn/sessionrank/internal/domain/rank"
	"github.com/microlearn/sessionrank/internal/domain/ranker"
	"github.com/microlearn/sessionrank/internal/domain/sample"
	"github.com/microlearn/sessionrank/internal/domain/validate"
	"github.com/microlearn/sessionrank/pkg/logger"
	"github.com/microlearn/sessionrank/pkg/metrics"
)

// Recommendation engines selectable per request.
const (
	EngineRanker = "ranker"
	EngineGenAI  = "genai"
)

const defaultTopK = 3

// Service wires the scoring pipeline for the HTTP API. It holds only
// configuration: every request builds, fits, and discards its own model, so
// concurrent requests are naturally isolated.
type Service struct {
	backend      string
	fusionEpochs int
	fusionSeed   int64
	topK         int

	catalog     *catalog.Store
	recommender *genai.Client

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithBackend selects the ranking model backend by name.
func WithBackend(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.backend = name
		}
	}
}

// WithFusionEpochs overrides the fusion backend's training budget.
func WithFusionEpochs(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.fusionEpochs = n
		}
	}
}

// WithFusionSeed pins the fusion backend's weight initialization.
func WithFusionSeed(seed int64) Option {
	return func(s *Service) {
		s.fusionSeed = seed
	}
}

// WithCatalog attaches the lecture catalog used by recommendation requests.
func WithCatalog(store *catalog.Store) Option {
	return func(s *Service) {
		s.catalog = store
	}
}

// WithRecommender attaches the generative recommendation peer.
func WithRecommender(client *genai.Client) Option {
	return func(s *Service) {
		s.recommender = client
	}
}

// WithTopK sets how many lectures a recommendation returns by default.
func WithTopK(k int) Option {
	return func(s *Service) {
		if k > 0 {
			s.topK = k
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		backend: ranker.LambdaMART,
		topK:    defaultTopK,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	return s
}

// Backend reports the configured ranking backend name.
func (s *Service) Backend() string { return s.backend }

// RankSessions scores one request's candidate group with an ephemeral model
// and returns the assembled, score-sorted response.
func (s *Service) RankSessions(ctx context.Context, req model.RankingRequest) (model.RankingResponse, error) {
	if len(req.Sessions) == 0 {
		return model.RankingResponse{}, fmt.Errorf("%w: no sessions", ErrInvalidInput)
	}
	for i, sess := range req.Sessions {
		if sess.SessionID == "" {
			return model.RankingResponse{}, fmt.Errorf("%w: session %d has no session_id", ErrInvalidInput, i)
		}
	}

	vectors := make([]feature.Vector, len(req.Sessions))
	labels := make([]float64, len(req.Sessions))
	for i, sess := range req.Sessions {
		vectors[i] = feature.SessionVector(sess, req.User)
		labels[i] = float64(label.SessionGrade(sess))
	}
	set := sample.Group(vectors, labels)
	if s.backend == ranker.Fusion {
		content := make([][]float32, len(req.Sessions))
		for i, sess := range req.Sessions {
			content[i] = sess.ContentEmbedding
		}
		set.WithEmbeddings(req.QueryEmbedding, content)
	}

	backend, err := ranker.New(s.backend,
		ranker.WithEpochs(s.fusionEpochs),
		ranker.WithSeed(s.fusionSeed),
	)
	if err != nil {
		return model.RankingResponse{}, err
	}

	start := time.Now()
	scores, err := backend.FitAndScore(ctx, set)
	metrics.ObserveFitDuration(backend.Name(), float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordScoringError()
		return model.RankingResponse{}, err
	}
	metrics.RecordRankRequest(len(req.Sessions))

	s.logger.Debug(ctx, "ranked candidate group",
		logger.String("backend", backend.Name()),
		logger.Int("candidates", len(req.Sessions)),
		logger.String("user_id", req.User.UserID),
	)
	return rank.Assemble(req, scores), nil
}

// ScoreStudent returns the student credibility score.
func (s *Service) ScoreStudent(ctx context.Context, f model.StudentFeatures) (float64, error) {
	score, err := validate.ScoreStudent(ctx, f)
	if err != nil {
		metrics.RecordScoringError()
		return 0, err
	}
	metrics.ObserveValidationScore("student", score)
	return score, nil
}

// ScoreTeacher returns the teacher quality and pricing-trust scores.
func (s *Service) ScoreTeacher(ctx context.Context, f model.TeacherFeatures) (validate.TeacherScores, error) {
	scores, err := validate.ScoreTeacher(ctx, f)
	if err != nil {
		metrics.RecordScoringError()
		return validate.TeacherScores{}, err
	}
	metrics.ObserveValidationScore("teacher_quality", scores.Quality)
	metrics.ObserveValidationScore("teacher_pricing_trust", scores.PricingTrust)
	return scores, nil
}

// Recommend surfaces topK catalog lectures for a free-text query, either by
// ranking catalog candidates through the scoring core (EngineRanker) or by
// delegating to the generative peer (EngineGenAI).
func (s *Service) Recommend(ctx context.Context, query string, topK int, engine string) ([]catalog.Recommendation, error) {
	if s.catalog == nil || s.catalog.Count() == 0 {
		return nil, ErrNoCatalog
	}
	if topK <= 0 {
		topK = s.topK
	}

	var ids []string
	switch engine {
	case "", EngineRanker:
		ranked, err := s.rankCatalog(ctx, query)
		if err != nil {
			return nil, err
		}
		ids = ranked
	case EngineGenAI:
		if s.recommender == nil {
			return nil, ErrRecommenderDisabled
		}
		picked, err := s.recommender.RecommendLectures(ctx, query, s.catalog.Lectures(), topK)
		if err != nil {
			return nil, err
		}
		ids = picked
	default:
		return nil, fmt.Errorf("%w: unknown engine %q", ErrInvalidInput, engine)
	}

	if len(ids) > topK {
		ids = ids[:topK]
	}
	return s.catalog.Recommendations(ids), nil
}

// rankCatalog runs the catalog's candidates through the ranking pipeline and
// returns lecture ids in score order.
func (s *Service) rankCatalog(ctx context.Context, query string) ([]string, error) {
	sessions, toLecture := s.catalog.Candidates(query)
	req := model.RankingRequest{
		Query:          query,
		QueryEmbedding: make([]float32, s.catalog.EmbeddingDim()),
		User:           model.UserProfile{UserID: "catalog"},
		Sessions:       sessions,
	}

	resp, err := s.RankSessions(ctx, req)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(resp.Results))
	for _, r := range resp.Results {
		if lectureID, ok := toLecture[r.SessionID]; ok {
			ids = append(ids, lectureID)
		}
	}
	return ids, nil
}
