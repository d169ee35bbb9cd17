// Package catalog loads the lecture catalog and turns it into session
// candidates for the ranking engine. This is the hand-off boundary between
// lecture search and the scoring core: the only shared shape is the session
// candidate record.
package catalog

import (
	"fmt"
	"os"
	"strings"
	"sync"

	json "github.com/goccy/go-json"

	"github.com/microlearn/sessionrank/internal/domain/model"
)

// defaultEmbeddingDim sizes the zero content embeddings attached to
// candidates when no real embedding service is wired in.
const defaultEmbeddingDim = 32

// Lecture is one catalog entry.
type Lecture struct {
	LectureID  string `json:"lecture_id"`
	Title      string `json:"title"`
	Faculty    string `json:"faculty"`
	Transcript string `json:"transcript"`
	Course     string `json:"-"`
}

// catalogFile mirrors the on-disk catalog document.
type catalogFile struct {
	Courses []struct {
		CourseName string    `json:"course_name"`
		Lectures   []Lecture `json:"lectures"`
	} `json:"courses"`
}

// Option applies a configuration option to the Store.
type Option func(*Store)

// WithEmbeddingDim sets the dimensionality of the placeholder content
// embeddings.
func WithEmbeddingDim(dim int) Option {
	return func(s *Store) {
		if dim > 0 {
			s.embeddingDim = dim
		}
	}
}

// Store holds the loaded lecture catalog. Reads are safe for concurrent use;
// Load replaces the whole catalog atomically.
type Store struct {
	mu           sync.RWMutex
	lectures     []Lecture
	embeddingDim int
}

// NewStore creates an empty catalog store.
func NewStore(opts ...Option) *Store {
	s := &Store{embeddingDim: defaultEmbeddingDim}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadFile reads and replaces the catalog from a JSON document of courses and
// their lectures.
func (s *Store) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLoadCatalog, err)
	}
	return s.Load(data)
}

// Load replaces the catalog from raw JSON bytes.
func (s *Store) Load(data []byte) error {
	var doc catalogFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrLoadCatalog, err)
	}

	var lectures []Lecture
	for _, course := range doc.Courses {
		for _, lec := range course.Lectures {
			lec.Course = course.CourseName
			if lec.Faculty == "" {
				lec.Faculty = "Unknown Faculty"
			}
			lectures = append(lectures, lec)
		}
	}

	s.mu.Lock()
	s.lectures = lectures
	s.mu.Unlock()
	return nil
}

// Lectures returns a copy of the catalog entries in document order.
func (s *Store) Lectures() []Lecture {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Lecture(nil), s.lectures...)
}

// Lecture looks up a single entry by id.
func (s *Store) Lecture(id string) (Lecture, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, lec := range s.lectures {
		if lec.LectureID == id {
			return lec, nil
		}
	}
	return Lecture{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Count returns the number of lectures in the catalog.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lectures)
}

// EmbeddingDim returns the dimensionality of the placeholder embeddings.
func (s *Store) EmbeddingDim() int {
	return s.embeddingDim
}

// Candidates builds one session candidate per lecture with query-overlap
// semantic signals injected, plus the session->lecture id mapping needed to
// translate ranking output back into lectures. Candidate order follows
// catalog order, which keeps downstream tie-breaking stable.
func (s *Store) Candidates(query string) ([]model.Session, map[string]string) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]model.Session, 0, len(s.lectures))
	toLecture := make(map[string]string, len(s.lectures))

	for i, lec := range s.lectures {
		sessionID := fmt.Sprintf("s%d", i)
		toLecture[sessionID] = lec.LectureID

		hits := float64(overlapScore(query, lec.Course+" "+lec.Title+" "+lec.Transcript))
		sessions = append(sessions, model.Session{
			SessionID:        sessionID,
			Title:            lec.Title,
			TeacherID:        lec.Faculty,
			PricePerMin:      0,
			SemanticMax:      hits,
			SemanticMean:     hits,
			SemanticHits:     hits,
			Difficulty:       "beginner",
			Category:         lec.Course,
			ContentEmbedding: make([]float32, s.embeddingDim),
		})
	}
	return sessions, toLecture
}

// Recommendation is one lecture surfaced to the student, with its extracted
// topic checklist.
type Recommendation struct {
	LectureID string   `json:"lecture_id"`
	Course    string   `json:"course"`
	Title     string   `json:"title"`
	Faculty   string   `json:"faculty"`
	Checklist []string `json:"checklist"`
}

// Recommendations resolves lecture ids into output records with checklists,
// preserving the given id order.
func (s *Store) Recommendations(ids []string) []Recommendation {
	recs := make([]Recommendation, 0, len(ids))
	for _, id := range ids {
		lec, err := s.Lecture(id)
		if err != nil {
			continue
		}
		recs = append(recs, Recommendation{
			LectureID: lec.LectureID,
			Course:    lec.Course,
			Title:     lec.Title,
			Faculty:   lec.Faculty,
			Checklist: Checklist(lec.Transcript, DefaultChecklistSize),
		})
	}
	return recs
}

// overlapScore counts distinct shared words (longer than 2 chars,
// case-insensitive) between the query and a lecture's text.
func overlapScore(query, text string) int {
	q := wordSet(query)
	t := wordSet(text)
	n := 0
	for w := range q {
		if t[w] {
			n++
		}
	}
	return n
}

func wordSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(text) {
		if len(w) > 2 {
			set[strings.ToLower(w)] = true
		}
	}
	return set
}
