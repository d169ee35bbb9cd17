// Package sample assembles trainable sample sets for the ephemeral model
// backends.
//
// Ranking requests already carry multiple real candidates forming one group,
// so they need no synthesis. Validation scoring starts from a single real
// observation and must duplicate it to satisfy the trainer's minimum sample
// count.
package sample

import (
	"github.com/microlearn/sessionrank/internal/domain/feature"
)

// Replication counts for validation training sets.
const (
	StudentCopies = 10
	TeacherCopies = 12
)

// Set is a batch of (vector, label) pairs. GroupSize marks how many samples
// belong to the single ranking group of one request; cross-request mixing is
// forbidden, so there is never more than one group.
type Set struct {
	Vectors   []feature.Vector
	Labels    []float64
	GroupSize int

	// Embeddings are carried for the fusion backend only. Query is shared
	// across the group; Content is per sample.
	Query   []float32
	Content [][]float32
}

// Len returns the number of samples in the set.
func (s *Set) Len() int { return len(s.Vectors) }

// Group builds a Set from one request's real candidates. All samples form
// exactly one group.
func Group(vectors []feature.Vector, labels []float64) *Set {
	return &Set{
		Vectors:   vectors,
		Labels:    labels,
		GroupSize: len(vectors),
	}
}

// WithEmbeddings attaches the query and per-candidate content embeddings
// required by the fusion backend.
func (s *Set) WithEmbeddings(query []float32, content [][]float32) *Set {
	s.Query = query
	s.Content = content
	return s
}

// Replicate duplicates a single (vector, label) observation verbatim n
// times with no noise injection. The duplicates share the underlying vector;
// the trainers treat samples as read-only.
func Replicate(vec feature.Vector, label float64, n int) *Set {
	vectors := make([]feature.Vector, n)
	labels := make([]float64, n)
	for i := 0; i < n; i++ {
		vectors[i] = vec
		labels[i] = label
	}
	return &Set{
		Vectors:   vectors,
		Labels:    labels,
		GroupSize: n,
	}
}
