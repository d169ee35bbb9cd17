// Package rank assembles per-candidate scores into the final ranking
// response.
package rank

import (
	"sort"

	"github.com/microlearn/sessionrank/internal/domain/model"
)

// Assemble attaches scores to candidate identity and display fields, sorts by
// rank_score descending, and wraps the sorted list with the originating query
// and user id. The sort is stable: equal scores keep their input order, so
// tie-breaking is deterministic and independent of the model backend.
// scores[i] must belong to req.Sessions[i].
func Assemble(req model.RankingRequest, scores []float64) model.RankingResponse {
	results := make([]model.RankedSession, len(req.Sessions))
	for i, s := range req.Sessions {
		results[i] = model.RankedSession{
			SessionID:   s.SessionID,
			Title:       s.Title,
			TeacherID:   s.TeacherID,
			PricePerMin: s.PricePerMin,
			RankScore:   scores[i],
		}
	}
	sort.SliceStable(results, func(a, b int) bool {
		return results[a].RankScore > results[b].RankScore
	})
	return model.RankingResponse{
		Query:   req.Query,
		UserID:  req.User.UserID,
		Results: results,
	}
}
