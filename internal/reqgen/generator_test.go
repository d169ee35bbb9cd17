package reqgen_test

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/microlearn/sessionrank/internal/reqgen"
)

func TestGenerate(t *testing.T) {
	Convey("Given the request generator", t, func() {
		ctx := context.Background()

		Convey("When generating with defaults", func() {
			req, err := reqgen.Generate(ctx)

			Convey("Then it should produce a well-formed request", func() {
				So(err, ShouldBeNil)
				So(len(req.Sessions), ShouldEqual, 8)
				So(req.Query, ShouldNotBeEmpty)
				So(req.User.UserID, ShouldNotBeEmpty)
				So(req.QueryEmbedding, ShouldBeNil)

				seen := make(map[string]bool)
				for _, sess := range req.Sessions {
					So(sess.SessionID, ShouldNotBeEmpty)
					So(seen[sess.SessionID], ShouldBeFalse)
					seen[sess.SessionID] = true
					So(sess.SemanticMax, ShouldBeBetweenOrEqual, 0, 1)
				}
			})

			Convey("And every session should carry exactly one feature shape", func() {
				So(err, ShouldBeNil)
				for _, sess := range req.Sessions {
					if sess.Tabular != nil {
						So(sess.Reviews, ShouldBeNil)
					} else {
						So(len(sess.Reviews), ShouldBeGreaterThan, 0)
						So(sess.Difficulty, ShouldBeIn, "beginner", "intermediate", "advanced")
					}
				}
			})
		})

		Convey("When generating with embeddings", func() {
			req, err := reqgen.Generate(ctx,
				reqgen.WithSessions(5),
				reqgen.WithEmbeddingDim(16),
			)

			Convey("Then query and content embeddings should match the dimension", func() {
				So(err, ShouldBeNil)
				So(len(req.Sessions), ShouldEqual, 5)
				So(len(req.QueryEmbedding), ShouldEqual, 16)
				for _, sess := range req.Sessions {
					So(len(sess.ContentEmbedding), ShouldEqual, 16)
				}
			})
		})

		Convey("When generating fully structured requests", func() {
			req, err := reqgen.Generate(ctx, reqgen.WithStructuredShare(1.0))

			Convey("Then every session should carry a tabular block", func() {
				So(err, ShouldBeNil)
				for _, sess := range req.Sessions {
					So(sess.Tabular, ShouldNotBeNil)
					So(sess.Tabular.ReviewCredibility, ShouldNotBeNil)
				}
			})
		})

		Convey("When the context is already cancelled", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()
			_, err := reqgen.Generate(cancelled)

			Convey("Then it should fail", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
