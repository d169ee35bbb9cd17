package feature_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/microlearn/sessionrank/internal/domain/feature"
	"github.com/microlearn/sessionrank/internal/domain/model"
)

func TestSessionVector(t *testing.T) {
	Convey("Given session vector construction", t, func() {
		user := model.UserProfile{
			UserID:              "u1",
			AgeBucket:           2,
			YearOfStudy:         3,
			PreferredCategories: []string{"mathematics"},
			PreviousTeachers:    []string{"t9"},
		}

		Convey("When the session carries a structured tabular block", func() {
			cred := 0.7
			s := model.Session{
				SessionID:    "s1",
				TeacherID:    "t9",
				SemanticMax:  0.9,
				SemanticMean: 0.6,
				SemanticHits: 3,
				Tabular: &model.TabularFeatures{
					AvgRating:         0.8,
					ReviewCredibility: &cred,
					DifficultyID:      2,
					CategoryMatch:     0,
					SameTeacherBefore: 0,
				},
				// Raw fields present but must be ignored.
				Reviews:    []model.Review{{Rating: 5}},
				Difficulty: "beginner",
				Category:   "mathematics",
			}
			vec := feature.SessionVector(s, user)

			Convey("Then the structured block wins over the raw fields", func() {
				So(len(vec), ShouldEqual, feature.SessionDims)
				So(vec, ShouldResemble, feature.Vector{0.9, 0.6, 3, 0.8, 0.7, 2, 0, 0, 2, 3})
			})
		})

		Convey("When the structured block omits review_credibility", func() {
			s := model.Session{
				SessionID: "s1",
				Tabular:   &model.TabularFeatures{AvgRating: 0.5},
			}
			vec := feature.SessionVector(s, user)

			Convey("Then the 1.0 placeholder fills in", func() {
				So(vec[4], ShouldEqual, 1.0)
			})
		})

		Convey("When only raw legacy fields are present", func() {
			s := model.Session{
				SessionID:  "s2",
				TeacherID:  "t9",
				Reviews:    []model.Review{{Rating: 4}, {Rating: 5}},
				Difficulty: "Intermediate",
				Category:   "mathematics",
			}
			vec := feature.SessionVector(s, user)

			Convey("Then the tabular dims derive from the raw fields", func() {
				So(vec[3], ShouldAlmostEqual, float32(4.5/5.0), 1e-6)
				So(vec[4], ShouldEqual, 1.0) // credibility placeholder
				So(vec[5], ShouldEqual, 1)   // intermediate, case-insensitive
				So(vec[6], ShouldEqual, 1)   // preferred category
				So(vec[7], ShouldEqual, 1)   // teacher seen before
			})
		})

		Convey("When fields are absent", func() {
			vec := feature.SessionVector(model.Session{SessionID: "s3"}, model.UserProfile{})

			Convey("Then everything defaults to 0 except the credibility placeholder", func() {
				So(vec, ShouldResemble, feature.Vector{0, 0, 0, 0, 1, 0, 0, 0, 0, 0})
			})
		})

		Convey("When the difficulty string is unknown", func() {
			s := model.Session{SessionID: "s4", Difficulty: "impossible"}
			vec := feature.SessionVector(s, user)

			Convey("Then it grades as beginner", func() {
				So(vec[5], ShouldEqual, 0)
			})
		})
	})
}

func TestNormalizedAvgRating(t *testing.T) {
	Convey("Given normalized average rating", t, func() {
		Convey("When reviews exist", func() {
			s := model.Session{Reviews: []model.Review{{Rating: 4}, {Rating: 5}, {Rating: 3}}}
			So(feature.NormalizedAvgRating(s), ShouldAlmostEqual, 4.0/5.0, 1e-9)
		})

		Convey("When the review list is empty", func() {
			So(feature.NormalizedAvgRating(model.Session{}), ShouldEqual, 0)
		})

		Convey("When a tabular block is present", func() {
			s := model.Session{
				Tabular: &model.TabularFeatures{AvgRating: 0.9},
				Reviews: []model.Review{{Rating: 1}},
			}
			So(feature.NormalizedAvgRating(s), ShouldEqual, 0.9)
		})
	})
}

func TestStudentVector(t *testing.T) {
	Convey("Given student vector construction", t, func() {
		Convey("When all fields are set", func() {
			ttr := 45.0
			f := model.StudentFeatures{
				CompletionRatio:      0.5,
				NormalizedTimeSpent:  0.6,
				InteractionCount:     30,
				ActiveRatio:          0.7,
				IdleRatio:            0.1,
				RatingGiven:          0.8,
				TimeToReviewSec:      &ttr,
				StudentAvgCompletion: 0.55,
				StudentExtremeRatio:  0.05,
				SessionAvgCompletion: 0.6,
				SessionAvgRating:     0.75,
			}
			vec := feature.StudentVector(f)

			So(len(vec), ShouldEqual, feature.StudentDims)
			So(vec, ShouldResemble, feature.Vector{0.5, 0.6, 30, 0.7, 0.1, 0.8, 45, 0.55, 0.05, 0.6, 0.75})
		})

		Convey("When time_to_review_sec is absent", func() {
			vec := feature.StudentVector(model.StudentFeatures{CompletionRatio: 0.5})

			Convey("Then the vector slot is 0, not the label-rule default", func() {
				So(vec[6], ShouldEqual, 0)
			})
		})
	})
}

func TestTeacherVector(t *testing.T) {
	Convey("Given teacher vector construction", t, func() {
		f := model.TeacherFeatures{
			MeanCompletion:    0.7,
			DropoffSlope:      -0.1,
			CoverageRatio:     0.6,
			RewindRate:        0.2,
			PauseRate:         0.3,
			WeightedAvgRating: 4.0,
			RatingVariance:    0.5,
			PricePercentile:   0.8,
			PriceVsCompletion: 1.2,
		}
		vec := feature.TeacherVector(f)

		Convey("Then the 9 dims appear in schema order", func() {
			So(len(vec), ShouldEqual, feature.TeacherDims)
			So(vec, ShouldResemble, feature.Vector{0.7, -0.1, 0.6, 0.2, 0.3, 4.0, 0.5, 0.8, 1.2})
		})
	})
}
