package sample_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/microlearn/sessionrank/internal/domain/feature"
	"github.com/microlearn/sessionrank/internal/domain/sample"
)

func TestGroup(t *testing.T) {
	Convey("Given a ranking group", t, func() {
		vectors := []feature.Vector{
			{1, 2, 3},
			{4, 5, 6},
			{7, 8, 9},
		}
		labels := []float64{4, 2, 0}

		Convey("When building the set", func() {
			set := sample.Group(vectors, labels)

			Convey("Then all candidates form exactly one group", func() {
				So(set.Len(), ShouldEqual, 3)
				So(set.GroupSize, ShouldEqual, 3)
				So(set.Vectors, ShouldResemble, vectors)
				So(set.Labels, ShouldResemble, labels)
			})

			Convey("And no embeddings are attached by default", func() {
				So(set.Query, ShouldBeNil)
				So(set.Content, ShouldBeNil)
			})
		})

		Convey("When attaching embeddings", func() {
			set := sample.Group(vectors, labels)
			query := []float32{0.1, 0.2}
			content := [][]float32{{1, 0}, {0, 1}, {1, 1}}
			set.WithEmbeddings(query, content)

			Convey("Then the set carries them for the fusion backend", func() {
				So(set.Query, ShouldResemble, query)
				So(set.Content, ShouldResemble, content)
			})
		})
	})
}

func TestReplicate(t *testing.T) {
	Convey("Given single-observation replication", t, func() {
		vec := feature.Vector{0.5, 0.6, 30}

		Convey("When replicating for a student", func() {
			set := sample.Replicate(vec, 1.0, sample.StudentCopies)

			Convey("Then 10 verbatim copies form one group", func() {
				So(set.Len(), ShouldEqual, 10)
				So(set.GroupSize, ShouldEqual, 10)
				for i := range set.Vectors {
					So(set.Vectors[i], ShouldResemble, vec)
					So(set.Labels[i], ShouldEqual, 1.0)
				}
			})
		})

		Convey("When replicating for a teacher", func() {
			set := sample.Replicate(vec, 0.62, sample.TeacherCopies)

			Convey("Then 12 verbatim copies form one group", func() {
				So(set.Len(), ShouldEqual, 12)
				So(set.Labels[11], ShouldEqual, 0.62)
			})
		})

		Convey("When replicating, the copies carry no noise", func() {
			set := sample.Replicate(vec, 0.5, 5)
			for i := 1; i < set.Len(); i++ {
				So(set.Vectors[i], ShouldResemble, set.Vectors[0])
				So(set.Labels[i], ShouldEqual, set.Labels[0])
			}
		})
	})
}
