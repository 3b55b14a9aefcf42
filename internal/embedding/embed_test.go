package embedding_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/mat"

	"github.com/Intelligent-Systems-Phystech/MobileSensorData/internal/embedding"
)

func rows(m mat.Matrix) [][]float64 {
	r, c := m.Dims()
	out := make([][]float64, r)
	for i := range out {
		out[i] = make([]float64, c)
		for j := range out[i] {
			out[i][j] = m.At(i, j)
		}
	}
	return out
}

func sine(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = math.Sin(0.3*float64(i)) + 0.2*math.Cos(1.7*float64(i))
	}
	return s
}

var _ = Describe("Embed", func() {
	series := []float64{1, 2, 3, 4, 5}

	It("builds windows of width two", func() {
		traj, err := embedding.Embed(series, 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(rows(traj)).To(Equal([][]float64{{1, 2}, {2, 3}, {3, 4}, {4, 5}}))
	})

	It("builds windows of width three", func() {
		traj, err := embedding.Embed(series, 3)
		Expect(err).NotTo(HaveOccurred())
		Expect(rows(traj)).To(Equal([][]float64{{1, 2, 3}, {2, 3, 4}, {3, 4, 5}}))
	})

	It("returns D-L rows that are contiguous slices of the series", func() {
		s := sine(64)
		for _, l := range []int{1, 5, 17, 63} {
			traj, err := embedding.Embed(s, l)
			Expect(err).NotTo(HaveOccurred())

			r, c := traj.Dims()
			Expect(r).To(Equal(len(s) - l))
			Expect(c).To(Equal(l))
			for i := 0; i < r; i++ {
				Expect(mat.Row(nil, i, traj)).To(Equal(s[i : i+l]))
			}
		}
	})

	It("overlaps adjacent rows by L-1 samples", func() {
		traj, err := embedding.Embed(sine(40), 6)
		Expect(err).NotTo(HaveOccurred())

		r, _ := traj.Dims()
		for i := 0; i < r-1; i++ {
			cur := mat.Row(nil, i, traj)
			next := mat.Row(nil, i+1, traj)
			Expect(cur[1:]).To(Equal(next[:len(next)-1]))
		}
	})

	It("is deterministic", func() {
		s := sine(30)
		a, err := embedding.Embed(s, 4)
		Expect(err).NotTo(HaveOccurred())
		b, err := embedding.Embed(s, 4)
		Expect(err).NotTo(HaveOccurred())
		Expect(mat.Equal(a, b)).To(BeTrue())
	})

	It("does not alias the input series", func() {
		s := []float64{1, 2, 3, 4}
		traj, err := embedding.Embed(s, 2)
		Expect(err).NotTo(HaveOccurred())
		s[0] = 99
		Expect(traj.At(0, 0)).To(Equal(1.0))
	})

	DescribeTable("rejects windows outside [1, D)",
		func(l int) {
			_, err := embedding.Embed(series, l)
			Expect(err).To(MatchError(embedding.ErrInvalidDimension))
		},
		Entry("zero", 0),
		Entry("negative", -3),
		Entry("equal to D", 5),
		Entry("larger than D", 9),
	)

	It("rejects an empty series", func() {
		_, err := embedding.Embed(nil, 1)
		Expect(err).To(MatchError(embedding.ErrInvalidDimension))
	})
})
