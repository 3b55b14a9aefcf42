package embedding_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/Intelligent-Systems-Phystech/MobileSensorData/internal/embedding"
)

var _ = Describe("Project", func() {
	var traj *mat.Dense

	BeforeEach(func() {
		var err error
		traj, err = embedding.Embed(sine(120), 8)
		Expect(err).NotTo(HaveOccurred())
	})

	It("returns projection, basis and ratios of the requested shape", func() {
		p, err := embedding.Project(traj, 3)
		Expect(err).NotTo(HaveOccurred())

		r, c := p.Points.Dims()
		Expect(r).To(Equal(112))
		Expect(c).To(Equal(3))

		r, c = p.Basis.Dims()
		Expect(r).To(Equal(3))
		Expect(c).To(Equal(8))

		Expect(p.Ratios).To(HaveLen(3))
	})

	It("captures all variance when keeping every component", func() {
		p, err := embedding.Project(traj, 8)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Cumulative()).To(BeNumerically("~", 1.0, 1e-9))
	})

	It("orders ratios from largest to smallest", func() {
		p, err := embedding.Project(traj, 5)
		Expect(err).NotTo(HaveOccurred())
		for i := 1; i < len(p.Ratios); i++ {
			Expect(p.Ratios[i]).To(BeNumerically("<=", p.Ratios[i-1]+1e-12))
		}
	})

	It("returns orthonormal principal axes", func() {
		p, err := embedding.Project(traj, 4)
		Expect(err).NotTo(HaveOccurred())

		var gram mat.Dense
		gram.Mul(p.Basis, p.Basis.T())
		for i := 0; i < 4; i++ {
			for j := 0; j < 4; j++ {
				want := 0.0
				if i == j {
					want = 1
				}
				Expect(gram.At(i, j)).To(BeNumerically("~", want, 1e-9))
			}
		}
	})

	It("centres the projected points", func() {
		p, err := embedding.Project(traj, 2)
		Expect(err).NotTo(HaveOccurred())
		r, _ := p.Points.Dims()
		for j := 0; j < 2; j++ {
			col := mat.Col(nil, j, p.Points)
			Expect(floats.Sum(col) / float64(r)).To(BeNumerically("~", 0, 1e-9))
		}
	})

	It("finds a single axis for a perfectly linear trajectory", func() {
		ramp := make([]float64, 50)
		for i := range ramp {
			ramp[i] = float64(i)
		}
		lin, err := embedding.Embed(ramp, 3)
		Expect(err).NotTo(HaveOccurred())

		p, err := embedding.Project(lin, 3)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Ratios[0]).To(BeNumerically("~", 1.0, 1e-9))
		for j := 0; j < 3; j++ {
			Expect(math.Abs(p.Basis.At(0, j))).To(BeNumerically("~", 1/math.Sqrt(3), 1e-9))
		}
	})

	It("reports zero ratios for a constant series", func() {
		flat, err := embedding.Embed([]float64{2, 2, 2, 2, 2, 2}, 2)
		Expect(err).NotTo(HaveOccurred())
		p, err := embedding.Project(flat, 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Ratios).To(Equal([]float64{0, 0}))
	})

	It("reports zero ratios for a single-row trajectory", func() {
		single, err := embedding.Embed([]float64{1, 2, 3, 4}, 3)
		Expect(err).NotTo(HaveOccurred())
		p, err := embedding.Project(single, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Ratios).To(Equal([]float64{0}))
		Expect(p.Cumulative()).To(BeZero())
	})

	DescribeTable("rejects component counts the trajectory cannot support",
		func(n int) {
			_, err := embedding.Project(traj, n)
			Expect(err).To(MatchError(embedding.ErrInvalidComponentCount))
		},
		Entry("more than L", 9),
		Entry("zero", 0),
		Entry("negative", -1),
	)

	It("rejects more components than observations", func() {
		short, err := embedding.Embed([]float64{1, 4, 2, 8, 5}, 3)
		Expect(err).NotTo(HaveOccurred())
		_, err = embedding.Project(short, 3)
		Expect(err).To(MatchError(embedding.ErrInvalidComponentCount))
	})
})
