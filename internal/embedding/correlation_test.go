package embedding_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Intelligent-Systems-Phystech/MobileSensorData/internal/embedding"
)

var _ = Describe("CorrelationMatrix", func() {
	It("is symmetric with a unit diagonal", func() {
		traj, err := embedding.Embed(sine(200), 12)
		Expect(err).NotTo(HaveOccurred())

		corr := embedding.CorrelationMatrix(traj)
		Expect(corr.SymmetricDim()).To(Equal(12))
		for i := 0; i < 12; i++ {
			Expect(corr.At(i, i)).To(BeNumerically("~", 1.0, 1e-12))
			for j := 0; j < 12; j++ {
				Expect(corr.At(i, j)).To(BeNumerically("~", corr.At(j, i), 1e-12))
				Expect(corr.At(i, j)).To(BeNumerically("<=", 1.0+1e-12))
				Expect(corr.At(i, j)).To(BeNumerically(">=", -1.0-1e-12))
			}
		}
	})

	It("gives perfect correlation for a linear ramp", func() {
		traj, err := embedding.Embed([]float64{0, 1, 2, 3, 4, 5, 6}, 3)
		Expect(err).NotTo(HaveOccurred())

		corr := embedding.CorrelationMatrix(traj)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				Expect(corr.At(i, j)).To(BeNumerically("~", 1.0, 1e-12))
			}
		}
	})

	It("keeps a unit diagonal for constant columns", func() {
		traj, err := embedding.Embed([]float64{3, 3, 3, 3, 3}, 2)
		Expect(err).NotTo(HaveOccurred())

		corr := embedding.CorrelationMatrix(traj)
		Expect(corr.At(0, 0)).To(Equal(1.0))
		Expect(corr.At(1, 1)).To(Equal(1.0))
		Expect(corr.At(0, 1)).To(Equal(0.0))
	})
})

var _ = Describe("PhaseTrack", func() {
	It("chains embedding and projection", func() {
		res, err := embedding.PhaseTrack(sine(90), 10, 3, true)
		Expect(err).NotTo(HaveOccurred())

		r, c := res.Trajectory.Dims()
		Expect([]int{r, c}).To(Equal([]int{80, 10}))
		r, c = res.Projection.Dims()
		Expect([]int{r, c}).To(Equal([]int{80, 3}))
		Expect(res.Correlation).NotTo(BeNil())
		Expect(res.Cumulative()).To(BeNumerically(">", 0))
		Expect(res.Cumulative()).To(BeNumerically("<=", 1.0+1e-9))
	})

	It("skips the correlation matrix unless requested", func() {
		res, err := embedding.PhaseTrack(sine(30), 4, 2, false)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Correlation).To(BeNil())
	})

	It("propagates dimension errors", func() {
		_, err := embedding.PhaseTrack([]float64{1, 2}, 2, 1, false)
		Expect(err).To(MatchError(embedding.ErrInvalidDimension))
	})

	It("propagates component errors", func() {
		_, err := embedding.PhaseTrack(sine(30), 4, 5, false)
		Expect(err).To(MatchError(embedding.ErrInvalidComponentCount))
	})
})
