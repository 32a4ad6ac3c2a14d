package trajectory

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/reentry/internal/dynamo"
	"github.com/san-kum/reentry/internal/physics"
)

var _ = Describe("Earth entry", func() {
	var (
		snap   Snapshot
		earth  physics.Body
		runner *Runner
		res    *Result
	)

	BeforeEach(func() {
		snap, earth = earthEntry()
		var err error
		runner, err = NewRunner(earth, snap, settingsWith(0.1, 10000))
		Expect(err).NotTo(HaveOccurred())
		res, err = runner.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
	})

	It("impacts the surface", func() {
		Expect(res.Termination).To(Equal(dynamo.Impact))
		Expect(res.Landing.Steps).To(BeNumerically("~", 5022, 2))
		Expect(res.Landing.Point.Height).To(BeNumerically("<=", 0))
		Expect(res.Landing.Point.Height).To(BeNumerically(">", -10))
		Expect(res.Landing.Point.Angle).To(BeNumerically("~", 71.44, 0.05))
	})

	It("heats through peak dynamic pressure and then cools", func() {
		n := len(res.Samples)
		temp := func(i int) float64 { return res.Samples[i].Temperature }
		peakT := argmax(n, temp)
		peakQ := argmax(n, func(i int) float64 { return res.Samples[i].DynamicPressure() })

		Expect(temp(peakT)).To(BeNumerically(">", 2000))
		Expect(peakQ).To(BeNumerically("~", peakT, 200))

		first := 0
		for first < n-1 && temp(first+1) <= temp(first) {
			first++
		}
		for i := first; i < peakT; i++ {
			Expect(temp(i+1)).To(BeNumerically(">", temp(i)), "step %d", i+1)
		}
		for i := peakT; i < n-1; i++ {
			Expect(temp(i+1)).To(BeNumerically("<=", temp(i)), "step %d", i+1)
		}
		Expect(temp(n - 1)).To(BeNumerically("<", temp(peakT)))
	})

	It("never lets temperature go negative or NaN", func() {
		for _, s := range res.Samples {
			Expect(s.Temperature).To(BeNumerically(">=", 0))
			Expect(s.Temperature).To(Equal(s.Temperature))
		}
	})

	It("is deterministic across sync and async runs", func() {
		again, err := runner.RunToCompletion(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(*again).To(Equal(*res.Landing))

		trace := <-runner.RunAsync(context.Background())
		Expect(trace.Err).NotTo(HaveOccurred())
		Expect(trace.Samples).To(Equal(res.Samples))
		Expect(*trace.Landing).To(Equal(*res.Landing))
	})

	It("builds a fresh simulation for every run", func() {
		other, err := NewRunner(earth, snap, settingsWith(0.1, 10000))
		Expect(err).NotTo(HaveOccurred())
		ens := NewEnsemble()
		ens.Add("a", runner)
		ens.Add("b", other)
		for _, o := range ens.Run(context.Background()) {
			Expect(o.Err).NotTo(HaveOccurred())
			Expect(o.Result.Samples).To(Equal(res.Samples))
		}
	})

	DescribeTable("cancelling an async run yields the synchronous prefix",
		func(stopAt int) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			r, err := NewRunner(earth, snap, settingsWith(0.1, 10000),
				WithObserver(dynamo.ObserverFunc(func(s dynamo.Sample) {
					if s.Step == stopAt {
						cancel()
					}
				})))
			Expect(err).NotTo(HaveOccurred())

			trace := <-r.RunAsync(ctx)
			Expect(trace.Canceled).To(BeTrue())
			Expect(trace.Err).NotTo(HaveOccurred())
			Expect(trace.Landing).To(BeNil())
			Expect(trace.Samples).To(HaveLen(stopAt))
			Expect(trace.Samples).To(Equal(res.Samples[:stopAt]))
		},
		Entry("after the first step", 1),
		Entry("before entry", 500),
		Entry("near peak heating", 2700),
	)
})

var _ = Describe("Step budget", func() {
	It("reports non-convergence rather than a landing point", func() {
		snap, earth := earthEntry()
		r, err := NewRunner(earth, snap, settingsWith(0.1, 3000))
		Expect(err).NotTo(HaveOccurred())

		landing, err := r.RunToCompletion(context.Background())
		Expect(err).To(MatchError(dynamo.ErrNonConvergence))
		Expect(landing).To(BeNil())
	})
})

var _ = Describe("Coarser steps", func() {
	It("land near the fine-step prediction", func() {
		snap, earth := earthEntry()
		fine, err := NewRunner(earth, snap, settingsWith(0.1, 10000))
		Expect(err).NotTo(HaveOccurred())
		coarse, err := NewRunner(earth, snap, settingsWith(0.5, 10000))
		Expect(err).NotTo(HaveOccurred())

		a, err := fine.RunToCompletion(context.Background())
		Expect(err).NotTo(HaveOccurred())
		b, err := coarse.RunToCompletion(context.Background())
		Expect(err).NotTo(HaveOccurred())

		Expect(b.Steps).To(BeNumerically("~", 1004, 2))
		Expect(b.Point.Angle).To(BeNumerically("~", a.Point.Angle, 0.05))
		Expect(b.ImpactTime).To(BeNumerically("~", a.ImpactTime, 1))
	})
})
