package losses

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/vehicle-design/propbudget/pkg/core"
)

const tolerance = 1e-9

func firstStageInput(ignitions int) Input {
	return Input{
		EngineCount:         12,
		IgnitionsPerEngine:  ignitions,
		NominalMixtureRatio: 2.3,
		Startup:             Transient{TotalLoss: 10, MixtureRatio: 1},
		Chilldown:           Transient{TotalLoss: 7, MixtureRatio: 7},
		Shutdown:            Transient{TotalLoss: 3, MixtureRatio: 2},
		Hotfire:             Hotfire{Duration: 1.5, MassFlowRate: 28},
		BoilOff:             core.Components{Oxidizer: 18, Fuel: 10},
		Leakage:             core.Components{Oxidizer: 1, Fuel: 1},
	}
}

func eventsIn(r Result, phase Phase) core.Components {
	var sum core.Components
	for _, e := range r.Events {
		if e.Phase == phase {
			sum = sum.Add(e.Mass)
		}
	}
	return sum
}

var _ = Describe("SelectKind", func() {
	It("should select the single-ignition policy at or below one ignition", func() {
		Expect(SelectKind(0)).To(Equal(SingleIgnition))
		Expect(SelectKind(1)).To(Equal(SingleIgnition))
	})

	It("should select the multi-ignition policy above one ignition", func() {
		Expect(SelectKind(2)).To(Equal(MultiIgnition))
		Expect(SelectKind(5)).To(Equal(MultiIgnition))
	})
})

var _ = Describe("NewPolicy", func() {
	It("should default multi-ignition fuel accounting to complete", func() {
		p, err := NewPolicy(MultiIgnition, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.(*MultiIgnitionPolicy).FuelAccounting()).To(Equal(FuelAccountingComplete))
	})

	It("should reject an unknown fuel accounting mode", func() {
		_, err := NewPolicy(MultiIgnition, &PolicyConfig{MultiIgnitionFuelAccounting: "partial"})
		Expect(err).To(HaveOccurred())
	})

	It("should reject an unknown policy kind", func() {
		_, err := NewPolicy(PolicyKind(7), nil)
		Expect(err).To(MatchError(ContainSubstring("PolicyKind(7)")))
	})
})

var _ = Describe("SingleIgnitionPolicy", func() {
	Context("with the first-stage reference inputs", func() {
		var result Result

		BeforeEach(func() {
			var err error
			result, err = Account(firstStageInput(1), nil)
			Expect(err).NotTo(HaveOccurred())
		})

		It("should report the single-ignition policy", func() {
			Expect(result.Policy).To(Equal("single-ignition"))
		})

		It("should account startup, chilldown and hotfire before liftoff", func() {
			Expect(result.PreLiftoff.Oxidizer).To(BeNumerically("~", 60+73.5+504*2.3/3.3, tolerance))
			Expect(result.PreLiftoff.Fuel).To(BeNumerically("~", 60+10.5+504/3.3, tolerance))
			Expect(result.PreLiftoff.Oxidizer).To(BeNumerically("~", 484.7727, 1e-4))
			Expect(result.PreLiftoff.Fuel).To(BeNumerically("~", 223.2273, 1e-4))
		})

		It("should account shutdown, boil-off and leakage after liftoff", func() {
			Expect(result.PostLiftoff.Oxidizer).To(BeNumerically("~", 43, tolerance))
			Expect(result.PostLiftoff.Fuel).To(BeNumerically("~", 23, tolerance))
		})

		It("should break the totals down into events that sum to each phase", func() {
			Expect(result.Events).To(HaveLen(6))
			pre := eventsIn(result, PhaseBeforeLiftoff)
			post := eventsIn(result, PhaseAfterLiftoff)
			Expect(pre.Oxidizer).To(BeNumerically("~", result.PreLiftoff.Oxidizer, tolerance))
			Expect(pre.Fuel).To(BeNumerically("~", result.PreLiftoff.Fuel, tolerance))
			Expect(post.Oxidizer).To(BeNumerically("~", result.PostLiftoff.Oxidizer, tolerance))
			Expect(post.Fuel).To(BeNumerically("~", result.PostLiftoff.Fuel, tolerance))
		})
	})

	It("should only count boil-off and leakage with zero ignitions", func() {
		result, err := Account(firstStageInput(0), nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Policy).To(Equal("single-ignition"))
		Expect(result.PreLiftoff).To(Equal(core.Components{}))
		Expect(result.PostLiftoff.Oxidizer).To(BeNumerically("~", 19, tolerance))
		Expect(result.PostLiftoff.Fuel).To(BeNumerically("~", 11, tolerance))
	})
})

var _ = Describe("MultiIgnitionPolicy", func() {
	It("should switch policy exactly above one ignition", func() {
		one, err := Account(firstStageInput(1), nil)
		Expect(err).NotTo(HaveOccurred())
		two, err := Account(firstStageInput(2), nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(one.Policy).To(Equal("single-ignition"))
		Expect(two.Policy).To(Equal("multi-ignition"))
		Expect(two.PreLiftoff).To(Equal(core.Components{}))
	})

	Context("with three ignitions per engine", func() {
		It("should put every transient after liftoff", func() {
			result, err := Account(firstStageInput(3), nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.PreLiftoff.Total()).To(BeZero())
			Expect(result.PostLiftoff.Oxidizer).To(BeNumerically("~", 491.5, tolerance))
			Expect(result.PostLiftoff.Fuel).To(BeNumerically("~", 258.5, tolerance))
			Expect(eventsIn(result, PhaseBeforeLiftoff)).To(Equal(core.Components{}))
		})

		It("should drop startup fuel with source-compatible accounting", func() {
			cfg := &PolicyConfig{MultiIgnitionFuelAccounting: FuelAccountingSourceCompatible}
			result, err := Account(firstStageInput(3), cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.PostLiftoff.Oxidizer).To(BeNumerically("~", 491.5, tolerance))
			Expect(result.PostLiftoff.Fuel).To(BeNumerically("~", 78.5, tolerance))
		})
	})
})

var _ = Describe("Input validation", func() {
	DescribeTable("should reject non-physical loss inputs",
		func(mutate func(*Input), target error) {
			in := firstStageInput(1)
			mutate(&in)
			result, err := Account(in, nil)
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, target)).To(BeTrue())
			Expect(result).To(Equal(Result{}))
		},
		Entry("negative engine count", func(in *Input) { in.EngineCount = -1 }, core.ErrInvalidLossInput),
		Entry("negative ignitions", func(in *Input) { in.IgnitionsPerEngine = -2 }, core.ErrInvalidLossInput),
		Entry("negative startup loss", func(in *Input) { in.Startup.TotalLoss = -1 }, core.ErrInvalidLossInput),
		Entry("NaN hotfire duration", func(in *Input) { in.Hotfire.Duration = math.NaN() }, core.ErrInvalidLossInput),
		Entry("negative boil-off", func(in *Input) { in.BoilOff.Fuel = -0.5 }, core.ErrInvalidLossInput),
		Entry("infinite leakage", func(in *Input) { in.Leakage.Oxidizer = math.Inf(1) }, core.ErrInvalidLossInput),
		Entry("zero nominal ratio", func(in *Input) { in.NominalMixtureRatio = 0 }, core.ErrInvalidRatio),
		Entry("negative chilldown ratio", func(in *Input) { in.Chilldown.MixtureRatio = -7 }, core.ErrInvalidRatio),
		Entry("hotfire consumption overflows", func(in *Input) {
			in.Hotfire.MassFlowRate = 1e200
			in.Hotfire.Duration = 1e200
		}, core.ErrInvalidLossInput),
		Entry("scaled startup loss overflows", func(in *Input) { in.Startup.TotalLoss = math.MaxFloat64 }, core.ErrInvalidLossInput),
	)

	It("should reject an overflowing relight stage before splitting", func() {
		in := firstStageInput(3)
		in.Shutdown.TotalLoss = math.MaxFloat64 / 2
		result, err := Account(in, &PolicyConfig{MultiIgnitionFuelAccounting: FuelAccountingComplete})
		Expect(errors.Is(err, core.ErrInvalidLossInput)).To(BeTrue())
		Expect(result).To(Equal(Result{}))

		var lossErr *core.InvalidLossInputError
		Expect(errors.As(err, &lossErr)).To(BeTrue())
		Expect(lossErr.Field).To(Equal("shutdown.totalLoss"))
	})

	It("should name the overflowing hotfire total", func() {
		in := firstStageInput(1)
		in.Hotfire.MassFlowRate = math.MaxFloat64
		var lossErr *core.InvalidLossInputError
		Expect(errors.As(in.Validate(), &lossErr)).To(BeTrue())
		Expect(lossErr.Field).To(Equal("hotfire.consumption"))
		Expect(math.IsInf(lossErr.Value, 1)).To(BeTrue())
	})

	It("should name the offending field", func() {
		in := firstStageInput(1)
		in.Shutdown.TotalLoss = -3
		err := in.Validate()
		var lossErr *core.InvalidLossInputError
		Expect(errors.As(err, &lossErr)).To(BeTrue())
		Expect(lossErr.Field).To(Equal("shutdown.totalLoss"))
	})
})
