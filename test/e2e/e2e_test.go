package e2e

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/vehicle-design/propbudget/api/v1alpha1"
	"github.com/vehicle-design/propbudget/internal/planner"
	"github.com/vehicle-design/propbudget/internal/tradestudy"
)

func decodeReport(r result) *planner.Report {
	var report planner.Report
	ExpectWithOffset(1, json.Unmarshal(r.stdout, &report)).To(Succeed(), "stdout is not a JSON report: %s", r.stdout)
	return &report
}

var _ = Describe("Mass budget", func() {
	It("splits the burnable propellant by the nominal mixture ratio", func() {
		r := propbudget("budget", "--output", "json", "--decimals", "1")
		Expect(r.exitCode).To(Equal(0))

		report := decodeReport(r)
		Expect(report.Sizing).To(BeNil())
		Expect(report.Budget.Burnable.Oxidizer).To(Equal(41121.2))
		Expect(report.Budget.Burnable.Fuel).To(Equal(17878.8))
	})

	It("derives the residuals from the reserve and a known density", func() {
		cfg := writeConfig(`
fluids:
  pinned:
    - fluid: Oxygen
      density: 1141
`)
		r := propbudget("budget", "--config", cfg, "--output", "json", "--decimals", "1")
		Expect(r.exitCode).To(Equal(0))

		res := decodeReport(r).Budget.Residuals
		Expect(res.Reserve.Oxidizer).To(Equal(69.7))
		Expect(res.Reserve.Fuel).To(Equal(30.3))
		Expect(res.Density.Oxidizer).To(Equal(1141.0))
		Expect(res.Unusable.Oxidizer).To(Equal(34.2))
	})

	It("moves every transient after liftoff for a relit upper stage", func() {
		r := propbudget("run", "--config", "config/samples/upper-stage-relight.yaml", "--output", "json")
		Expect(r.exitCode).To(Equal(0))

		b := decodeReport(r).Budget
		Expect(b.Stage).To(Equal("S2"))
		Expect(b.Policy).To(Equal("multi-ignition"))
		Expect(b.FuelAccounting).To(Equal("complete"))
		Expect(b.Totals.PreLiftoff).To(BeZero())
		Expect(b.Totals.PostLiftoff).To(BeNumerically(">", 0))
	})

	It("writes the report and exits with status 2 when a load figure is negative", func() {
		cfg := writeConfig(`
budget:
  fuel:
    topOff: 30000
`)
		r := propbudget("budget", "--config", cfg, "--output", "json")
		Expect(r.exitCode).To(Equal(2))

		b := decodeReport(r).Budget
		Expect(b.Warnings).NotTo(BeEmpty())
		Expect(b.Load.Autosequence.Fuel).To(BeNumerically("<", 0))
	})

	It("rejects a non-positive mixture ratio without writing a report", func() {
		cfg := writeConfig(`
budget:
  nominalMixtureRatio: -1
`)
		r := propbudget("budget", "--config", cfg, "--output", "json")
		Expect(r.exitCode).To(Equal(1))
		Expect(r.stdout).To(BeEmpty())
	})
})

var _ = Describe("Sizing", func() {
	It("allocates the delta-v budget of a 200 km orbit", func() {
		r := propbudget("size", "--output", "json", "--decimals", "6")
		Expect(r.exitCode).To(Equal(0))

		s := decodeReport(r).Sizing
		orbital := math.Sqrt(3.986004418e14 / (6371000 + 200000))
		Expect(s.Velocity.OrbitalSpeed).To(BeNumerically("~", orbital, 1e-5))
		// 7788.5 m/s; hand calculations quoting 7790.6 m/s are within 0.03 %.
		Expect(s.Velocity.OrbitalSpeed).To(BeNumerically("~", 7790.6, 7790.6*5e-4))
		Expect(s.TotalDeltaV).To(BeNumerically("~", orbital+1800, 1e-5))
		Expect(s.Stages).To(HaveLen(2))
		Expect(s.Stages[0].DeltaV).To(BeNumerically("~", 0.42*(orbital+1800), 1e-5))
		Expect(s.Stages[1].DeltaV).To(BeNumerically("~", 0.58*(orbital+1800), 1e-5))
		Expect(s.LiftoffMass).To(Equal(s.Stages[0].WetMass))
	})

	It("rejects a stage without specific impulse", func() {
		cfg := writeConfig(`
sizing:
  stages:
    - name: S1
      fraction: 0.42
      specificImpulse: 0
      dryMass: 3900
    - name: S2
      fraction: 0.58
      specificImpulse: 310
      dryMass: 900
`)
		r := propbudget("size", "--config", cfg)
		Expect(r.exitCode).To(Equal(1))
		Expect(r.stdout).To(BeEmpty())
	})

	It("writes a VehicleBudget document for the run", func() {
		path := filepath.Join(GinkgoT().TempDir(), "reference.yaml")
		r := propbudget("run", "--document", path)
		Expect(r.exitCode).To(Equal(0))

		data, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		doc, err := v1alpha1.Decode(data)
		Expect(err).NotTo(HaveOccurred())
		Expect(doc.Name).To(Equal("reference"))
		Expect(doc.Status.Report).NotTo(BeNil())
		Expect(doc.Status.Conditions).To(HaveLen(2))
	})
})

var _ = Describe("Trade study", func() {
	It("reduces stage 1 propellant as its specific impulse grows", func() {
		r := propbudget("sweep", "--parameter", "stage1Isp", "--from", "250", "--to", "320", "--steps", "8", "--output", "json")
		Expect(r.exitCode).To(Equal(0))

		var study tradestudy.Study
		Expect(json.Unmarshal(r.stdout, &study)).To(Succeed())
		Expect(study.Results).To(HaveLen(8))
		Expect(study.Results[0].Value).To(Equal(250.0))
		Expect(study.Results[7].Value).To(Equal(320.0))
		for i := 1; i < len(study.Results); i++ {
			prev := study.Results[i-1].Report.Sizing.Stages[0].PropellantMass
			Expect(study.Results[i].Report.Sizing.Stages[0].PropellantMass).To(BeNumerically("<", prev))
		}
	})
})

var _ = Describe("Density tool", func() {
	It("converts Celsius to Kelvin before the lookup", func() {
		r := propbudget("density", "--unit", "C", "--", "-183.15")
		Expect(r.exitCode).To(Equal(0))

		var out struct {
			Inputs struct {
				TemperatureK float64 `json:"temperatureK"`
			} `json:"inputs"`
			Outputs struct {
				Density float64 `json:"densityKgPerM3"`
			} `json:"outputs"`
		}
		Expect(json.Unmarshal(r.stdout, &out)).To(Succeed())
		Expect(out.Inputs.TemperatureK).To(BeNumerically("~", 90, 1e-9))
		Expect(out.Outputs.Density).To(BeNumerically("~", 1141, 1e-6))
	})

	It("reads extra tables from a file", func() {
		r := propbudget("density", "280", "--fluid", "Ethanol", "--fluid-tables", "config/samples/extra-fluids.yaml")
		Expect(r.exitCode).To(Equal(0))
		Expect(string(r.stdout)).To(ContainSubstring(`"fluid": "Ethanol"`))
	})
})
