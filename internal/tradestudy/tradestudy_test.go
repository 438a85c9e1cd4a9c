package tradestudy

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vehicle-design/propbudget/internal/fluids"
	"github.com/vehicle-design/propbudget/internal/planner"
	vehicle "github.com/vehicle-design/propbudget/pkg/config"
)

func newPlanner() *planner.Planner {
	return planner.New(fluids.StaticOracle{"Oxygen": 1141, "Propane": 700})
}

func TestSweepStage1Isp(t *testing.T) {
	values := []float64{250, 265, 280, 300}
	study, err := Sweep(context.Background(), newPlanner(), vehicle.DefaultVehicleConfig(), Stage1Isp, values, 2)
	require.NoError(t, err)
	assert.Equal(t, "stage1Isp", study.Parameter)
	require.Len(t, study.Results, len(values))

	prev := 0.0
	for i, r := range study.Results {
		require.Empty(t, r.Error)
		assert.Equal(t, values[i], r.Value, "results keep input order")
		assert.Equal(t, values[i], r.Report.Sizing.Stages[0].SpecificImpulse)
		s1 := r.Report.Sizing.Stages[0].PropellantMass
		if i > 0 {
			assert.Less(t, s1, prev, "a better stage-1 Isp needs less propellant")
		}
		prev = s1
	}
	assert.InDelta(t, 58313.29, study.Results[1].Report.Sizing.Stages[0].PropellantMass, 0.01)
	assert.InDelta(t, 46071.12, study.Results[3].Report.Sizing.Stages[0].PropellantMass, 0.01)
}

func TestSweepReportsFailedVariants(t *testing.T) {
	study, err := Sweep(context.Background(), newPlanner(), vehicle.DefaultVehicleConfig(), PayloadMass, []float64{500, -10, 1500}, 0)
	require.NoError(t, err)

	assert.Empty(t, study.Results[0].Error)
	assert.NotNil(t, study.Results[0].Report)

	assert.Nil(t, study.Results[1].Report)
	assert.Equal(t, "non_physical_sizing", study.Results[1].Kind)

	assert.Empty(t, study.Results[2].Error)
	assert.Greater(t,
		study.Results[2].Report.Sizing.LiftoffMass,
		study.Results[0].Report.Sizing.LiftoffMass)
}

type slowRunner struct {
	inFlight, peak atomic.Int64
	mu             sync.Mutex
	seen           []float64
}

func (s *slowRunner) Run(ctx context.Context, cfg vehicle.VehicleConfig) (*planner.Report, error) {
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		p := s.peak.Load()
		if n <= p || s.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)
	s.mu.Lock()
	s.seen = append(s.seen, cfg.Sizing.PayloadMass)
	s.mu.Unlock()
	return &planner.Report{Vehicle: cfg.Name}, nil
}

func TestSweepHonoursLimit(t *testing.T) {
	r := &slowRunner{}
	_, err := Sweep(context.Background(), r, vehicle.DefaultVehicleConfig(), PayloadMass, Range(100, 1000, 10), 3)
	require.NoError(t, err)
	assert.LessOrEqual(t, r.peak.Load(), int64(3))
	assert.Len(t, r.seen, 10)
}

func TestSweepStopsOnCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	study, err := Sweep(ctx, &slowRunner{}, vehicle.DefaultVehicleConfig(), PayloadMass, []float64{1, 2}, 1)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, study)
}

func TestRange(t *testing.T) {
	assert.Nil(t, Range(1, 2, 0))
	assert.Equal(t, []float64{5}, Range(5, 9, 1))
	assert.Equal(t, []float64{250, 275, 300}, Range(250, 300, 3))
}

func TestMutatorsDoNotTouchBase(t *testing.T) {
	base := vehicle.DefaultVehicleConfig()
	cfg := Mutators["stage1Isp"].Apply(290).Apply(base)
	assert.Equal(t, 290.0, cfg.Sizing.Stages[0].SpecificImpulse)
	assert.Equal(t, vehicle.DefaultStage1Isp, base.Sizing.Stages[0].SpecificImpulse)
	assert.Contains(t, Mutators, "altitude")
}
