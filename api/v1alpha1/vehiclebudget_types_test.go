package v1alpha1

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/vehicle-design/propbudget/internal/planner"
	vehicle "github.com/vehicle-design/propbudget/pkg/config"
	"github.com/vehicle-design/propbudget/pkg/core"
)

func TestDecodeFillsDefaults(t *testing.T) {
	doc := []byte(`
apiVersion: propbudget.vehicle-design.io/v1alpha1
kind: VehicleBudget
metadata:
  name: heavy
spec:
  name: heavy
  sizing:
    payloadMass: 2500
`)
	b, err := Decode(doc)
	require.NoError(t, err)

	want := vehicle.DefaultVehicleConfig()
	want.Name = "heavy"
	want.Sizing.PayloadMass = 2500
	assert.Equal(t, "heavy", b.Name)
	assert.Equal(t, want, b.Spec)
}

func TestDecodeSample(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "..", "config", "samples", "propbudget_v1alpha1_vehiclebudget.yaml"))
	require.NoError(t, err)

	b, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "heavy-payload", b.Spec.Name)
	assert.InDelta(t, 285, b.Spec.Sizing.Stages[0].SpecificImpulse, 1e-9)
	assert.Equal(t, "Oxygen", b.Spec.Budget.Oxidizer.Fluid)
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		msg  string
	}{
		{
			name: "wrong kind",
			doc:  "apiVersion: propbudget.vehicle-design.io/v1alpha1\nkind: Rocket\n",
			msg:  "unsupported document",
		},
		{
			name: "missing apiVersion",
			doc:  "kind: VehicleBudget\n",
			msg:  "unsupported document",
		},
		{
			name: "missing kind",
			doc:  "apiVersion: propbudget.vehicle-design.io/v1alpha1\nspec:\n  name: bare\n",
			msg:  "unsupported document",
		},
		{
			name: "unknown field",
			doc:  "apiVersion: propbudget.vehicle-design.io/v1alpha1\nkind: VehicleBudget\nspec:\n  thrust: 1\n",
			msg:  "thrust",
		},
		{
			name: "invalid spec",
			doc:  "apiVersion: propbudget.vehicle-design.io/v1alpha1\nkind: VehicleBudget\nspec:\n  budget:\n    stage: S9\n",
			msg:  "S9",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.doc))
			assert.ErrorContains(t, err, tt.msg)
		})
	}
}

func TestEncodeDecode(t *testing.T) {
	b := NewVehicleBudget(vehicle.DefaultVehicleConfig())
	data, err := Encode(b)
	require.NoError(t, err)
	assert.Contains(t, string(data), "kind: VehicleBudget")

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, b.Spec, got.Spec)
}

func TestSetResult(t *testing.T) {
	now := metav1.NewTime(time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC))
	report := &planner.Report{Vehicle: "reference"}

	t.Run("succeeded", func(t *testing.T) {
		b := NewVehicleBudget(vehicle.DefaultVehicleConfig())
		b.SetResult(report, nil, now)

		assert.Same(t, report, b.Status.Report)
		assert.Equal(t, now, b.Status.LastRunTime)
		assert.True(t, meta.IsStatusConditionTrue(b.Status.Conditions, TypeReady))
		assert.True(t, meta.IsStatusConditionTrue(b.Status.Conditions, TypeLoadNonNegative))
	})

	t.Run("negative load", func(t *testing.T) {
		b := NewVehicleBudget(vehicle.DefaultVehicleConfig())
		warn := errors.Join(&core.NegativeLoadBudgetWarning{Species: core.Fuel, Figure: "autosequence", Mass: -37})
		b.SetResult(report, warn, now)

		assert.True(t, meta.IsStatusConditionTrue(b.Status.Conditions, TypeReady))
		c := meta.FindStatusCondition(b.Status.Conditions, TypeLoadNonNegative)
		require.NotNil(t, c)
		assert.Equal(t, metav1.ConditionFalse, c.Status)
		assert.Equal(t, ReasonNegativeLoad, c.Reason)
		assert.Contains(t, c.Message, "autosequence")
	})

	t.Run("failed", func(t *testing.T) {
		b := NewVehicleBudget(vehicle.DefaultVehicleConfig())
		b.SetResult(nil, &core.NonPhysicalSizingError{Stage: "S1", Reason: "negative dry mass"}, now)

		assert.Nil(t, b.Status.Report)
		ready := meta.FindStatusCondition(b.Status.Conditions, TypeReady)
		require.NotNil(t, ready)
		assert.Equal(t, metav1.ConditionFalse, ready.Status)
		assert.Equal(t, "NonPhysicalSizing", ready.Reason)
		assert.True(t, meta.IsStatusConditionPresentAndEqual(b.Status.Conditions, TypeLoadNonNegative, metav1.ConditionUnknown))
	})

	t.Run("later success replaces failure", func(t *testing.T) {
		b := NewVehicleBudget(vehicle.DefaultVehicleConfig())
		b.SetResult(nil, errors.New("boom"), now)
		assert.Equal(t, "Other", meta.FindStatusCondition(b.Status.Conditions, TypeReady).Reason)

		b.SetResult(report, nil, now)
		assert.Len(t, b.Status.Conditions, 2)
		assert.True(t, meta.IsStatusConditionTrue(b.Status.Conditions, TypeReady))
	})
}
