package v1alpha1

import (
	"fmt"
	"strings"

	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/yaml"

	"github.com/vehicle-design/propbudget/internal/budget"
	"github.com/vehicle-design/propbudget/internal/planner"
	vehicle "github.com/vehicle-design/propbudget/pkg/config"
	"github.com/vehicle-design/propbudget/pkg/core"
)

// VehicleBudgetStatus is the outcome of the last run of Spec.
type VehicleBudgetStatus struct {
	// LastRunTime is when the report was computed.
	// +optional
	LastRunTime metav1.Time `json:"lastRunTime,omitempty"`

	// Report is the last computed report. It is absent when the run failed.
	// +optional
	Report *planner.Report `json:"report,omitempty"`

	// Conditions represent the latest available observations of the run.
	// +optional
	// +listType=map
	// +listMapKey=type
	Conditions []metav1.Condition `json:"conditions,omitempty"`
}

// VehicleBudget describes a vehicle and, once run, its mass budget.
type VehicleBudget struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	// Spec is the vehicle configuration.
	Spec vehicle.VehicleConfig `json:"spec"`

	// Status is the outcome of the last run.
	// +optional
	Status VehicleBudgetStatus `json:"status,omitempty"`
}

// Condition types for VehicleBudget
const (
	// TypeReady indicates whether both paths ran and the report is present
	TypeReady = "Ready"
	// TypeLoadNonNegative indicates whether every load figure is >= 0
	TypeLoadNonNegative = "LoadNonNegative"
)

// Condition reasons. Failed runs use the error kind, e.g. "NonPhysicalSizing".
const (
	ReasonSucceeded = "Succeeded"
	// ReasonNegativeLoad indicates a load figure went below zero; the report is still written
	ReasonNegativeLoad = "NegativeLoad"
	// ReasonNotRun indicates the budget was not computed because the run failed
	ReasonNotRun = "NotRun"
)

// NewVehicleBudget returns a document for spec with its type metadata set.
func NewVehicleBudget(spec vehicle.VehicleConfig) *VehicleBudget {
	return &VehicleBudget{
		TypeMeta: metav1.TypeMeta{
			APIVersion: GroupVersion.String(),
			Kind:       Kind,
		},
		ObjectMeta: metav1.ObjectMeta{Name: spec.Name},
		Spec:       spec,
	}
}

// SetResult records the outcome of planner.Run in the status.
func (b *VehicleBudget) SetResult(report *planner.Report, err error, now metav1.Time) {
	b.Status.LastRunTime = now
	b.Status.Report = report

	ready := metav1.Condition{Type: TypeReady, Status: metav1.ConditionTrue, Reason: ReasonSucceeded}
	load := metav1.Condition{Type: TypeLoadNonNegative, Status: metav1.ConditionTrue, Reason: ReasonSucceeded}
	switch {
	case err == nil:
	case report != nil && budget.IsWarning(err):
		load.Status = metav1.ConditionFalse
		load.Reason = ReasonNegativeLoad
		load.Message = err.Error()
	default:
		ready.Status = metav1.ConditionFalse
		ready.Reason = reason(err)
		ready.Message = err.Error()
		load.Status = metav1.ConditionUnknown
		load.Reason = ReasonNotRun
	}
	for _, c := range []metav1.Condition{ready, load} {
		c.LastTransitionTime = now
		c.ObservedGeneration = b.Generation
		meta.SetStatusCondition(&b.Status.Conditions, c)
	}
}

// reason turns an error kind such as "non_physical_sizing" into a
// condition reason such as "NonPhysicalSizing".
func reason(err error) string {
	var out strings.Builder
	for _, part := range strings.Split(core.Kind(err), "_") {
		if part == "" {
			continue
		}
		out.WriteString(strings.ToUpper(part[:1]))
		out.WriteString(part[1:])
	}
	if out.Len() == 0 {
		return "Failed"
	}
	return out.String()
}

// Decode parses a VehicleBudget document. Spec fields the document leaves
// out keep the values of DefaultVehicleConfig.
func Decode(data []byte) (*VehicleBudget, error) {
	b := NewVehicleBudget(vehicle.DefaultVehicleConfig())
	// The document must state its own apiVersion and kind.
	b.TypeMeta = metav1.TypeMeta{}
	if err := yaml.UnmarshalStrict(data, b); err != nil {
		return nil, fmt.Errorf("failed to decode %s document: %w", Kind, err)
	}
	if b.APIVersion != GroupVersion.String() || b.Kind != Kind {
		return nil, fmt.Errorf("unsupported document %s, %s: expected %s, %s",
			b.APIVersion, b.Kind, GroupVersion.String(), Kind)
	}
	if err := b.Spec.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Encode renders b as YAML.
func Encode(b *VehicleBudget) ([]byte, error) {
	return yaml.Marshal(b)
}
