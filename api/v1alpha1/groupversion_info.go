/*
Copyright 2026 The propbudget Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package v1alpha1 contains the VehicleBudget document, a vehicle
// configuration together with the last computed report.
package v1alpha1

import (
	"k8s.io/apimachinery/pkg/runtime/schema"
)

var (
	// GroupVersion is the group and version of the documents in this package.
	GroupVersion = schema.GroupVersion{Group: "propbudget.vehicle-design.io", Version: "v1alpha1"}
)

// Kind of the VehicleBudget document.
const Kind = "VehicleBudget"
