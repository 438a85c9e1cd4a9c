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

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/vehicle-design/propbudget/internal/budget"
	"github.com/vehicle-design/propbudget/internal/logging"
)

// Exit codes.
const (
	exitFailure = 1
	// exitWarning means the report was written but a load figure is negative.
	exitWarning = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCommand().ExecuteContext(ctx)
	stop()
	if err == nil {
		return
	}
	if budget.IsWarning(err) {
		logging.Log().Info("Load budget is negative", "error", err.Error())
		os.Exit(exitWarning)
	}
	logging.Log().Error(err, "propbudget failed")
	os.Exit(exitFailure)
}
