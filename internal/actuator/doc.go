// Package actuator emits the outcome of a run.
//
// Two outputs are produced:
//
//  1. Metrics:
//     - Stage wet and propellant masses from the sizing path
//     - Liftoff and autosequence masses per species from the mass budget
//     - Run and failure counters labelled by phase and error kind
//
//  2. Reports:
//     - YAML or JSON rendering of a planner.Report or trade study
//     - Figures rounded half away from zero to a fixed number of decimals
//
// Metrics live in a private registry so that concurrent runs and tests do not
// share state. They are written as a node-exporter textfile or as Prometheus
// text exposition:
//
//	emitter := actuator.NewMetricsEmitter()
//	p := planner.New(oracle, planner.WithRecorder(emitter))
//	...
//	if err := emitter.WriteTextfile("/var/lib/node_exporter/propbudget.prom"); err != nil {
//	    return err
//	}
package actuator
