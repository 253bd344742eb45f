// Package executor provides the execution environment for benchmarked
// commands. It launches a workload asynchronously and hands back a
// TaskHandle which can be polled, stopped and inspected without blocking
// the caller - the supervisor's sampling loop depends on that.
package executor

// Executor is responsible for creating execution environment for given workload.
// It returns a TaskHandle when the workload started gracefully.
// The workload is executed asynchronously.
type Executor interface {
	// Execute executes command on underlying platform.
	Execute(command string) (TaskHandle, error)
	// Name returns user-friendly name of executor.
	Name() string
}
