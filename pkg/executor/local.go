package executor

import (
	"io"
	"os"
	"os/exec"
	"path"
	"sync"
	"syscall"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Local provides the execution environment on the local machine via
// exec.Command. It runs the command as the current user.
type Local struct {
}

// NewLocal returns a Local instance.
func NewLocal() Local {
	return Local{}
}

// Name returns user-friendly name of executor.
func (l Local) Name() string {
	return "Local Executor"
}

// Execute runs the command given as input.
// The returned TaskHandle is able to stop & monitor the provisioned process.
func (l Local) Execute(command string) (TaskHandle, error) {
	log.Debug("Starting ", command)

	stdoutFile, stderrFile, err := createExecutorOutputFiles(command, "local")
	if err != nil {
		return nil, err
	}

	cmd := exec.Command("sh", "-c", command)
	// It is important to set additional Process Group ID for parent
	// process and his children to have ability to kill all the children
	// processes.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Stdout = stdoutFile
	cmd.Stderr = stderrFile

	if err := cmd.Start(); err != nil {
		outputDir := path.Dir(stdoutFile.Name())
		stdoutFile.Close()
		stderrFile.Close()
		os.RemoveAll(outputDir)
		return nil, errors.Wrapf(err, "could not start command %q", command)
	}

	log.Debug("Started with pid ", cmd.Process.Pid)

	handle := &localTaskHandle{
		cmdHandler: cmd,
		command:    command,
		stdoutFile: stdoutFile,
		stderrFile: stderrFile,
		done:       make(chan struct{}),
	}

	// Wait for the task in a goroutine; Status stays a non-blocking
	// check on the done channel.
	go func() {
		cmd.Wait()
		close(handle.done)

		log.Debug(
			"Ended ", command,
			" with output in file: ", stdoutFile.Name(),
			" with err output in file: ", stderrFile.Name())
	}()

	return handle, nil
}

// localTaskHandle implements the TaskHandle interface.
type localTaskHandle struct {
	cmdHandler *exec.Cmd
	command    string
	stdoutFile *os.File
	stderrFile *os.File

	// done is closed by the waiter goroutine once the process exited.
	done chan struct{}

	stopOnce sync.Once
	stopErr  error
}

// Status returns a state of the task. It never blocks.
func (handle *localTaskHandle) Status() TaskState {
	select {
	case <-handle.done:
		return TERMINATED
	default:
		return RUNNING
	}
}

// ExitCode returns a exitCode. If task is not terminated it returns error.
func (handle *localTaskHandle) ExitCode() (int, error) {
	if handle.Status() != TERMINATED {
		return 0, errors.New("task is not terminated")
	}

	waitStatus := handle.cmdHandler.ProcessState.Sys().(syscall.WaitStatus)
	if waitStatus.Exited() {
		return waitStatus.ExitStatus(), nil
	}
	// Task was terminated by a signal.
	return -int(waitStatus.Signal()), nil
}

// Stop terminates the local task.
func (handle *localTaskHandle) Stop() error {
	if handle.Status() == TERMINATED {
		return nil
	}

	handle.stopOnce.Do(func() {
		// We signal the entire process group.
		// The kill syscall interprets a negated PID N as the process
		// group N belongs to.
		log.Debug("Sending SIGTERM to PID ", -handle.cmdHandler.Process.Pid)
		err := syscall.Kill(-handle.cmdHandler.Process.Pid, syscall.SIGTERM)
		if err != nil {
			handle.stopErr = errors.Wrapf(err, "could not stop command %q", handle.command)
			return
		}
		<-handle.done
	})

	return handle.stopErr
}

// Wait blocks until the process terminates or the timeout elapses.
// Returns true when the process terminated before the timeout.
func (handle *localTaskHandle) Wait(timeout time.Duration) bool {
	if timeout == 0 {
		<-handle.done
		return true
	}

	select {
	case <-handle.done:
		return true
	case <-time.After(timeout):
		return false
	}
}

// StdoutFile returns a file handle to the task's stdout file.
func (handle *localTaskHandle) StdoutFile() (*os.File, error) {
	if _, err := os.Stat(handle.stdoutFile.Name()); err != nil {
		return nil, errors.Wrap(err, "stdout file is missing")
	}
	handle.stdoutFile.Seek(0, io.SeekStart)
	return handle.stdoutFile, nil
}

// StderrFile returns a file handle to the task's stderr file.
func (handle *localTaskHandle) StderrFile() (*os.File, error) {
	if _, err := os.Stat(handle.stderrFile.Name()); err != nil {
		return nil, errors.Wrap(err, "stderr file is missing")
	}
	handle.stderrFile.Seek(0, io.SeekStart)
	return handle.stderrFile, nil
}

// Clean closes the file handles to task's stdout and stderr files.
func (handle *localTaskHandle) Clean() error {
	if err := handle.stdoutFile.Close(); err != nil {
		return errors.Wrap(err, "could not close stdout file")
	}
	if err := handle.stderrFile.Close(); err != nil {
		return errors.Wrap(err, "could not close stderr file")
	}
	return nil
}

// EraseOutput removes task's stdout & stderr files and their directory.
func (handle *localTaskHandle) EraseOutput() error {
	outputDir := path.Dir(handle.stdoutFile.Name())
	if err := os.RemoveAll(outputDir); err != nil {
		return errors.Wrapf(err, "could not remove output directory %q", outputDir)
	}
	return nil
}

// Address returns address where task was located.
func (handle *localTaskHandle) Address() string {
	return "local"
}
