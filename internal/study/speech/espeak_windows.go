//go:build windows

package speech

import "fmt"

// Windows has no SIGSTOP/SIGCONT, so pause kills the process and resume
// reports that it cannot continue.
func (e *ESpeakEngine) pauseProcess() error {
	if e.cmd.Process != nil {
		return e.cmd.Process.Kill()
	}
	return fmt.Errorf("no process to pause")
}

func (e *ESpeakEngine) resumeProcess() error {
	return fmt.Errorf("resume not supported on Windows - process was terminated")
}
