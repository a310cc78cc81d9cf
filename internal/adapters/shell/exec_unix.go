//go:build unix

package shell

import (
	"os"
	"os/exec"
	"time"
)

// configureProcAttr arranges a graceful stop on context cancellation: the
// child gets SIGINT first and a hard kill only after the wait delay.
func configureProcAttr(cmd *exec.Cmd) {
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = 5 * time.Second
}
