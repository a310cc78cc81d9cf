//go:build windows

package shell

import (
	"os/exec"
	"time"
)

// configureProcAttr keeps the default hard kill on Windows, where there is
// no portable interrupt to deliver, but still bounds the wait.
func configureProcAttr(cmd *exec.Cmd) {
	cmd.WaitDelay = 5 * time.Second
}
