// Package shell provides the shell executor adapter.
package shell

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.trai.ch/pave/internal/core/domain"
	"go.trai.ch/pave/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Executor = (*Executor)(nil)

// Executor implements ports.Executor using os/exec.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger: logger,
	}
}

// Execute runs program with args inside the environment. The environment's
// bin directory is prepended to PATH and VIRTUAL_ENV is set, matching what
// an interactive activation script would do. Stdio passes through live so
// interactive programs (REPLs, debuggers) work unchanged.
func (e *Executor) Execute(ctx context.Context, env *domain.Environment, program string, args []string) error {
	cmdEnv := activatedEnvironment(os.Environ(), env)

	// Resolve against the activated PATH, not the parent's: the whole point
	// is that "python" means the environment's interpreter.
	executable := program
	if !filepath.IsAbs(program) && !strings.ContainsRune(program, os.PathSeparator) {
		lp, err := lookPath(program, cmdEnv)
		if err != nil {
			notFound := zerr.Wrap(err, "could not find executable")
			return zerr.With(notFound, "program", program)
		}
		executable = lp
	}

	cmd := exec.CommandContext(ctx, executable, args...) //nolint:gosec // user provided command
	if len(cmd.Args) > 0 {
		cmd.Args[0] = program
	}
	cmd.Env = cmdEnv
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	configureProcAttr(cmd)

	e.logger.Info("exec " + program)
	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return &domain.CommandExitError{Program: program, Code: exitErr.ExitCode()}
		}
		failed := zerr.Wrap(err, "command failed")
		return zerr.With(failed, "program", program)
	}
	return nil
}

// activatedEnvironment merges the parent environment with the environment
// activation variables. PATH gets the bin directory prepended; a previous
// activation's VIRTUAL_ENV is replaced.
func activatedEnvironment(sysEnv []string, env *domain.Environment) []string {
	envMap := make(map[string]string, len(sysEnv))
	keys := make([]string, 0, len(sysEnv))
	for _, entry := range sysEnv {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if _, seen := envMap[k]; !seen {
			keys = append(keys, k)
		}
		envMap[k] = v
	}

	binDir := env.BinDir()
	if sysPath, exists := envMap["PATH"]; exists && sysPath != "" {
		envMap["PATH"] = binDir + string(os.PathListSeparator) + sysPath
	} else {
		envMap["PATH"] = binDir
		keys = append(keys, "PATH")
	}
	if _, seen := envMap["VIRTUAL_ENV"]; !seen {
		keys = append(keys, "VIRTUAL_ENV")
	}
	envMap["VIRTUAL_ENV"] = env.Root

	result := make([]string, 0, len(keys))
	for _, k := range keys {
		result = append(result, k+"="+envMap[k])
	}
	return result
}

// lookPath searches for an executable in the directories named by the PATH
// entry of env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
