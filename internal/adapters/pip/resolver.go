// Package pip implements the dependency resolver, installer, and build
// frontend adapters on top of the environment's own pip toolchain.
package pip

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"go.trai.ch/pave/internal/core/domain"
	"go.trai.ch/pave/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.DependencyResolver = (*Resolver)(nil)

// Resolver implements ports.DependencyResolver by invoking a pip-tools
// style compile command: abstract specifiers on stdin, pinned
// "name==version" lines on stdout, diagnostics on stderr.
type Resolver struct {
	logger ports.Logger
	stderr io.Writer
}

// NewResolver creates a Resolver streaming diagnostics to the process stderr.
func NewResolver(logger ports.Logger) *Resolver {
	return &Resolver{logger: logger, stderr: os.Stderr}
}

// NewResolverWithStderr creates a Resolver with an explicit diagnostics sink.
func NewResolverWithStderr(logger ports.Logger, stderr io.Writer) *Resolver {
	return &Resolver{logger: logger, stderr: stderr}
}

// defaultArgv is the resolver command run inside the environment when the
// settings don't override it. The trailing "-" arguments read specifiers
// from stdin and write pins to stdout.
func defaultArgv(env *domain.Environment) []string {
	return []string{
		env.Python(), "-m", "piptools", "compile",
		"--quiet", "--no-header", "--strip-extras",
		"--output-file", "-", "-",
	}
}

// Resolve pins the given specifiers. The resolver's diagnostics pass through
// verbatim; its stdout is captured as the lock content.
func (r *Resolver) Resolve(ctx context.Context, env *domain.Environment, specifiers []string, opts domain.ResolveOptions) ([]domain.PinnedPackage, error) {
	argv := opts.Argv
	if len(argv) == 0 {
		if err := r.ensureResolver(ctx, env, opts); err != nil {
			return nil, err
		}
		argv = defaultArgv(env)
	}
	if opts.IndexURL != "" {
		argv = append(argv, "--index-url", opts.IndexURL)
	}

	//nolint:gosec // argv comes from trusted settings or the built-in default
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = strings.NewReader(strings.Join(specifiers, "\n") + "\n")
	cmd.Stderr = r.stderr

	output, err := cmd.Output()
	if err != nil {
		resErr := domain.Classify(domain.ErrResolutionFailed, err)
		return nil, zerr.With(resErr, "resolver", argv[0])
	}

	pins, err := ParsePins(output)
	if err != nil {
		return nil, err
	}
	if len(specifiers) > 0 && len(pins) == 0 {
		return nil, zerr.With(domain.ErrResolutionFailed, "reason", "resolver produced no pins")
	}
	return pins, nil
}

// ensureResolver bootstraps pip-tools into the environment on first use, the
// same way the tool bootstraps any collaborator it is about to invoke.
func (r *Resolver) ensureResolver(ctx context.Context, env *domain.Environment, opts domain.ResolveOptions) error {
	//nolint:gosec // interpreter path comes from the provisioned environment
	if err := exec.CommandContext(ctx, env.Python(), "-c", "import piptools").Run(); err == nil {
		return nil
	}

	r.logger.Info("installing resolver (pip-tools) into environment")
	args := []string{"-m", "pip", "install", "--quiet", "pip-tools"}
	if opts.IndexURL != "" {
		args = append(args, "--index-url", opts.IndexURL)
	}
	//nolint:gosec // interpreter path comes from the provisioned environment
	cmd := exec.CommandContext(ctx, env.Python(), args...)
	cmd.Stdout = r.stderr
	cmd.Stderr = r.stderr
	if err := cmd.Run(); err != nil {
		return zerr.With(domain.Classify(domain.ErrResolutionFailed, err), "reason", "resolver bootstrap failed")
	}
	return nil
}

// ParsePins parses resolver output: one "name==version" entry per logical
// line, with optional "--hash=..." tokens, comments and blank lines skipped.
// pip-compile emits hashes on backslash-continued lines, so continuations
// are joined before splitting into pins.
func ParsePins(output []byte) ([]domain.PinnedPackage, error) {
	var pins []domain.PinnedPackage
	for _, line := range logicalLines(string(bytes.TrimSpace(output))) {
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		name, version, ok := strings.Cut(fields[0], "==")
		if !ok {
			return nil, zerr.With(domain.ErrResolutionFailed, "line", line)
		}

		pin := domain.PinnedPackage{
			Name:    domain.NewInternedString(strings.ToLower(name)),
			Version: domain.NewInternedString(version),
		}
		for _, field := range fields[1:] {
			if hash, found := strings.CutPrefix(field, "--hash="); found {
				pin.Hash = hash
				break
			}
		}
		pins = append(pins, pin)
	}
	return pins, nil
}

// logicalLines splits resolver output into lines, merging a trailing
// backslash with the line that follows it.
func logicalLines(s string) []string {
	var lines []string
	var pending []string
	for line := range strings.SplitSeq(s, "\n") {
		trimmed := strings.TrimSpace(line)
		continued := strings.HasSuffix(trimmed, "\\")
		trimmed = strings.TrimSpace(strings.TrimSuffix(trimmed, "\\"))
		if trimmed != "" {
			pending = append(pending, trimmed)
		}
		if continued {
			continue
		}
		lines = append(lines, strings.Join(pending, " "))
		pending = pending[:0]
	}
	if len(pending) > 0 {
		lines = append(lines, strings.Join(pending, " "))
	}
	return lines
}
