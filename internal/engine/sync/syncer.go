// Package sync implements the environment sync sequence: resolve the
// runtime, provision the environment, regenerate stale locks, converge the
// installed package set.
package sync

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"go.trai.ch/pave/internal/core/domain"
	"go.trai.ch/pave/internal/core/ports"
	"go.trai.ch/zerr"
)

// Options tune a single sync run.
type Options struct {
	// ForceLock regenerates every requested group's lock even when its
	// fingerprint still matches the manifest.
	ForceLock bool
}

// Result reports what a sync run did.
type Result struct {
	// Env is the ready environment.
	Env *domain.Environment

	// Version is the interpreter version the run resolved.
	Version domain.ResolvedVersion

	// Regenerated lists the groups whose locks were rebuilt this run.
	Regenerated []domain.GroupName

	// Installed and Removed count the package set changes applied.
	Installed int
	Removed   int
}

// Syncer drives the sync sequence against the injected collaborators.
type Syncer struct {
	versions    ports.VersionResolver
	provisioner ports.Provisioner
	resolver    ports.DependencyResolver
	installer   ports.Installer
	locks       ports.LockStore
	tracer      ports.Tracer
	logger      ports.Logger
}

// New creates a Syncer.
func New(
	versions ports.VersionResolver,
	provisioner ports.Provisioner,
	resolver ports.DependencyResolver,
	installer ports.Installer,
	locks ports.LockStore,
	tracer ports.Tracer,
	logger ports.Logger,
) *Syncer {
	return &Syncer{
		versions:    versions,
		provisioner: provisioner,
		resolver:    resolver,
		installer:   installer,
		locks:       locks,
		tracer:      tracer,
		logger:      logger,
	}
}

// EnsureReady brings the project's environment to a ready state covering the
// requested groups plus the default group. Every step is idempotent, so a
// second run over an unchanged project performs no external work.
func (s *Syncer) EnsureReady(ctx context.Context, project *domain.Project, groups []domain.GroupName, opts Options) (*Result, error) {
	plan, err := planGroups(project.Manifest, groups)
	if err != nil {
		return nil, err
	}
	s.tracer.EmitPlan(ctx, groupStrings(plan))

	version, err := s.resolveRuntime(ctx, project)
	if err != nil {
		return nil, failStep(err, "resolve-runtime")
	}

	env, err := s.provision(ctx, project, version)
	if err != nil {
		return nil, failStep(err, "provision")
	}

	result := &Result{Env: env, Version: version}

	locks := make([]*domain.LockFile, 0, len(plan))
	for _, group := range plan {
		lock, regenerated, err := s.lockGroup(ctx, project, env, group, opts)
		if err != nil {
			return nil, failStep(err, "lock")
		}
		if regenerated {
			result.Regenerated = append(result.Regenerated, group)
		}
		locks = append(locks, lock)
	}

	union, err := domain.UnionPins(locks)
	if err != nil {
		return nil, failStep(err, "lock")
	}

	if err := s.converge(ctx, env, union, project.Settings.InstallOptions(), result); err != nil {
		return nil, failStep(err, "install")
	}
	return result, nil
}

// Lock regenerates lock files without touching the installed set. With
// opts.ForceLock unset only stale groups are recompiled.
func (s *Syncer) Lock(ctx context.Context, project *domain.Project, groups []domain.GroupName, opts Options) (*Result, error) {
	plan, err := planGroups(project.Manifest, groups)
	if err != nil {
		return nil, err
	}
	s.tracer.EmitPlan(ctx, groupStrings(plan))

	version, err := s.resolveRuntime(ctx, project)
	if err != nil {
		return nil, failStep(err, "resolve-runtime")
	}
	env, err := s.provision(ctx, project, version)
	if err != nil {
		return nil, failStep(err, "provision")
	}

	result := &Result{Env: env, Version: version}
	for _, group := range plan {
		_, regenerated, err := s.lockGroup(ctx, project, env, group, opts)
		if err != nil {
			return nil, failStep(err, "lock")
		}
		if regenerated {
			result.Regenerated = append(result.Regenerated, group)
		}
	}
	return result, nil
}

func (s *Syncer) resolveRuntime(ctx context.Context, project *domain.Project) (domain.ResolvedVersion, error) {
	ctx, span := s.tracer.Start(ctx, "resolve runtime")
	defer span.End()

	version, err := s.versions.Resolve(ctx, project)
	if err != nil {
		span.RecordError(err)
		return domain.ResolvedVersion{}, err
	}
	span.SetAttribute("version", version.Version)
	span.SetAttribute("source", string(version.Source))
	return version, nil
}

func (s *Syncer) provision(ctx context.Context, project *domain.Project, version domain.ResolvedVersion) (*domain.Environment, error) {
	ctx, span := s.tracer.Start(ctx, "provision environment")
	defer span.End()

	env, err := s.provisioner.Ensure(ctx, project.Root, version)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return env, nil
}

// lockGroup returns the group's current lock, regenerating it when the
// manifest inputs drifted from the stored fingerprint. The boolean reports
// whether the resolver actually ran.
func (s *Syncer) lockGroup(ctx context.Context, project *domain.Project, env *domain.Environment, group domain.GroupName, opts Options) (*domain.LockFile, bool, error) {
	ctx, span := s.tracer.Start(ctx, fmt.Sprintf("lock %s", group))
	defer span.End()

	specifiers, _ := project.Manifest.Group(group)
	resolveOpts := project.Settings.ResolveOptions()
	fingerprint := domain.ComputeFingerprint(group, specifiers, resolveOpts)

	existing, err := s.locks.Read(project.Root, group)
	if err != nil {
		span.RecordError(err)
		return nil, false, err
	}
	if existing != nil && existing.Fingerprint == fingerprint && !opts.ForceLock {
		span.Cached()
		return existing, false, nil
	}

	pins, err := s.resolver.Resolve(ctx, env, specifiers, resolveOpts)
	if err != nil {
		span.RecordError(err)
		return nil, false, err
	}

	lock := domain.NewLockFile(group, fingerprint, pins)
	if err := s.locks.Write(project.Root, lock); err != nil {
		span.RecordError(err)
		return nil, false, err
	}
	s.logger.Info(fmt.Sprintf("locked group %s (%d pins)", group, len(lock.Pins)))
	return lock, true, nil
}

// converge diffs the installed set against the union of the locked pins and
// applies the difference: extras are uninstalled, missing or drifted entries
// reinstalled at the pinned version.
func (s *Syncer) converge(ctx context.Context, env *domain.Environment, union []domain.PinnedPackage, opts domain.InstallOptions, result *Result) error {
	ctx, span := s.tracer.Start(ctx, "install")
	defer span.End()

	installed, err := s.installer.Installed(ctx, env)
	if err != nil {
		span.RecordError(err)
		return err
	}

	wanted := make(map[string]domain.PinnedPackage, len(union))
	for _, pin := range union {
		wanted[pin.Name.String()] = pin
	}

	var extras []string
	current := make(map[string]string, len(installed))
	for _, pin := range installed {
		name := pin.Name.String()
		current[name] = pin.Version.String()
		if _, ok := wanted[name]; !ok {
			extras = append(extras, name)
		}
	}
	slices.Sort(extras)

	var missing []domain.PinnedPackage
	for _, pin := range union {
		if current[pin.Name.String()] != pin.Version.String() {
			missing = append(missing, pin)
		}
	}

	if len(extras) == 0 && len(missing) == 0 {
		span.Cached()
		return nil
	}

	if len(extras) > 0 {
		if err := s.installer.Uninstall(ctx, env, extras); err != nil {
			span.RecordError(err)
			return err
		}
	}
	if len(missing) > 0 {
		if err := s.installer.Install(ctx, env, missing, opts); err != nil {
			span.RecordError(err)
			return err
		}
	}

	result.Installed = len(missing)
	result.Removed = len(extras)
	return nil
}

// planGroups validates the requested groups against the manifest and returns
// the sync plan: the default group first, then the requested groups sorted,
// without duplicates.
func planGroups(manifest *domain.Manifest, groups []domain.GroupName) ([]domain.GroupName, error) {
	plan := []domain.GroupName{domain.DefaultGroup}
	seen := map[domain.GroupName]bool{domain.DefaultGroup: true}

	sorted := slices.Clone(groups)
	slices.Sort(sorted)
	for _, group := range sorted {
		if seen[group] {
			continue
		}
		if _, ok := manifest.Group(group); !ok {
			unknown := zerr.With(domain.ErrUnknownGroup, "group", string(group))
			return nil, zerr.With(unknown, "declared", fmt.Sprintf("%v", manifest.GroupNames()))
		}
		seen[group] = true
		plan = append(plan, group)
	}
	return plan, nil
}

func groupStrings(groups []domain.GroupName) []string {
	names := make([]string, len(groups))
	for i, group := range groups {
		names[i] = string(group)
	}
	return names
}

func failStep(err error, step string) error {
	return zerr.With(domain.Classify(domain.ErrSyncFailed, err), "step", step)
}

// EnvPath returns the environment directory for a project root without
// provisioning anything. Doctor-style commands use it for reporting.
func EnvPath(root string) string {
	return filepath.Join(root, domain.EnvDirName)
}
