package app

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"go.trai.ch/pave/internal/core/domain"
	syncengine "go.trai.ch/pave/internal/engine/sync"
)

// CheckStatus classifies a doctor probe outcome.
type CheckStatus string

const (
	// StatusOK means the probe found a healthy state.
	StatusOK CheckStatus = "ok"
	// StatusStale means the probe found a state sync would fix.
	StatusStale CheckStatus = "stale"
	// StatusMissing means the probed collaborator or artifact is absent.
	StatusMissing CheckStatus = "missing"
)

// Check is one doctor probe result.
type Check struct {
	Name   string
	Status CheckStatus
	Detail string
}

// DoctorReport collects the probe results for a project.
type DoctorReport struct {
	Project string
	Root    string
	Checks  []Check
}

// Healthy reports whether every probe came back ok.
func (r *DoctorReport) Healthy() bool {
	for _, check := range r.Checks {
		if check.Status != StatusOK {
			return false
		}
	}
	return true
}

// Doctor probes the project's collaborators and artifacts without mutating
// anything. Probes run concurrently; none of them can fail the report, they
// only classify what they find.
func (a *App) Doctor(ctx context.Context, dir string) (*DoctorReport, error) {
	project, err := a.LoadProject(dir)
	if err != nil {
		return nil, err
	}

	groups := project.Manifest.GroupNames()
	checks := make([]Check, 2+len(groups))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		checks[0] = a.checkRuntime(ctx, project)
		return nil
	})
	g.Go(func() error {
		checks[1] = checkEnvironment(project.Root)
		return nil
	})
	for i, group := range groups {
		g.Go(func() error {
			checks[2+i] = a.checkLock(project, group)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &DoctorReport{
		Project: project.Manifest.Name,
		Root:    project.Root,
		Checks:  checks,
	}, nil
}

func (a *App) checkRuntime(ctx context.Context, project *domain.Project) Check {
	check := Check{Name: "runtime"}
	version, err := a.versions.Resolve(ctx, project)
	if err != nil {
		check.Status = StatusMissing
		check.Detail = err.Error()
		return check
	}
	check.Status = StatusOK
	check.Detail = fmt.Sprintf("%s (%s, %s)", version.Version, version.Source, version.Executable)
	return check
}

func checkEnvironment(root string) Check {
	check := Check{Name: "environment"}
	path := syncengine.EnvPath(root)
	if info, err := os.Stat(path); err != nil || !info.IsDir() {
		check.Status = StatusMissing
		check.Detail = path + " does not exist; run sync"
		return check
	}
	check.Status = StatusOK
	check.Detail = path
	return check
}

func (a *App) checkLock(project *domain.Project, group domain.GroupName) Check {
	check := Check{Name: "lock " + string(group)}

	specifiers, _ := project.Manifest.Group(group)
	fingerprint := domain.ComputeFingerprint(group, specifiers, project.Settings.ResolveOptions())

	lock, err := a.locks.Read(project.Root, group)
	switch {
	case err != nil:
		check.Status = StatusMissing
		check.Detail = err.Error()
	case lock == nil:
		check.Status = StatusMissing
		check.Detail = "no lock file; run lock or sync"
	case lock.Fingerprint != fingerprint:
		check.Status = StatusStale
		check.Detail = "manifest changed since last lock; run sync"
	default:
		check.Status = StatusOK
		check.Detail = fmt.Sprintf("%d pins", len(lock.Pins))
	}
	return check
}
