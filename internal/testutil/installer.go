package testutil

import "github.com/dyluth/repostage/pkg/maven"

// RecordingInstaller counts installs per artifact identity and delegates to an
// underlying installer (maven.DefaultInstaller when nil).
type RecordingInstaller struct {
	Delegate maven.Installer

	calls map[string]int
	order []string
}

// Install records the call and delegates.
func (r *RecordingInstaller) Install(file string, artifact *maven.Artifact, repo *maven.Repository) error {
	if r.calls == nil {
		r.calls = make(map[string]int)
	}
	r.calls[artifact.ID()]++
	r.order = append(r.order, artifact.ID())

	delegate := r.Delegate
	if delegate == nil {
		delegate = maven.NewInstaller()
	}
	return delegate.Install(file, artifact, repo)
}

// Calls returns how many times id was installed.
func (r *RecordingInstaller) Calls(id string) int {
	return r.calls[id]
}

// Total returns the number of install calls.
func (r *RecordingInstaller) Total() int {
	return len(r.order)
}

// Order returns the identities in install order.
func (r *RecordingInstaller) Order() []string {
	return append([]string(nil), r.order...)
}
