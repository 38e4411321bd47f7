// SPDX-License-Identifier: MIT
package build

import "testing"

func TestInitializeDevDefaults(t *testing.T) {
	Initialize()

	f := GetBuildFlags()
	if f.Name != "spekgram" {
		t.Errorf("name = %q, want spekgram", f.Name)
	}
	if f.Version != "dev" {
		t.Errorf("version = %q, want dev", f.Version)
	}
}

func TestInitializeCopiesLdflags(t *testing.T) {
	buildVersion = "1.2.3"
	buildCommit = "abc1234"
	t.Cleanup(func() {
		buildVersion = ""
		buildCommit = ""
		buildFlags.Version = "dev"
		buildFlags.Commit = "unknown"
	})

	Initialize()

	f := GetBuildFlags()
	if f.Version != "1.2.3" {
		t.Errorf("version = %q, want 1.2.3", f.Version)
	}
	if f.Commit != "abc1234" {
		t.Errorf("commit = %q, want abc1234", f.Commit)
	}
}
