package files

import (
	"path/filepath"
	"testing"
)

func TestResolveBasePathHonorsLiftlogHome(t *testing.T) {
	tmp := t.TempDir()
	custom := filepath.Join(tmp, "custom-root")

	t.Setenv(HomeEnvVar, custom)

	got, err := ResolveBasePath()
	if err != nil {
		t.Fatalf("ResolveBasePath() error = %v", err)
	}
	if got != custom {
		t.Fatalf("ResolveBasePath() = %q, want %q", got, custom)
	}
}

func TestResolveBasePathExpandsTilde(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(HomeEnvVar, "~/lifts")

	got, err := ResolveBasePath()
	if err != nil {
		t.Fatalf("ResolveBasePath() error = %v", err)
	}

	want := filepath.Join(home, "lifts")
	if got != want {
		t.Fatalf("ResolveBasePath() = %q, want %q", got, want)
	}
}

func TestResolveBasePathDefaultsNextToBinary(t *testing.T) {
	t.Setenv(HomeEnvVar, "")

	root := t.TempDir()
	bin := filepath.Join(root, "scripts", "liftlog")

	original := executable
	executable = func() (string, error) { return bin, nil }
	t.Cleanup(func() { executable = original })

	got, err := ResolveBasePath()
	if err != nil {
		t.Fatalf("ResolveBasePath() error = %v", err)
	}

	want := filepath.Join(root, DefaultDirName)
	if filepath.Clean(got) != want {
		t.Fatalf("ResolveBasePath() = %q, want %q", got, want)
	}
}
