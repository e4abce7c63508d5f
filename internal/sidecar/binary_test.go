package sidecar

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestBinaryName(t *testing.T) {
	tests := []struct {
		goos string
		want string
	}{
		{"windows", "server.exe"},
		{"linux", "server"},
		{"darwin", "server"},
		{"freebsd", "server"},
		{"", "server"},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			if got := BinaryName(tt.goos); got != tt.want {
				t.Errorf("BinaryName(%q) = %q, want %q", tt.goos, got, tt.want)
			}
			// Same input, same output
			if again := BinaryName(tt.goos); again != tt.want {
				t.Errorf("BinaryName(%q) not stable: %q", tt.goos, again)
			}
		})
	}
}

func TestExecutablePath(t *testing.T) {
	resourceDir := filepath.FromSlash("/app/resources")

	tests := []struct {
		goos string
		want string
	}{
		{"linux", filepath.Join(resourceDir, "bin", "server")},
		{"darwin", filepath.Join(resourceDir, "bin", "server")},
		{"windows", filepath.Join(resourceDir, "bin", "server.exe")},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			if got := ExecutablePath(resourceDir, tt.goos); got != tt.want {
				t.Errorf("ExecutablePath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEnvironment(t *testing.T) {
	t.Run("adds contract variables", func(t *testing.T) {
		env := Environment([]string{"HOME=/home/dbm", "PATH=/usr/bin"})

		want := []string{"HOME=/home/dbm", "PATH=/usr/bin", "PORT=8880", "ENV=desktop"}
		if strings.Join(env, "\n") != strings.Join(want, "\n") {
			t.Errorf("Environment() = %v, want %v", env, want)
		}
	})

	t.Run("overrides inherited values", func(t *testing.T) {
		env := Environment([]string{"PORT=3000", "ENV=production", "PORTABLE=1", "LANG=C"})

		counts := map[string]int{}
		for _, kv := range env {
			key, _, _ := strings.Cut(kv, "=")
			counts[key]++
			if kv == "PORT=3000" || kv == "ENV=production" {
				t.Errorf("inherited %q should have been replaced", kv)
			}
		}
		if counts["PORT"] != 1 || counts["ENV"] != 1 {
			t.Errorf("expected exactly one PORT and ENV, got %v", counts)
		}
		if counts["PORTABLE"] != 1 || counts["LANG"] != 1 {
			t.Errorf("unrelated variables must be kept, got %v", env)
		}
	})

	t.Run("empty base", func(t *testing.T) {
		env := Environment(nil)
		if len(env) != 2 || env[0] != "PORT=8880" || env[1] != "ENV=desktop" {
			t.Errorf("Environment(nil) = %v", env)
		}
	})

	t.Run("does not modify base", func(t *testing.T) {
		base := []string{"PORT=1", "A=b"}
		_ = Environment(base)
		if base[0] != "PORT=1" || base[1] != "A=b" {
			t.Errorf("base was modified: %v", base)
		}
	})
}
