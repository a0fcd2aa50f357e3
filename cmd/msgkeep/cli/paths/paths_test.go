package paths

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheHome_EnvOverride(t *testing.T) {
	t.Setenv(CacheDirEnvVar, "/custom/cache")

	if got := CacheHome(); got != "/custom/cache" {
		t.Errorf("CacheHome() = %q, want %q", got, "/custom/cache")
	}
}

func TestDataDir_UnderCacheHome(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv(CacheDirEnvVar, tmpDir)

	want := filepath.Join(tmpDir, AppDirName)
	if got := DataDir(); got != want {
		t.Errorf("DataDir() = %q, want %q", got, want)
	}
}

func TestEnsureDataDir_CreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv(CacheDirEnvVar, tmpDir)

	dir, err := EnsureDataDir()
	if err != nil {
		t.Fatalf("EnsureDataDir() error = %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("stat %s: %v", dir, err)
	}
	if !info.IsDir() {
		t.Errorf("%s is not a directory", dir)
	}

	// Idempotent
	if _, err := EnsureDataDir(); err != nil {
		t.Errorf("second EnsureDataDir() error = %v", err)
	}
}

func TestDBAndLogPaths(t *testing.T) {
	t.Setenv(CacheDirEnvVar, "/cache")

	if got := DBPath(); !strings.HasSuffix(got, filepath.Join(AppDirName, DBFileName)) {
		t.Errorf("DBPath() = %q, want suffix %q", got, filepath.Join(AppDirName, DBFileName))
	}
	if got := LogPath(); !strings.HasSuffix(got, filepath.Join(AppDirName, LogFileName)) {
		t.Errorf("LogPath() = %q, want suffix %q", got, filepath.Join(AppDirName, LogFileName))
	}
}

func TestRepoRootOr_FallbackOutsideRepository(t *testing.T) {
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)
	ClearRepoRootCache()
	t.Cleanup(ClearRepoRootCache)

	if got := RepoRootOr("/fallback"); got != "/fallback" {
		t.Errorf("RepoRootOr() = %q, want fallback", got)
	}
}
