package dataset

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEnvVarName(t *testing.T) {
	tests := []struct {
		appName string
		suffix  string
		want    string
	}{
		{"t2p", "DATA_DIR", "T2P_DATA_DIR"},
		{"t2p", "LABEL_FILE", "T2P_LABEL_FILE"},
		{"MyApp", "CACHE_DIR", "MYAPP_CACHE_DIR"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := envVarName(tt.appName, tt.suffix)
			if got != tt.want {
				t.Errorf("envVarName(%q, %q) = %q, want %q", tt.appName, tt.suffix, got, tt.want)
			}
		})
	}
}

func TestNewStorage(t *testing.T) {
	t.Run("explicit config", func(t *testing.T) {
		dataDir := t.TempDir()
		cacheDir := t.TempDir()

		s, err := newStorage(Config{
			AppName:   "testapp",
			DataDir:   dataDir,
			LabelFile: "labels.csv",
			CacheDir:  cacheDir,
		})
		if err != nil {
			t.Fatalf("newStorage() error = %v", err)
		}

		if s.dataRoot() != dataDir {
			t.Errorf("dataRoot() = %q, want %q", s.dataRoot(), dataDir)
		}
		if s.labelFilePath() != "labels.csv" {
			t.Errorf("labelFilePath() = %q, want labels.csv", s.labelFilePath())
		}
		if got, want := s.cacheDBPath(), filepath.Join(cacheDir, cacheDBName); got != want {
			t.Errorf("cacheDBPath() = %q, want %q", got, want)
		}
	})

	t.Run("missing label file config", func(t *testing.T) {
		_, err := newStorage(Config{AppName: "testnolabel", CacheDir: t.TempDir()})
		if err == nil {
			t.Error("newStorage() error = nil, want error for missing label file")
		}
	})

	t.Run("default data dir", func(t *testing.T) {
		s, err := newStorage(Config{
			AppName:   "testdefault",
			LabelFile: "labels.csv",
			CacheDir:  t.TempDir(),
		})
		if err != nil {
			t.Fatalf("newStorage() error = %v", err)
		}
		if s.dataRoot() != DefaultDataDir {
			t.Errorf("dataRoot() = %q, want %q", s.dataRoot(), DefaultDataDir)
		}
	})
}

func TestNewStorageWithEnvVars(t *testing.T) {
	dataDir := t.TempDir()
	labelFile := filepath.Join(t.TempDir(), "env_labels.csv")
	cacheDir := t.TempDir()

	os.Setenv("TESTENVAPP_DATA_DIR", dataDir)
	os.Setenv("TESTENVAPP_LABEL_FILE", labelFile)
	os.Setenv("TESTENVAPP_CACHE_DIR", cacheDir)
	defer func() {
		os.Unsetenv("TESTENVAPP_DATA_DIR")
		os.Unsetenv("TESTENVAPP_LABEL_FILE")
		os.Unsetenv("TESTENVAPP_CACHE_DIR")
	}()

	cfg := Config{
		AppName:   "testenvapp",
		DataDir:   "/should/be/ignored",
		LabelFile: "/also/ignored.csv",
		CacheDir:  "/ignored/too",
	}

	s, err := newStorage(cfg)
	if err != nil {
		t.Fatalf("newStorage() error = %v", err)
	}

	if s.dataRoot() != dataDir {
		t.Errorf("dataRoot() = %q, want %q (env var should take priority)", s.dataRoot(), dataDir)
	}
	if s.labelFilePath() != labelFile {
		t.Errorf("labelFilePath() = %q, want %q (env var should take priority)", s.labelFilePath(), labelFile)
	}
	if got, want := s.cacheDBPath(), filepath.Join(cacheDir, cacheDBName); got != want {
		t.Errorf("cacheDBPath() = %q, want %q (env var should take priority)", got, want)
	}
}

func TestImagePath(t *testing.T) {
	s := &storage{dataDir: filepath.Join("some", "data")}

	got := s.imagePath("wikiart/style/a.jpg")
	want := filepath.Join("some", "data", "wikiart", "style", "a.jpg")
	if got != want {
		t.Errorf("imagePath() = %q, want %q", got, want)
	}
}

func TestEnsureDir(t *testing.T) {
	s := &storage{}
	path := filepath.Join(t.TempDir(), "a", "b", "c")

	if err := s.ensureDir(path); err != nil {
		t.Fatalf("ensureDir() error = %v", err)
	}

	fi, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat after ensureDir: %v", err)
	}
	if !fi.IsDir() {
		t.Error("ensureDir created a non-directory")
	}
}
