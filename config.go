package main

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/thiremani/blockc/board"
	"github.com/thiremani/blockc/compiler"
	"github.com/xyproto/env/v2"
)

const OS_WINDOWS = "windows"

// config is read from the environment once per run. Command line flags
// are applied on top.
type config struct {
	CacheDir string
	Board    string
	StrLen   int
	NoCache  bool
}

func loadConfig() config {
	return config{
		CacheDir: defaultCacheDir(),
		Board:    env.Str("BLOCKC_BOARD", board.Default),
		StrLen:   env.Int("BLOCKC_STRLEN", compiler.DefaultStrLen),
		NoCache:  env.Bool("BLOCKC_NOCACHE"),
	}
}

// defaultCacheDir returns BLOCKC_CACHE if set, otherwise the per-user
// cache directory for windows, mac and linux.
func defaultCacheDir() string {
	if dir := env.Str("BLOCKC_CACHE"); dir != "" {
		return dir
	}

	homeDir, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case OS_WINDOWS:
		if localAppData := env.Str("LocalAppData"); localAppData != "" {
			return filepath.Join(localAppData, "blockc")
		}
		return filepath.Join(homeDir, "AppData", "Local", "blockc")

	case "darwin":
		return filepath.Join(homeDir, "Library", "Caches", "blockc")

	default: // Linux and others
		if xdg := env.Str("XDG_CACHE_HOME"); xdg != "" {
			return filepath.Join(xdg, "blockc")
		}
		return filepath.Join(homeDir, ".cache", "blockc")
	}
}
