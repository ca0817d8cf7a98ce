// SPDX-License-Identifier: MPL-2.0

package config

import "sync"

var (
	overrideMu   sync.RWMutex
	dirOverride  string
	fileOverride string
)

// SetConfigDirOverride redirects ConfigDir for the duration of a test.
// Call ResetConfigDirOverride when done.
func SetConfigDirOverride(dir string) {
	overrideMu.Lock()
	defer overrideMu.Unlock()
	dirOverride = dir
}

// ResetConfigDirOverride restores the platform config directory.
func ResetConfigDirOverride() {
	overrideMu.Lock()
	defer overrideMu.Unlock()
	dirOverride = ""
}

func configDirOverride() string {
	overrideMu.RLock()
	defer overrideMu.RUnlock()
	return dirOverride
}

// SetConfigFilePathOverride points Load at an explicit config file,
// bypassing the config directory lookup. Used by the --config flag.
func SetConfigFilePathOverride(path string) {
	overrideMu.Lock()
	defer overrideMu.Unlock()
	fileOverride = path
}

// ResetConfigFilePathOverride restores the default config file lookup.
func ResetConfigFilePathOverride() {
	overrideMu.Lock()
	defer overrideMu.Unlock()
	fileOverride = ""
}

func configFilePathOverride() string {
	overrideMu.RLock()
	defer overrideMu.RUnlock()
	return fileOverride
}
