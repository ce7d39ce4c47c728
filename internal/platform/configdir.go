package platform

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

var errNoConfigHome = errors.New("get config dir: no config home")

// ConfigDir returns the per-application configuration directory under the
// XDG config home ($HOME/.config when XDG_CONFIG_HOME is unset).
func ConfigDir(appName string) (string, error) {
	// Pick up environment changes made since start-up.
	xdg.Reload()
	if xdg.ConfigHome == "" {
		return "", errNoConfigHome
	}
	return filepath.Join(xdg.ConfigHome, dirName(appName)), nil
}

func dirName(appName string) string {
	name := strings.TrimSpace(appName)
	if name == "" {
		name = "stopwatch"
	}
	return strings.ReplaceAll(name, string(filepath.Separator), "-")
}
