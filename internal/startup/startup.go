// Package startup registers the surface to launch at login.
package startup

import (
	"fmt"
	"html"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	appLabel = "com.pixpmusic.gopher-surface"
	appName  = "GopherSurface"
)

// Entry is the command launched at login
type Entry struct {
	Exec string
	Args []string
}

func currentEntry(args []string) (Entry, error) {
	execPath, err := os.Executable()
	if err != nil {
		return Entry{}, err
	}
	return Entry{Exec: execPath, Args: args}, nil
}

// Enable registers the running executable, with args, to launch at login
func Enable(args ...string) error {
	e, err := currentEntry(args)
	if err != nil {
		return err
	}
	switch runtime.GOOS {
	case "darwin":
		return writeFile(macOSPlistPath(), macOSPlist(e))
	case "linux":
		return writeFile(linuxDesktopPath(), linuxDesktopEntry(e))
	case "windows":
		return enableWindows(e)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

// Disable removes the login registration
func Disable() error {
	switch runtime.GOOS {
	case "darwin":
		return removeFile(macOSPlistPath())
	case "linux":
		return removeFile(linuxDesktopPath())
	case "windows":
		return disableWindows()
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

// IsEnabled checks if the application is registered for startup
func IsEnabled() bool {
	switch runtime.GOOS {
	case "darwin":
		return exists(macOSPlistPath())
	case "linux":
		return exists(linuxDesktopPath())
	case "windows":
		return exec.Command("reg", "query", windowsRegistryKey, "/v", appName).Run() == nil
	default:
		return false
	}
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}

func removeFile(path string) error {
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil // Already disabled
	}
	return err
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// --- macOS ---

func macOSPlistPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, "Library", "LaunchAgents", appLabel+".plist")
}

func macOSPlist(e Entry) string {
	var args strings.Builder
	for _, a := range append([]string{e.Exec}, e.Args...) {
		fmt.Fprintf(&args, "        <string>%s</string>\n", html.EscapeString(a))
	}
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
    <key>Label</key>
    <string>%s</string>
    <key>ProgramArguments</key>
    <array>
%s    </array>
    <key>RunAtLoad</key>
    <true/>
</dict>
</plist>
`, appLabel, args.String())
}

// --- Linux ---

func linuxDesktopPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "autostart", "gopher-surface.desktop")
}

func linuxDesktopEntry(e Entry) string {
	return fmt.Sprintf(`[Desktop Entry]
Type=Application
Name=%s
Exec=%s
Hidden=false
NoDisplay=false
X-GNOME-Autostart-enabled=true
`, appName, commandLine(e))
}

// --- Windows ---

const windowsRegistryKey = `HKCU\Software\Microsoft\Windows\CurrentVersion\Run`

func enableWindows(e Entry) error {
	return exec.Command("reg", "add", windowsRegistryKey,
		"/v", appName,
		"/t", "REG_SZ",
		"/d", commandLine(e),
		"/f").Run()
}

func disableWindows() error {
	output, err := exec.Command("reg", "delete", windowsRegistryKey, "/v", appName, "/f").CombinedOutput()
	// Ignore error if the key doesn't exist
	if err != nil && !strings.Contains(string(output), "unable to find the specified registry key or value") {
		return err
	}
	return nil
}

// commandLine quotes arguments containing spaces
func commandLine(e Entry) string {
	parts := make([]string, 0, len(e.Args)+1)
	for _, a := range append([]string{e.Exec}, e.Args...) {
		if strings.ContainsAny(a, " \t") {
			a = `"` + a + `"`
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}
