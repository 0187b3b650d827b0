// Package platform provides OS detection and the path conventions that go
// with each detected OS family.
package platform

import (
	"os"
	"runtime"
	"strings"
)

// OSNameEnv overrides the host-reported OS name when set.
const OSNameEnv = "HOSTBUD_OS_NAME"

// Family is the classification of a host operating system.
type Family int

const (
	Unknown Family = iota
	Windows
	MacOS
	Solaris
	Linux
	Unix
)

// indicators is evaluated top-down; the first indicator contained in the
// lower-cased OS name wins. The order is part of the contract.
var indicators = []struct {
	family    Family
	indicator string
}{
	{Windows, "win"},
	{MacOS, "mac"},
	{Linux, "linux"},
	{Unix, "unix"},
	{Solaris, "sunos"},
}

var familyNames = map[Family]string{
	Unknown: "UNKNOWN",
	Windows: "WINDOWS",
	MacOS:   "MACOS",
	Solaris: "SOLARIS",
	Linux:   "LINUX",
	Unix:    "UNIX",
}

func (f Family) String() string {
	if name, ok := familyNames[f]; ok {
		return name
	}
	return familyNames[Unknown]
}

// Indicator returns the lower-case substring used to detect f.
func (f Family) Indicator() string {
	for _, i := range indicators {
		if i.family == f {
			return i.indicator
		}
	}
	return ""
}

// Recognized reports whether f is one of the known desktop/server families.
func (f Family) Recognized() bool {
	return f != Unknown && familyNames[f] != ""
}

// Detect classifies an OS name such as "Windows 10" or "Mac OS X".
// Names matching no indicator yield Unknown.
func Detect(osName string) Family {
	name := strings.ToLower(osName)
	for _, i := range indicators {
		if strings.Contains(name, i.indicator) {
			return i.family
		}
	}
	return Unknown
}

// goosNames maps GOOS values to the OS names hosts conventionally report.
var goosNames = map[string]string{
	"windows":   "Windows",
	"darwin":    "Mac OS X",
	"linux":     "Linux",
	"android":   "Linux",
	"solaris":   "SunOS",
	"illumos":   "SunOS",
	"aix":       "AIX",
	"freebsd":   "FreeBSD",
	"openbsd":   "OpenBSD",
	"netbsd":    "NetBSD",
	"dragonfly": "DragonFly",
	"plan9":     "Plan 9",
}

// HostOSName returns the host-reported OS name. HOSTBUD_OS_NAME takes
// precedence so detection can be redirected without touching the host.
func HostOSName() string {
	if name := os.Getenv(OSNameEnv); name != "" {
		return name
	}
	if name, ok := goosNames[runtime.GOOS]; ok {
		return name
	}
	return runtime.GOOS
}

// Current detects the host family. It is re-evaluated on every call.
func Current() Family {
	return Detect(HostOSName())
}

// OS returns the operating system name (e.g., "darwin", "linux").
func OS() string {
	return runtime.GOOS
}

// Shell returns the user's shell from $SHELL, defaulting to /bin/sh.
func Shell() string {
	if s := os.Getenv("SHELL"); s != "" {
		return s
	}
	return "/bin/sh"
}
