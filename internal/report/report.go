// Package report gathers the platform conventions of a host into a snapshot
// and renders it for display.
// Host details are best-effort: individual failures produce empty fields, never errors.
package report

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/matishsiao/goInfo"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/hpkotak/hostbud/internal/log"
	"github.com/hpkotak/hostbud/internal/platform"
)

// Snapshot holds everything hostbud reports about a platform.
type Snapshot struct {
	OSName             string `yaml:"os_name"`
	Family             string `yaml:"family"`
	CurrentDirectory   string `yaml:"current_directory"`
	ParentDirectory    string `yaml:"parent_directory"`
	PathSeparator      string `yaml:"path_separator"`
	ExtensionSeparator string `yaml:"extension_separator"`
	PathListSeparator  string `yaml:"path_list_separator"`
	DefaultSearchPath  string `yaml:"default_search_path"`
	RootPath           string `yaml:"root_path"`
	LineSeparator      string `yaml:"line_separator"`
	Host               Host   `yaml:"host"`
}

// Host describes the machine hostbud runs on, independent of OSName.
type Host struct {
	GOOS     string `yaml:"goos"`
	GOARCH   string `yaml:"goarch"`
	Shell    string `yaml:"shell"`
	Kernel   string `yaml:"kernel,omitempty"`
	Core     string `yaml:"core,omitempty"`
	Platform string `yaml:"platform,omitempty"`
	Hostname string `yaml:"hostname,omitempty"`
	CPUs     int    `yaml:"cpus,omitempty"`
}

// hostInfoFn is injectable for testing.
var hostInfoFn = goInfo.GetInfo

// Gather builds the snapshot for the family detected from osName.
// An empty osName falls back to the host-reported name.
func Gather(osName string) Snapshot {
	if osName == "" {
		osName = platform.HostOSName()
	}
	f := platform.Detect(osName)

	return Snapshot{
		OSName:             osName,
		Family:             f.String(),
		CurrentDirectory:   f.CurrentDirectory(),
		ParentDirectory:    f.ParentDirectory(),
		PathSeparator:      platform.PathSeparator(),
		ExtensionSeparator: f.ExtensionSeparator(),
		PathListSeparator:  platform.PathListSeparator(),
		DefaultSearchPath:  f.DefaultSearchPath(),
		RootPath:           f.RootPath(),
		LineSeparator:      platform.LineSeparator(),
		Host:               gatherHost(),
	}
}

func gatherHost() Host {
	h := Host{
		GOOS:   platform.OS(),
		GOARCH: runtime.GOARCH,
		Shell:  platform.Shell(),
	}

	info, err := hostInfoFn()
	if err != nil {
		log.L().Debug("gathering host info", zap.Error(err))
		return h
	}
	h.Kernel = info.Kernel
	h.Core = info.Core
	h.Platform = info.Platform
	h.Hostname = info.Hostname
	h.CPUs = info.CPUs
	return h
}

// Format renders the snapshot as text. The first seven lines follow the
// classic report order: family, current directory, parent directory,
// separator, extension separator, path-list separator, search path.
func (s Snapshot) Format() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Family: %s\n", color.New(color.FgCyan, color.Bold).Sprint(s.Family))
	fmt.Fprintf(&b, "Current directory: %s\n", s.CurrentDirectory)
	fmt.Fprintf(&b, "Parent directory: %s\n", s.ParentDirectory)
	fmt.Fprintf(&b, "Path separator: %s\n", s.PathSeparator)
	fmt.Fprintf(&b, "Extension separator: %s\n", s.ExtensionSeparator)
	fmt.Fprintf(&b, "Path list separator: %s\n", s.PathListSeparator)
	fmt.Fprintf(&b, "Default search path: %s\n", s.DefaultSearchPath)
	fmt.Fprintf(&b, "Root path: %s\n", s.RootPath)
	fmt.Fprintf(&b, "Line separator: %s\n", strings.Trim(strconv.Quote(s.LineSeparator), `"`))
	fmt.Fprintf(&b, "OS name: %s\n", s.OSName)

	h := s.Host
	fmt.Fprintf(&b, "Host: %s (%s)\n", h.GOOS, h.GOARCH)
	fmt.Fprintf(&b, "Shell: %s\n", h.Shell)
	if h.Kernel != "" {
		fmt.Fprintf(&b, "Kernel: %s %s\n", h.Kernel, h.Core)
	}
	if h.Platform != "" {
		fmt.Fprintf(&b, "Platform: %s\n", h.Platform)
	}
	if h.Hostname != "" {
		fmt.Fprintf(&b, "Hostname: %s\n", h.Hostname)
	}
	if h.CPUs > 0 {
		fmt.Fprintf(&b, "CPUs: %d\n", h.CPUs)
	}

	return b.String()
}

// YAML renders the snapshot as a YAML document.
func (s Snapshot) YAML() (string, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encoding report: %w", err)
	}
	return string(data), nil
}
