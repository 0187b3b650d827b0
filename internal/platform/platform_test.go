package platform

import (
	"os"
	"runtime"
	"testing"
)

func TestOS(t *testing.T) {
	got := OS()
	if got == "" {
		t.Fatal("OS() returned empty string")
	}
	if got != runtime.GOOS {
		t.Errorf("OS() = %q, want %q", got, runtime.GOOS)
	}
}

func TestShell(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want string
	}{
		{"zsh", "/bin/zsh", "/bin/zsh"},
		{"bash", "/bin/bash", "/bin/bash"},
		{"empty falls back", "", "/bin/sh"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SHELL", tt.env)
			got := Shell()
			if got != tt.want {
				t.Errorf("Shell() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		osName string
		want   Family
	}{
		{"Windows 10", Windows},
		{"Windows Server 2019", Windows},
		{"WINDOWS", Windows},
		{"Mac OS X", MacOS},
		{"macOS", MacOS},
		{"Linux", Linux},
		{"GNU/Linux", Linux},
		{"Unix", Unix},
		{"HP-UX unix", Unix},
		{"SunOS", Solaris},
		{"BeOS", Unknown},
		{"FreeBSD", Unknown},
		{"", Unknown},
		// Priority order: WINDOWS > MACOS > LINUX > UNIX > SOLARIS.
		{"Windows on mac", Windows},
		// Raw GOOS "darwin" contains "win"; HostOSName maps it to "Mac OS X".
		{"darwin", Windows},
		{"mac linux", MacOS},
		{"linux unix", Linux},
		{"unix sunos", Unix},
	}

	for _, tt := range tests {
		t.Run(tt.osName, func(t *testing.T) {
			got := Detect(tt.osName)
			if got != tt.want {
				t.Errorf("Detect(%q) = %v, want %v", tt.osName, got, tt.want)
			}
		})
	}
}

func TestFamilyString(t *testing.T) {
	tests := []struct {
		family Family
		want   string
	}{
		{Windows, "WINDOWS"},
		{MacOS, "MACOS"},
		{Solaris, "SOLARIS"},
		{Linux, "LINUX"},
		{Unix, "UNIX"},
		{Unknown, "UNKNOWN"},
		{Family(42), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.family.String(); got != tt.want {
			t.Errorf("Family(%d).String() = %q, want %q", int(tt.family), got, tt.want)
		}
	}
}

func TestFamilyIndicator(t *testing.T) {
	want := map[Family]string{
		Windows: "win",
		MacOS:   "mac",
		Solaris: "sunos",
		Linux:   "linux",
		Unix:    "unix",
		Unknown: "",
	}
	for f, w := range want {
		if got := f.Indicator(); got != w {
			t.Errorf("%v.Indicator() = %q, want %q", f, got, w)
		}
	}
}

func TestHostOSNameOverride(t *testing.T) {
	t.Setenv(OSNameEnv, "BeOS")
	if got := HostOSName(); got != "BeOS" {
		t.Errorf("HostOSName() = %q, want %q", got, "BeOS")
	}
	if got := Current(); got != Unknown {
		t.Errorf("Current() = %v, want %v", got, Unknown)
	}

	// Detection is not cached: changing the source changes the result.
	t.Setenv(OSNameEnv, "Windows 10")
	if got := Current(); got != Windows {
		t.Errorf("Current() after override = %v, want %v", got, Windows)
	}
}

func TestHostOSNameDefault(t *testing.T) {
	t.Setenv(OSNameEnv, "")
	got := HostOSName()
	if got == "" {
		t.Fatal("HostOSName() returned empty string")
	}

	wantFamily := map[string]Family{
		"windows": Windows,
		"darwin":  MacOS,
		"linux":   Linux,
		"solaris": Solaris,
	}
	if want, ok := wantFamily[runtime.GOOS]; ok {
		if fam := Detect(got); fam != want {
			t.Errorf("Detect(HostOSName()) = %v on %s, want %v", fam, runtime.GOOS, want)
		}
	}
}

func TestTokens(t *testing.T) {
	tests := []struct {
		osName                 string
		family                 Family
		cur, parent, extension string
	}{
		{"Windows 10", Windows, ".", "..", "."},
		{"Mac OS X", MacOS, ".", "..", "."},
		{"Linux", Linux, ".", "..", "."},
		{"Unix", Unix, ".", "..", "."},
		{"SunOS", Solaris, ".", "..", "."},
		{"BeOS", Unknown, ":", "::", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.osName, func(t *testing.T) {
			f := Detect(tt.osName)
			if f != tt.family {
				t.Fatalf("Detect(%q) = %v, want %v", tt.osName, f, tt.family)
			}
			if got := f.CurrentDirectory(); got != tt.cur {
				t.Errorf("CurrentDirectory() = %q, want %q", got, tt.cur)
			}
			if got := f.ParentDirectory(); got != tt.parent {
				t.Errorf("ParentDirectory() = %q, want %q", got, tt.parent)
			}
			if got := f.ExtensionSeparator(); got != tt.extension {
				t.Errorf("ExtensionSeparator() = %q, want %q", got, tt.extension)
			}
		})
	}
}

func TestNativeSeparators(t *testing.T) {
	if got := PathSeparator(); got != string(os.PathSeparator) {
		t.Errorf("PathSeparator() = %q, want %q", got, string(os.PathSeparator))
	}
	if got := PathListSeparator(); got != string(os.PathListSeparator) {
		t.Errorf("PathListSeparator() = %q, want %q", got, string(os.PathListSeparator))
	}

	want := "\n"
	if runtime.GOOS == "windows" {
		want = "\r\n"
	}
	if got := LineSeparator(); got != want {
		t.Errorf("LineSeparator() = %q, want %q", got, want)
	}
}

func TestNativeSeparatorsIgnoreFamily(t *testing.T) {
	// Separators come from the build target, not the detected family.
	t.Setenv(OSNameEnv, "BeOS")
	if got := PathSeparator(); got != string(os.PathSeparator) {
		t.Errorf("PathSeparator() = %q under BeOS, want %q", got, string(os.PathSeparator))
	}
}

func TestRootPath(t *testing.T) {
	t.Run("windows uses SYSTEMDRIVE", func(t *testing.T) {
		t.Setenv(SystemDriveEnv, "C:")
		if got := Windows.RootPath(); got != "C:" {
			t.Errorf("Windows.RootPath() = %q, want %q", got, "C:")
		}
	})

	t.Run("windows with unset SYSTEMDRIVE is empty", func(t *testing.T) {
		t.Setenv(SystemDriveEnv, "")
		if got := Windows.RootPath(); got != "" {
			t.Errorf("Windows.RootPath() = %q, want empty", got)
		}
	})

	for _, f := range []Family{MacOS, Linux, Unix, Solaris, Unknown} {
		t.Run(f.String(), func(t *testing.T) {
			t.Setenv(SystemDriveEnv, "C:")
			if got := f.RootPath(); got != PathSeparator() {
				t.Errorf("%v.RootPath() = %q, want %q", f, got, PathSeparator())
			}
		})
	}
}

func TestDefaultSearchPath(t *testing.T) {
	sep, list := PathSeparator(), PathListSeparator()

	t.Run("windows", func(t *testing.T) {
		t.Setenv(SystemDriveEnv, "C:")
		want := "." + list + "C:" + sep + "bin"
		if got := Windows.DefaultSearchPath(); got != want {
			t.Errorf("Windows.DefaultSearchPath() = %q, want %q", got, want)
		}
	})

	want := sep + "bin" + list + sep + "usr" + sep + "bin"
	for _, f := range []Family{MacOS, Linux, Unix, Solaris, Unknown} {
		t.Run(f.String(), func(t *testing.T) {
			if got := f.DefaultSearchPath(); got != want {
				t.Errorf("%v.DefaultSearchPath() = %q, want %q", f, got, want)
			}
		})
	}
}

func TestPackageLevelHelpers(t *testing.T) {
	t.Setenv(OSNameEnv, "Windows 10")
	t.Setenv(SystemDriveEnv, "D:")

	if got := RootPath(); got != "D:" {
		t.Errorf("RootPath() = %q, want %q", got, "D:")
	}
	if got := CurrentDirectory(); got != "." {
		t.Errorf("CurrentDirectory() = %q, want %q", got, ".")
	}
	if got := ParentDirectory(); got != ".." {
		t.Errorf("ParentDirectory() = %q, want %q", got, "..")
	}
	if got := ExtensionSeparator(); got != "." {
		t.Errorf("ExtensionSeparator() = %q, want %q", got, ".")
	}
	if got, want := DefaultSearchPath(), Windows.DefaultSearchPath(); got != want {
		t.Errorf("DefaultSearchPath() = %q, want %q", got, want)
	}

	t.Setenv(OSNameEnv, "BeOS")
	if got := CurrentDirectory(); got != ":" {
		t.Errorf("CurrentDirectory() under BeOS = %q, want %q", got, ":")
	}
	if got := RootPath(); got != PathSeparator() {
		t.Errorf("RootPath() under BeOS = %q, want %q", got, PathSeparator())
	}
}
