package platform

import "os"

// SystemDriveEnv names the variable holding the Windows system drive.
const SystemDriveEnv = "SYSTEMDRIVE"

// PathSeparator returns the native separator between path components.
func PathSeparator() string {
	return string(os.PathSeparator)
}

// PathListSeparator returns the native separator between entries of a
// search-path variable such as PATH.
func PathListSeparator() string {
	return string(os.PathListSeparator)
}

// LineSeparator returns the native newline sequence.
func LineSeparator() string {
	return lineSeparator
}

// RootPath returns the filesystem root. On Windows this is $SYSTEMDRIVE
// verbatim, which is empty when the variable is unset.
func (f Family) RootPath() string {
	if f == Windows {
		return os.Getenv(SystemDriveEnv)
	}
	return PathSeparator()
}

// CurrentDirectory returns "." for recognized families and ":" otherwise.
func (f Family) CurrentDirectory() string {
	if f.Recognized() {
		return "."
	}
	return ":"
}

// ParentDirectory returns ".." for recognized families and "::" otherwise.
func (f Family) ParentDirectory() string {
	if f.Recognized() {
		return ".."
	}
	return "::"
}

// ExtensionSeparator returns "." for recognized families and "/" otherwise.
func (f Family) ExtensionSeparator() string {
	if f.Recognized() {
		return "."
	}
	return "/"
}

// DefaultSearchPath returns a minimal executable search path. It is
// illustrative only and does not mirror any shell's real PATH default.
func (f Family) DefaultSearchPath() string {
	sep, list := PathSeparator(), PathListSeparator()
	if f == Windows {
		return f.CurrentDirectory() + list + f.RootPath() + sep + "bin"
	}
	return sep + "bin" + list + sep + "usr" + sep + "bin"
}

// RootPath is Current().RootPath().
func RootPath() string { return Current().RootPath() }

// CurrentDirectory is Current().CurrentDirectory().
func CurrentDirectory() string { return Current().CurrentDirectory() }

// ParentDirectory is Current().ParentDirectory().
func ParentDirectory() string { return Current().ParentDirectory() }

// ExtensionSeparator is Current().ExtensionSeparator().
func ExtensionSeparator() string { return Current().ExtensionSeparator() }

// DefaultSearchPath is Current().DefaultSearchPath().
func DefaultSearchPath() string { return Current().DefaultSearchPath() }
