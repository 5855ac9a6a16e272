package safety

import "runtime"

// Platform identifies the host operating system for the purpose of selecting
// a protection table. The table is chosen once at process start and never
// changes during a run.
type Platform string

const (
	Linux   Platform = "linux"
	Darwin  Platform = "darwin"
	Windows Platform = "windows"
)

// DetectPlatform maps the runtime OS to a Platform. Unknown systems fall
// back to the Linux table, the most restrictive of the Unix variants.
func DetectPlatform() Platform {
	switch runtime.GOOS {
	case "windows":
		return Windows
	case "darwin":
		return Darwin
	default:
		return Linux
	}
}

// Table is the static protection rule set for one platform: top-level
// directory names whose entire subtrees are protected, exact filenames
// protected anywhere, and directory names protected when found directly
// under the user's home. All comparisons are performed on lowercased names
// except SensitiveUserDirs, which are matched exactly.
type Table struct {
	Dirs              []string
	Files             []string
	SensitiveUserDirs []string
}

var linuxDirs = []string{
	"bin", "sbin", "lib", "lib64", "usr", "etc", "boot",
	"proc", "sys", "dev", "run", "snap",
}

var darwinDirs = []string{
	"system", "library", "applications", "bin", "sbin", "usr",
	"etc", "var", "private", "cores",
}

var windowsDirs = []string{
	"windows", "system32", "syswow64", "winsxs",
	"program files", "program files (x86)", "programdata",
	"recovery", "boot", "$recycle.bin", "system volume information",
}

var protectedFiles = []string{
	"ntldr", "bootmgr", "pagefile.sys", "hiberfil.sys", "swapfile.sys",
	".bashrc", ".bash_profile", ".profile", ".zshrc", ".gitconfig",
}

var sensitiveUserDirs = []string{
	".ssh", ".gnupg", ".aws", ".config",
	".kube", ".docker", ".password-store",
	".mozilla", ".thunderbird",
}

// TableFor returns the protection table for the given platform. Darwin
// includes the Linux directory set because macOS ships the same Unix layout
// underneath its own.
func TableFor(p Platform) Table {
	t := Table{
		Files:             protectedFiles,
		SensitiveUserDirs: sensitiveUserDirs,
	}
	switch p {
	case Windows:
		t.Dirs = windowsDirs
	case Darwin:
		t.Dirs = append(append([]string{}, darwinDirs...), linuxDirs...)
	default:
		t.Dirs = linuxDirs
	}
	return t
}
