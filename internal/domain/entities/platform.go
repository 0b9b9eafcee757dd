package entities

// OS names used in release artifact names
const (
	OSWindows = "windows"
	OSMacOS   = "macos"
	OSLinux   = "linux"
)

// CPU architecture names used in release artifact names
const (
	ArchAarch64 = "aarch64"
	ArchX86_64  = "x86_64"
)

// PlatformTarget identifies which release artifact fits the host
type PlatformTarget struct {
	OS   string
	Arch string
}

// String renders the target as it appears in artifact names ("linux-x86_64")
func (p PlatformTarget) String() string {
	return p.OS + "-" + p.Arch
}
