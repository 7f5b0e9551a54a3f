package utils

import (
	"fmt"
	"os/exec"
	"runtime"
)

// ValidateExiftoolDependency checks if exiftool is available in PATH
func ValidateExiftoolDependency() error {
	if _, err := exec.LookPath("exiftool"); err != nil {
		return fmt.Errorf("exiftool not found in PATH. %s", getInstallationInstructions())
	}
	return nil
}

// getInstallationInstructions returns platform-specific installation instructions
func getInstallationInstructions() string {
	switch runtime.GOOS {
	case "darwin":
		return "Install with: brew install exiftool"
	case "linux":
		return "Install with: apt-get install libimage-exiftool-perl (Ubuntu/Debian) or dnf install perl-Image-ExifTool (Fedora/RHEL)"
	case "windows":
		return "Download from https://exiftool.org and add exiftool.exe to PATH"
	default:
		return "Download from https://exiftool.org"
	}
}
