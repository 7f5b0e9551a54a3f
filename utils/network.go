package utils

import (
	"path/filepath"
	"strings"
)

// networkPrefixes are common mount points for network and removable volumes
var networkPrefixes = []string{
	"/mnt/",     // Linux NFS/SMB mounts
	"/media/",   // Linux removable/network media
	"/Volumes/", // macOS network volumes
}

var networkIndicators = []string{"nfs", "cifs", "smb", "webdav", "ftp", "sftp"}

// IsNetworkDrive detects if a path is on a network-mounted drive
func IsNetworkDrive(path string) bool {
	// UNC paths, before filepath.Abs mangles them
	if strings.HasPrefix(path, "//") || strings.HasPrefix(path, `\\`) {
		return true
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}

	for _, prefix := range networkPrefixes {
		if strings.HasPrefix(absPath, prefix) {
			return true
		}
	}

	lowerPath := strings.ToLower(absPath)
	for _, indicator := range networkIndicators {
		if strings.Contains(lowerPath, indicator) {
			return true
		}
	}

	return false
}

// ResolveWorkers returns requested when positive. Otherwise it picks one
// worker for directories on network drives, where parallel rewrites of
// whole files mostly fight over bandwidth, and fallback for local ones.
func ResolveWorkers(requested int, directory string, fallback int) int {
	if requested > 0 {
		return requested
	}
	if IsNetworkDrive(directory) {
		return 1
	}
	return fallback
}
