package utils

import "testing"

func TestIsNetworkDrive(t *testing.T) {
	tests := []struct {
		name string
		path string
		want bool
	}{
		{"UNC forward slashes", "//server/share/photos", true},
		{"UNC backslashes", `\\server\share\photos`, true},
		{"Linux mnt", "/mnt/nas/photos", true},
		{"Linux media", "/media/usb/DCIM", true},
		{"macOS volume", "/Volumes/Photos/trip", true},
		{"NFS indicator", "/srv/nfs/photos", true},
		{"Local home", "/home/user/photos", false},
		{"Local tmp", "/tmp/trip", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNetworkDrive(tt.path); got != tt.want {
				t.Errorf("IsNetworkDrive(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestResolveWorkers(t *testing.T) {
	tests := []struct {
		name      string
		requested int
		directory string
		want      int
	}{
		{"Explicit count wins", 8, "/mnt/nas/photos", 8},
		{"Auto on local drive", 0, "/home/user/photos", 4},
		{"Negative means auto", -1, "/home/user/photos", 4},
		{"Auto on network drive", 0, "/mnt/nas/photos", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveWorkers(tt.requested, tt.directory, 4); got != tt.want {
				t.Errorf("ResolveWorkers(%d, %q) = %d, want %d", tt.requested, tt.directory, got, tt.want)
			}
		})
	}
}
