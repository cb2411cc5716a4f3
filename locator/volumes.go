package locator

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// listMountedVolumes returns the roots of the mounted filesystem volumes to
// search in whole-filesystem mode.
func listMountedVolumes() ([]string, error) {
	switch runtime.GOOS {
	case "windows":
		return listWindowsDrives(), nil
	case "darwin":
		return listDarwinVolumes()
	default:
		return listLinuxMounts()
	}
}

func listWindowsDrives() []string {
	var drives []string
	for letter := 'A'; letter <= 'Z'; letter++ {
		root := fmt.Sprintf("%c:\\", letter)
		if _, err := os.Stat(root); err == nil {
			drives = append(drives, root)
		}
	}
	return drives
}

func listDarwinVolumes() ([]string, error) {
	entries, err := os.ReadDir("/Volumes")
	if err != nil {
		return []string{"/"}, nil
	}

	volumes := []string{"/"}
	for _, entry := range entries {
		volumes = append(volumes, filepath.Join("/Volumes", entry.Name()))
	}
	return volumes, nil
}

func listLinuxMounts() ([]string, error) {
	content, err := os.ReadFile("/proc/mounts")
	if err != nil {
		return []string{"/"}, nil
	}

	var volumes []string
	seen := make(map[string]bool)

	for _, line := range strings.Split(string(content), "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		device, mountPoint := fields[0], fields[1]

		// Only real block devices; proc, sysfs, tmpfs and friends never
		// contain project files.
		if !strings.HasPrefix(device, "/dev/") {
			continue
		}
		if seen[mountPoint] {
			continue
		}
		seen[mountPoint] = true
		volumes = append(volumes, mountPoint)
	}

	if len(volumes) == 0 {
		volumes = []string{"/"}
	}
	return volumes, nil
}
