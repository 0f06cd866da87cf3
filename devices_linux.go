//go:build linux

package v4l2

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// DeviceInfo describes one video device node found in sysfs.
type DeviceInfo struct {
	// Path is the device node, e.g. /dev/video0.
	Path string
	// Name is the driver-reported card name.
	Name string
	// Index is the device's index within its driver, read from sysfs;
	// -1 when the attribute is missing.
	Index int
}

// FindDevices enumerates video capture nodes via the video4linux sysfs
// class tree. Entries that are not video nodes (sub-devices, radio tuners)
// are skipped.
func FindDevices() ([]DeviceInfo, error) {
	return findDevicesAt("/sys/class/video4linux")
}

func findDevicesAt(sysfsDir string) ([]DeviceInfo, error) {
	entries, err := os.ReadDir(sysfsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read sysfs video4linux directory: %w", err)
	}

	var devices []DeviceInfo
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "video") {
			continue
		}
		devices = append(devices, loadDeviceFromSysfs(filepath.Join(sysfsDir, name), name))
	}

	sort.Slice(devices, func(i, j int) bool {
		return devices[i].Path < devices[j].Path
	})
	return devices, nil
}

func loadDeviceFromSysfs(sysfsPath, name string) DeviceInfo {
	info := DeviceInfo{
		Path:  "/dev/" + name,
		Index: -1,
	}

	if data, err := os.ReadFile(filepath.Join(sysfsPath, "name")); err == nil {
		info.Name = strings.TrimSpace(string(data))
	}
	if data, err := os.ReadFile(filepath.Join(sysfsPath, "index")); err == nil {
		if index, err := strconv.Atoi(strings.TrimSpace(string(data))); err == nil {
			info.Index = index
		}
	}
	return info
}
