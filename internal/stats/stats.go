// Package stats formats the hardware and network figures the node agent
// reports. Numbers come from procfs and sysfs; pretty strings ride along
// for human consumers.
package stats

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/prometheus/procfs"
	"golang.org/x/sys/unix"
)

const sysClassNet = "/sys/class/net"

// NetworkUsage is the cumulative traffic of one interface.
type NetworkUsage struct {
	Interface string `json:"interface"`
	TX        string `json:"tx"`
	RX        string `json:"rx"`
	Total     string `json:"total"`
}

func newNetworkUsage(iface string, tx, rx uint64) NetworkUsage {
	return NetworkUsage{
		Interface: iface,
		TX:        humanize.Bytes(tx),
		RX:        humanize.Bytes(rx),
		Total:     humanize.Bytes(tx + rx),
	}
}

// NetInterfaces lists the host's network interface names.
func NetInterfaces() ([]string, error) {
	entries, err := os.ReadDir(sysClassNet)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", sysClassNet, err)
	}

	interfaces := make([]string, 0, len(entries))
	for _, entry := range entries {
		interfaces = append(interfaces, entry.Name())
	}
	return interfaces, nil
}

// NetUsage reads the cumulative byte counters of every interface.
func NetUsage() ([]NetworkUsage, error) {
	interfaces, err := NetInterfaces()
	if err != nil {
		return nil, err
	}

	usagesList := make([]NetworkUsage, 0, len(interfaces))
	for _, iface := range interfaces {
		rx, err := readCounter(iface, "rx_bytes")
		if err != nil {
			return nil, err
		}
		tx, err := readCounter(iface, "tx_bytes")
		if err != nil {
			return nil, err
		}
		usagesList = append(usagesList, newNetworkUsage(iface, tx, rx))
	}

	return usagesList, nil
}

func readCounter(iface, counter string) (uint64, error) {
	path := fmt.Sprintf("%s/%s/statistics/%s", sysClassNet, iface, counter)
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}

	v, err := strconv.ParseUint(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", path, err)
	}
	return v, nil
}

// UptimeInfo reports host uptime in seconds and prose.
type UptimeInfo struct {
	Seconds uint64 `json:"seconds"`
	Pretty  string `json:"pretty"`
}

func NewUptimeInfo(seconds uint64) UptimeInfo {
	return UptimeInfo{Seconds: seconds, Pretty: secondsToPretty(seconds)}
}

func secondsToPretty(seconds uint64) string {
	var parts []string
	remaining := seconds

	units := []struct {
		name string
		secs uint64
	}{
		{"months", 2592000},
		{"weeks", 604800},
		{"days", 86400},
		{"hours", 3600},
		{"minutes", 60},
	}

	for _, unit := range units {
		n := remaining / unit.secs
		remaining -= n * unit.secs
		if n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, unit.name))
		}
	}

	return strings.Join(parts, " ")
}

// MemInfo reports a memory pool in bytes.
type MemInfo struct {
	Used   uint64 `json:"used"`
	Free   uint64 `json:"free"`
	Total  uint64 `json:"total"`
	Pretty string `json:"pretty"`
}

func NewMemInfo(total, free uint64) MemInfo {
	used := total - free
	return MemInfo{
		Used:   used,
		Free:   free,
		Total:  total,
		Pretty: fmt.Sprintf("%s/%s (%s)", humanize.Bytes(used), humanize.Bytes(total), humanize.Bytes(free)),
	}
}

// DiskInfo reports usage of one mounted filesystem.
type DiskInfo struct {
	MountPoint string `json:"mount_point"`
	Used       uint64 `json:"used"`
	Free       uint64 `json:"free"`
	Total      uint64 `json:"total"`
	Pretty     string `json:"pretty"`
}

func NewDiskInfo(mountPoint string, total, free uint64) DiskInfo {
	used := total - free
	return DiskInfo{
		MountPoint: mountPoint,
		Used:       used,
		Free:       free,
		Total:      total,
		Pretty: fmt.Sprintf("%s: %s/%s (%s)",
			mountPoint, humanize.Bytes(used), humanize.Bytes(total), humanize.Bytes(free)),
	}
}

// HwUsage is the full hardware report served by hw_stats.
type HwUsage struct {
	CPULoad     [3]float64 `json:"cpu_load"`
	MemoryUsage MemInfo    `json:"memory_usage"`
	SwapUsage   MemInfo    `json:"swap_usage"`
	DiskInfo    DiskInfo   `json:"disk_info"`
	Uptime      UptimeInfo `json:"uptime"`
}

// HwStats collects load averages, memory, swap, root filesystem and uptime.
func HwStats() (*HwUsage, error) {
	fs, err := procfs.NewDefaultFS()
	if err != nil {
		return nil, fmt.Errorf("open procfs: %w", err)
	}

	loadavg, err := fs.LoadAvg()
	if err != nil {
		return nil, fmt.Errorf("read loadavg: %w", err)
	}

	meminfo, err := fs.Meminfo()
	if err != nil {
		return nil, fmt.Errorf("read meminfo: %w", err)
	}

	uptime, err := readUptime()
	if err != nil {
		return nil, err
	}

	var fsStat unix.Statfs_t
	if err := unix.Statfs("/", &fsStat); err != nil {
		return nil, fmt.Errorf("statfs /: %w", err)
	}
	blockSize := uint64(fsStat.Bsize)

	return &HwUsage{
		CPULoad:     [3]float64{loadavg.Load1, loadavg.Load5, loadavg.Load15},
		MemoryUsage: NewMemInfo(kibToBytes(meminfo.MemTotal), kibToBytes(meminfo.MemFree)),
		SwapUsage:   NewMemInfo(kibToBytes(meminfo.SwapTotal), kibToBytes(meminfo.SwapFree)),
		DiskInfo:    NewDiskInfo("/", fsStat.Blocks*blockSize, fsStat.Bfree*blockSize),
		Uptime:      NewUptimeInfo(uptime),
	}, nil
}

func readUptime() (uint64, error) {
	raw, err := os.ReadFile("/proc/uptime")
	if err != nil {
		return 0, fmt.Errorf("read /proc/uptime: %w", err)
	}

	fields := strings.Fields(string(raw))
	if len(fields) == 0 {
		return 0, fmt.Errorf("empty /proc/uptime")
	}

	seconds, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, fmt.Errorf("parse /proc/uptime: %w", err)
	}
	return uint64(seconds), nil
}

// procfs meminfo figures are in kibibytes.
func kibToBytes(v *uint64) uint64 {
	if v == nil {
		return 0
	}
	return *v * 1024
}
