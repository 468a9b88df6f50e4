package metrics

import (
	"fmt"
	"runtime"
)

// MemorySnapshot holds a point-in-time reading of the Go runtime's memory
// statistics, shown by the CLI in verbose mode after a run.
type MemorySnapshot struct {
	HeapAlloc   uint64 // bytes in use by the application
	Sys         uint64 // total bytes obtained from the OS
	NumGC       uint32 // completed GC cycles
	HeapObjects uint64 // allocated heap objects
}

// SnapshotMemory reads the current runtime memory statistics.
func SnapshotMemory() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:   m.HeapAlloc,
		Sys:         m.Sys,
		NumGC:       m.NumGC,
		HeapObjects: m.HeapObjects,
	}
}

// String renders the snapshot as a single human-readable line.
func (s MemorySnapshot) String() string {
	return fmt.Sprintf("heap=%s sys=%s objects=%d gc=%d",
		formatBytes(s.HeapAlloc), formatBytes(s.Sys), s.HeapObjects, s.NumGC)
}

// formatBytes renders a byte count with a binary unit suffix.
func formatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%dB", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
