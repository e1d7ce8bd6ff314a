package util

import "fmt"

const (
	kib = 1 << 10
	mib = 1 << 20
	gib = 1 << 30
)

// Human formats a byte count for the download summary and progress bars.
// Negative counts render as zero.
func Human(n int64) string {
	switch {
	case n <= 0:
		return "0 B"
	case n >= gib:
		return fmt.Sprintf("%.2f GB", float64(n)/gib)
	case n >= mib:
		return fmt.Sprintf("%.2f MB", float64(n)/mib)
	case n >= kib:
		return fmt.Sprintf("%.2f KB", float64(n)/kib)
	default:
		return fmt.Sprintf("%d B", n)
	}
}
