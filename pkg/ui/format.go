package ui

import "fmt"

const (
	kib = 1.0
	mib = 1024 * kib
	gib = 1024 * mib
)

// FormatMemory renders a KiB total as a fixed-width magnitude colored by size:
// red near a gigabyte, yellow above 150 MB, blue otherwise.
func FormatMemory(p Palette, memoryKiB uint64) string {
	m := float64(memoryKiB)
	switch {
	case m > gib*0.9:
		return p.Red(fmt.Sprintf("%5.1f GB", m/gib))
	case m > mib*150:
		return p.Yellow(fmt.Sprintf("%5.1f MB", m/mib))
	case m > mib*0.95:
		return p.Blue(fmt.Sprintf("%5.1f MB", m/mib))
	default:
		return p.Blue(fmt.Sprintf("%5.1f KB", m))
	}
}

// FormatCPU renders a CPU percentage: red above 80, yellow above 30.
func FormatCPU(p Palette, cpu float64) string {
	text := fmt.Sprintf("%5.1f %%", cpu)
	switch {
	case cpu > 80:
		return p.Red(text)
	case cpu > 30:
		return p.Yellow(text)
	default:
		return p.Blue(text)
	}
}
