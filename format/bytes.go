// Package format renders sizes for diagnostics.
package format

import (
	"fmt"
	"strconv"
)

var byteUnits = [...]string{"B", "KB", "MB", "GB", "TB", "PB", "EB"}

// HumanBytes formats b with a 1024 base. Plain bytes are printed as an
// integer; larger units keep three significant digits, e.g. 1.00KB,
// 10.0KB, 100KB.
func HumanBytes(b uint64) string {
	value := float64(b)
	level := 0
	for value >= 1024 && level < len(byteUnits)-1 {
		value /= 1024
		level++
	}
	if level == 0 {
		return strconv.FormatUint(b, 10) + byteUnits[0]
	}
	switch {
	case value < 10:
		return fmt.Sprintf("%.2f%s", value, byteUnits[level])
	case value < 100:
		return fmt.Sprintf("%.1f%s", value, byteUnits[level])
	default:
		return fmt.Sprintf("%.0f%s", value, byteUnits[level])
	}
}
