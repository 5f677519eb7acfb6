package tree

import (
	"math"
	"regexp"
	"strconv"

	"github.com/srodi/hog/pkg/types"
)

// memoryField matches top's MEM column: digits, a unit, and an optional
// growth marker.
var memoryField = regexp.MustCompile(`^(\d+)([KMG])[-+]?$`)

var unitScale = map[byte]uint64{
	'K': 1,
	'M': 1 << 10,
	'G': 1 << 20,
}

// ParseMemory converts a MEM field such as "2048K", "12M+" or "3G-" to KiB.
func ParseMemory(field string) (uint64, error) {
	match := memoryField.FindStringSubmatch(field)
	if match == nil {
		return 0, &types.ParseError{Input: field, Reason: "memory"}
	}
	value, err := strconv.ParseUint(match[1], 10, 64)
	if err != nil {
		return 0, &types.ParseError{Input: field, Reason: "memory"}
	}
	scale := unitScale[match[2][0]]
	if value > math.MaxUint64/scale {
		return 0, &types.ParseError{Input: field, Reason: "memory"}
	}
	return value * scale, nil
}
