package taxonomy

import (
	"strconv"
	"strings"
)

// ParseID normalizes an identifier arriving as text (form values, query
// params) to the canonical numeric type used for every comparison in this
// package. Empty or malformed input yields (0, false); 0 is never a valid
// entity id, so callers can treat the zero value as "no selection".
func ParseID(raw string) (uint, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}
