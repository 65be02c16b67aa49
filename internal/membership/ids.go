package membership

import (
	"fmt"
	"strconv"

	"github.com/iliyamo/fanclub-membership/internal/model"
)

// ParseID converts an externally supplied identifier into a model.ID.
// Only plain base-10 digits are accepted: no sign, no surrounding
// whitespace.  Zero and values that do not fit a signed 64-bit column
// yield ErrInvalidID.
func ParseID(raw string) (model.ID, error) {
	if !allDigits(raw) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, raw)
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, raw)
	}
	return model.ID(n), nil
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
