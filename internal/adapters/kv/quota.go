package kv

import (
	"fmt"
	"map-route-service/internal/domain"
)

// DefaultQuotaBytes is the browser localStorage budget the data was sized against.
const DefaultQuotaBytes = 5 << 20

// checkQuota counts keys and values the way localStorage does. A quota of
// zero or less disables the check.
func checkQuota(quota int64, values map[string]string) error {
	if quota <= 0 {
		return nil
	}

	var used int64
	for k, v := range values {
		used += int64(len(k) + len(v))
	}
	if used > quota {
		return fmt.Errorf("%w: %d bytes exceeds quota of %d", domain.ErrStorageFull, used, quota)
	}
	return nil
}
