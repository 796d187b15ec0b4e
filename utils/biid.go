package utils

import (
	"fmt"
	"math/rand"
	"regexp"
	"time"
)

var biIDPattern = regexp.MustCompile(`^BIZ-TZ-\d{8}-\d{4}$`)

// GenerateBIID formats a human facing business identifier:
// BIZ-TZ-<YYYYMMDD>-<1000..9999>. The suffix is random, so callers that need
// uniqueness must check for collisions.
func GenerateBIID(now time.Time, rng *rand.Rand) string {
	return fmt.Sprintf("BIZ-TZ-%s-%d", now.UTC().Format("20060102"), 1000+rng.Intn(9000))
}

func IsBIID(s string) bool {
	return biIDPattern.MatchString(s)
}
