package certificate

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"time"
)

const numberPrefix = "CERT-"

var numberPattern = regexp.MustCompile(`^CERT-\d+-\d{3}$`)

// NumberGenerator allocates certificate numbers from a millisecond
// timestamp and a three digit random suffix. Allocation is best effort;
// the unique index on certificate_number is the authority.
type NumberGenerator struct {
	Now  func() time.Time
	Intn func(n int) int
}

func NewNumberGenerator() *NumberGenerator {
	return &NumberGenerator{Now: time.Now, Intn: rand.IntN}
}

// Next returns a number shaped like CERT-1718000000000-042.
func (g *NumberGenerator) Next() string {
	return fmt.Sprintf("%s%d-%03d", numberPrefix, g.Now().UnixMilli(), g.Intn(1000))
}

// ValidNumber reports whether s has the shape produced by Next.
func ValidNumber(s string) bool {
	return numberPattern.MatchString(s)
}
