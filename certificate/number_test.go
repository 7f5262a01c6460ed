package certificate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNumberGeneratorFormat(t *testing.T) {
	g := &NumberGenerator{
		Now:  func() time.Time { return time.UnixMilli(1718000000123) },
		Intn: func(int) int { return 7 },
	}

	assert.Equal(t, "CERT-1718000000123-007", g.Next())
}

func TestNumberGeneratorDefault(t *testing.T) {
	g := NewNumberGenerator()
	for i := 0; i < 50; i++ {
		n := g.Next()
		assert.True(t, ValidNumber(n), n)
	}
}

func TestValidNumber(t *testing.T) {
	cases := map[string]bool{
		"CERT-1718000000123-007": true,
		"CERT-1-000":             true,
		"CERT-1718000000123-07":  false,
		"CERT--007":              false,
		"cert-1-007":             false,
		"CERT-1-007.pdf":         false,
		"../CERT-1-007":          false,
		"CERT-1-007/../x":        false,
		"":                       false,
	}
	for in, want := range cases {
		assert.Equal(t, want, ValidNumber(in), in)
	}
}
