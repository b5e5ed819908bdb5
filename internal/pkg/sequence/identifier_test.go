// internal/pkg/sequence/identifier_test.go
package sequence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	day := time.Date(2026, 2, 28, 10, 30, 0, 0, time.UTC)

	assert.Equal(t, "ORD-20260228-001", Format(OrderPrefix, day, 1))
	assert.Equal(t, "ORD-20260228-042", Format(OrderPrefix, day, 42))
	assert.Equal(t, "VE-20260228-999", Format("VE", day, 999))
}

func TestFormat_SequenceWidensPastThreeDigits(t *testing.T) {
	day := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "ORD-20260228-1000", Format(OrderPrefix, day, 1000))
}

func TestFormat_DateSegmentIsUTC(t *testing.T) {
	// IST 的 2 月 28 日凌晨 1 点，UTC 还是 2 月 27 日
	ist := time.FixedZone("IST", 5*3600+1800)
	local := time.Date(2026, 2, 28, 1, 0, 0, 0, ist)

	assert.Equal(t, "ORD-20260227-007", Format(OrderPrefix, local, 7))
}

func TestPrefixFromName(t *testing.T) {
	tests := []struct {
		name   string
		expect string
	}{
		{"venkata", "VE"},
		{"Ramu", "RA"},
		{"ab", "AB"},
		{"a", "A0"},
		{"", "00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expect, PrefixFromName(tt.name), "name=%q", tt.name)
	}
}
