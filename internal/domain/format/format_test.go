package format

import (
	"fmt"
	"testing"

	"github.com/forPelevin/bvs/internal/types"
)

func TestDuration(t *testing.T) {
	tests := map[float64]string{
		0:      "0.0秒",
		30:     "30.0秒",
		59.94:  "59.9秒",
		60:     "1分0秒",
		90:     "1分30秒",
		125.9:  "2分5秒",
		3599.9: "59分59秒",
		3600:   "1小时0分钟",
		3661:   "1小时1分钟",
		7322:   "2小时2分钟",
	}
	for in, want := range tests {
		if got := Duration(in); got != want {
			t.Errorf("Duration(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestTimestamp(t *testing.T) {
	tests := map[float64]string{
		0:     "00:00",
		5.99:  "00:05",
		65:    "01:05",
		125:   "02:05",
		600.5: "10:00",
	}
	for in, want := range tests {
		if got := Timestamp(in); got != want {
			t.Errorf("Timestamp(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestSRTTimestamp(t *testing.T) {
	tests := map[float64]string{
		0:      "00:00:00,000",
		0.25:   "00:00:00,250",
		65.5:   "00:01:05,500",
		3661.5: "01:01:01,500",
		1.001:  "00:00:01,001",
		1.003:  "00:00:01,003",
		0.0004: "00:00:00,000",
	}
	for in, want := range tests {
		if got := SRTTimestamp(in); got != want {
			t.Errorf("SRTTimestamp(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestSRTTimestamp_WholeMillisecondOffsets(t *testing.T) {
	for ms := int64(0); ms <= 3_600_000; ms++ {
		h, m, sec, rem := ms/3_600_000, ms/60_000%60, ms/1000%60, ms%1000
		want := fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, sec, rem)
		if got := SRTTimestamp(float64(ms) / 1000); got != want {
			t.Fatalf("SRTTimestamp(%d ms) = %q, want %q", ms, got, want)
		}
	}
}

func TestCount(t *testing.T) {
	tests := []struct {
		in   types.Count
		want string
	}{
		{types.KnownCount(5000), "5000"},
		{types.KnownCount(9999), "9999"},
		{types.KnownCount(10000), "1.0万"},
		{types.KnownCount(15000), "1.5万"},
		{types.KnownCount(1234567), "123.5万"},
		{types.UnknownCount("N/A"), "N/A"},
		{types.Count{Value: 5000, Known: true, Raw: "5000.5"}, "5000.5"},
		{types.Count{Value: 12000, Known: true, Raw: "12000.9"}, "1.2万"},
		{types.Count{Value: -5, Known: true, Raw: "-5"}, "-5"},
		{types.Count{}, "N/A"},
	}
	for _, tt := range tests {
		if got := Count(tt.in); got != tt.want {
			t.Errorf("Count(%+v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
