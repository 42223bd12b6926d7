// Package utility - Test các helper parse giá trị từ JSON payload / query param.
package utility

import (
	"encoding/json"
	"testing"
)

func TestP2Int64(t *testing.T) {
	cases := []struct {
		name  string
		input interface{}
		want  int64
	}{
		{"json.Number", json.Number("42"), 42},
		{"string từ query param", "1735689600000", 1735689600000},
		{"string không phải số", "abc", 0},
		{"int64", int64(7), 7},
		{"int", 7, 7},
		{"float64 từ JSON decode", float64(100), 100},
		{"nil", nil, 0},
		{"bool không hỗ trợ", true, 0},
	}
	for _, tc := range cases {
		if got := P2Int64(tc.input); got != tc.want {
			t.Errorf("P2Int64(%s) = %d, muốn %d", tc.name, got, tc.want)
		}
	}
}

func TestP2Float64(t *testing.T) {
	if got := P2Float64(json.Number("1.5")); got != 1.5 {
		t.Errorf("P2Float64(json.Number) = %v, muốn 1.5", got)
	}
	if got := P2Float64("2.25"); got != 2.25 {
		t.Errorf("P2Float64(string) = %v, muốn 2.25", got)
	}
	if got := P2Float64("xyz"); got != 0 {
		t.Errorf("P2Float64(string hỏng) = %v, muốn 0", got)
	}
	if got := P2Float64(3.0); got != 3.0 {
		t.Errorf("P2Float64(float64) = %v, muốn 3.0", got)
	}
}

func TestGoProtect_BatPanic(t *testing.T) {
	// Không được panic lan ra ngoài.
	GoProtect(func() { panic("boom") })

	ran := false
	GoProtect(func() { ran = true })
	if !ran {
		t.Error("GoProtect phải chạy hàm được truyền vào")
	}
}
