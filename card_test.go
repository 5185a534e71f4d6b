package minfraud

import "testing"

func TestCardBIN(t *testing.T) {
	tests := []struct {
		number string
		want   string
	}{
		{"4111111111111111", "411111"},
		{"4111 1111 1111 1111", "411111"},
		{"5500-0000-0000-0004", "550000"},
		{"37828", ""},
		{"4111x1111111111", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CardBIN(tt.number); got != tt.want {
			t.Errorf("CardBIN(%q) = %q, want %q", tt.number, got, tt.want)
		}
	}
}
