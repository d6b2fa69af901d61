package service

import "testing"

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		name         string
		page, size   int
		wantPage     int
		wantPageSize int
	}{
		{name: "defaults", page: 0, size: 0, wantPage: 1, wantPageSize: DefaultPageSize},
		{name: "negative page", page: -3, size: 25, wantPage: 1, wantPageSize: 25},
		{name: "oversized page size clamped", page: 2, size: 500, wantPage: 2, wantPageSize: MaxPageSize},
		{name: "within bounds", page: 4, size: 50, wantPage: 4, wantPageSize: 50},
		{name: "minimum size", page: 1, size: 1, wantPage: 1, wantPageSize: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, size := normalizePage(tt.page, tt.size)
			if page != tt.wantPage || size != tt.wantPageSize {
				t.Errorf("normalizePage(%d, %d) = (%d, %d), want (%d, %d)",
					tt.page, tt.size, page, size, tt.wantPage, tt.wantPageSize)
			}
		})
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total, size, want int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{250, 100, 3},
	}
	for _, tt := range tests {
		if got := totalPages(tt.total, tt.size); got != tt.want {
			t.Errorf("totalPages(%d, %d) = %d, want %d", tt.total, tt.size, got, tt.want)
		}
	}
}
