package pagination

import (
	"testing"
)

func TestPageRequest_Defaults(t *testing.T) {
	p := PageRequest{}
	if p.Requested() {
		t.Error("empty request should not count as requested")
	}
	p.Defaults()
	if p.Page != 1 || p.PageSize != 20 {
		t.Errorf("Defaults() = %+v, want page 1 size 20", p)
	}
	if p.Offset() != 0 {
		t.Errorf("Offset() = %d, want 0", p.Offset())
	}
}

func TestPageRequest_Offset(t *testing.T) {
	p := PageRequest{Page: 3, PageSize: 25}
	if !p.Requested() {
		t.Error("expected Requested() true")
	}
	if got := p.Offset(); got != 50 {
		t.Errorf("Offset() = %d, want 50", got)
	}
}

func TestPageRequest_TotalPages(t *testing.T) {
	tests := []struct {
		size  int
		total int64
		want  int
	}{
		{20, 0, 0},
		{20, 1, 1},
		{20, 20, 1},
		{20, 21, 2},
		{0, 10, 0},
	}
	for _, tt := range tests {
		p := PageRequest{Page: 1, PageSize: tt.size}
		if got := p.TotalPages(tt.total); got != tt.want {
			t.Errorf("TotalPages(size=%d, total=%d) = %d, want %d", tt.size, tt.total, got, tt.want)
		}
	}
}

func TestFirst(t *testing.T) {
	p := First(50)
	if p.Page != 1 || p.PageSize != 50 || p.Offset() != 0 {
		t.Errorf("First(50) = %+v", p)
	}
}
