package pagination

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		wantPage  int
		wantLimit int
	}{
		{name: "defaults", page: 0, limit: 0, wantPage: 1, wantLimit: 10},
		{name: "negative", page: -3, limit: -1, wantPage: 1, wantLimit: 10},
		{name: "passthrough", page: 4, limit: 25, wantPage: 4, wantLimit: 25},
		{name: "capped", page: 1, limit: 5000, wantPage: 1, wantLimit: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.page, tt.limit)
			if got.Page != tt.wantPage || got.Limit != tt.wantLimit {
				t.Fatalf("Normalize(%d, %d) = %+v", tt.page, tt.limit, got)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	p := Params{Page: 3, Limit: 20}
	if got := p.Offset(); got != 40 {
		t.Fatalf("expected offset 40, got %d", got)
	}
}

func TestNewPageInfo(t *testing.T) {
	info := NewPageInfo(25, Params{Page: 2, Limit: 10})
	if info.Total != 25 || info.Page != 2 || info.Limit != 10 {
		t.Fatalf("unexpected page info %+v", info)
	}
}

func TestNewMeta(t *testing.T) {
	meta := NewMeta(45, Params{Page: 2, Limit: 10})
	if meta.Total != 45 || meta.Page != 2 || meta.LastPage != 5 {
		t.Fatalf("unexpected meta %+v", meta)
	}

	empty := NewMeta(0, Params{Page: 1, Limit: 10})
	if empty.LastPage != 1 {
		t.Fatalf("expected lastPage 1 for empty set, got %d", empty.LastPage)
	}
}
