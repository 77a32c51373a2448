package service

import "testing"

func TestClampPerPage(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{in: -50, want: 1},
		{in: 0, want: 1},
		{in: 1, want: 1},
		{in: 10, want: 10},
		{in: 100, want: 100},
		{in: 101, want: 100},
		{in: 1 << 30, want: 100},
	}

	for _, tt := range tests {
		if got := ClampPerPage(tt.in); got != tt.want {
			t.Errorf("ClampPerPage(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestClampPerPage_AlwaysInRange(t *testing.T) {
	for n := -300; n <= 300; n++ {
		got := ClampPerPage(n)
		if got < MinPerPage || got > MaxPerPage {
			t.Fatalf("ClampPerPage(%d) = %d, outside [%d,%d]", n, got, MinPerPage, MaxPerPage)
		}
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		name       string
		totalCount int
		per        int
		wantTotal  int
	}{
		{name: "exact multiple", totalCount: 30, per: 10, wantTotal: 3},
		{name: "rounds up", totalCount: 25, per: 10, wantTotal: 3},
		{name: "single partial page", totalCount: 1, per: 10, wantTotal: 1},
		{name: "no results", totalCount: 0, per: 10, wantTotal: 0},
		{name: "per page clamped from zero", totalCount: 5, per: 0, wantTotal: 5},
		{name: "per page clamped from 500", totalCount: 250, per: 500, wantTotal: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TotalPages(tt.totalCount, tt.per); got != tt.wantTotal {
				t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.totalCount, tt.per, got, tt.wantTotal)
			}
		})
	}
}

func TestRepositoryName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{in: "https://api.github.com/repos/acme/widget", want: "widget"},
		{in: "https://api.github.com/repos/acme/widget/", want: "widget"},
		{in: "https://github.example.com/api/v3/repos/acme/tool.go", want: "tool.go"},
		{in: "/repos/acme/widget", want: "widget"},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		if got := RepositoryName(tt.in); got != tt.want {
			t.Errorf("RepositoryName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
