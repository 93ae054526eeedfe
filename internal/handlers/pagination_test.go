package handlers

import "testing"

func TestClampPagination(t *testing.T) {
	cases := []struct {
		name      string
		page      int
		limit     int
		wantPage  int
		wantLimit int
	}{
		{name: "defaults pass through", page: 1, limit: 10, wantPage: 1, wantLimit: 10},
		{name: "zero page", page: 0, limit: 10, wantPage: 1, wantLimit: 10},
		{name: "negative page", page: -3, limit: 25, wantPage: 1, wantLimit: 25},
		{name: "zero limit", page: 2, limit: 0, wantPage: 2, wantLimit: 10},
		{name: "limit over cap", page: 2, limit: 500, wantPage: 2, wantLimit: 10},
		{name: "limit at cap", page: 1, limit: 100, wantPage: 1, wantLimit: 100},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page, limit := ClampPagination(tc.page, tc.limit)

			if page != tc.wantPage {
				t.Fatalf("expected page %d, got %d", tc.wantPage, page)
			}

			if limit != tc.wantLimit {
				t.Fatalf("expected limit %d, got %d", tc.wantLimit, limit)
			}
		})
	}
}
