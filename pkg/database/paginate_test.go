package database

import "testing"

func TestParsePageParam(t *testing.T) {
	tests := []struct {
		name  string
		page  string
		limit string
		max   int
		want  PageParam
	}{
		{name: "absent", want: PageParam{Page: 1, Limit: 10}},
		{name: "numeric", page: "3", limit: "25", max: 100, want: PageParam{Page: 3, Limit: 25}},
		{name: "not numeric", page: "abc", limit: "ten", max: 100, want: PageParam{Page: 1, Limit: 10}},
		{name: "zero and negative", page: "0", limit: "-5", max: 100, want: PageParam{Page: 1, Limit: 10}},
		{name: "clamped", page: "2", limit: "500", max: 100, want: PageParam{Page: 2, Limit: 100}},
		{name: "no cap", page: "1", limit: "500", max: 0, want: PageParam{Page: 1, Limit: 500}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParsePageParam(tt.page, tt.limit, tt.max); got != tt.want {
				t.Errorf("ParsePageParam() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestSlicePage(t *testing.T) {
	tests := []struct {
		name       string
		n, limit   int
		page       int
		wantLen    int
		wantFirst  int
		wantPages  int
		wantPrev   bool
		wantNext   bool
		wantOffset int
	}{
		{name: "first page", n: 23, limit: 10, page: 1, wantLen: 10, wantFirst: 1, wantPages: 3, wantNext: true},
		{name: "remainder on last page", n: 23, limit: 10, page: 3, wantLen: 3, wantFirst: 21, wantPages: 3, wantPrev: true},
		{name: "exact last page", n: 20, limit: 10, page: 2, wantLen: 10, wantFirst: 11, wantPages: 2, wantPrev: true},
		{name: "beyond last page", n: 23, limit: 10, page: 7, wantLen: 0, wantPages: 3, wantPrev: true},
		{name: "empty set", n: 0, limit: 10, page: 1, wantLen: 0, wantPages: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := SlicePage(seq(tt.n), PageParam{Page: tt.page, Limit: tt.limit})
			if len(p.Docs) != tt.wantLen {
				t.Fatalf("len(docs) = %d, want %d", len(p.Docs), tt.wantLen)
			}
			if p.Docs == nil {
				t.Fatal("docs must never be nil")
			}
			if tt.wantLen > 0 && p.Docs[0] != tt.wantFirst {
				t.Errorf("first doc = %d, want %d", p.Docs[0], tt.wantFirst)
			}
			if p.TotalDocs != int64(tt.n) || p.TotalPages != tt.wantPages {
				t.Errorf("total = %d/%d pages, want %d/%d", p.TotalDocs, p.TotalPages, tt.n, tt.wantPages)
			}
			if p.HasPrevPage != tt.wantPrev || p.HasNextPage != tt.wantNext {
				t.Errorf("prev/next = %v/%v, want %v/%v", p.HasPrevPage, p.HasNextPage, tt.wantPrev, tt.wantNext)
			}
			if p.PagingCounter != (tt.page-1)*tt.limit+1 {
				t.Errorf("pagingCounter = %d", p.PagingCounter)
			}
		})
	}
}

func TestNewPageLinks(t *testing.T) {
	p := NewPage([]string{"a", "b"}, 6, PageParam{Page: 2, Limit: 2})
	if p.PrevPage == nil || *p.PrevPage != 1 {
		t.Errorf("prevPage = %v, want 1", p.PrevPage)
	}
	if p.NextPage == nil || *p.NextPage != 3 {
		t.Errorf("nextPage = %v, want 3", p.NextPage)
	}

	last := NewPage([]string{"e", "f"}, 6, PageParam{Page: 3, Limit: 2})
	if last.NextPage != nil || last.HasNextPage {
		t.Errorf("last page should have no next page")
	}
}
