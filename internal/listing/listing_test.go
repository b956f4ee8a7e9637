// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package listing

import (
	"fmt"
	"testing"
)

type namedItem struct {
	Name  string
	Email string
}

func namedFields(n namedItem) []string { return []string{n.Name, n.Email} }

func TestFilter(t *testing.T) {
	items := []namedItem{
		{Name: "Jackie", Email: "jackie@example.com"},
		{Name: "Rose", Email: "rose@example.com"},
		{Name: "Hijack", Email: "h@example.com"},
	}

	t.Run("empty term returns all in order", func(t *testing.T) {
		got := Filter(items, "", namedFields)
		if len(got) != len(items) {
			t.Fatalf("Filter(items, \"\") returned %d items, want %d", len(got), len(items))
		}
		for i := range items {
			if got[i] != items[i] {
				t.Errorf("item %d reordered: got %+v, want %+v", i, got[i], items[i])
			}
		}
	})

	t.Run("case-insensitive substring", func(t *testing.T) {
		got := Filter(items, "jack", namedFields)
		if len(got) != 2 {
			t.Fatalf("Filter(items, %q) returned %d items, want 2", "jack", len(got))
		}
		if got[0].Name != "Jackie" || got[1].Name != "Hijack" {
			t.Errorf("unexpected match order: %+v", got)
		}
	})

	t.Run("matches any designated field", func(t *testing.T) {
		got := Filter(items, "ROSE@", namedFields)
		if len(got) != 1 || got[0].Name != "Rose" {
			t.Errorf("Filter by email = %+v, want single Rose", got)
		}
	})

	t.Run("no match", func(t *testing.T) {
		if got := Filter(items, "zzz", namedFields); len(got) != 0 {
			t.Errorf("Filter(items, %q) = %+v, want empty", "zzz", got)
		}
	})
}

func TestPage(t *testing.T) {
	items := make([]int, 12)
	for i := range items {
		items[i] = i + 1
	}

	tests := []struct {
		name    string
		page    int
		perPage int
		wantLen int
		first   int
	}{
		{"first page full", 1, 10, 10, 1},
		{"last page partial", 2, 10, 2, 11},
		{"beyond range", 3, 10, 0, 0},
		{"way beyond range", 99, 10, 0, 0},
		{"zero page", 0, 10, 0, 0},
		{"zero per page", 1, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Page(items, tt.page, tt.perPage)
			if len(got) != tt.wantLen {
				t.Fatalf("Page(12 items, %d, %d) returned %d items, want %d",
					tt.page, tt.perPage, len(got), tt.wantLen)
			}
			if tt.wantLen > 0 && got[0] != tt.first {
				t.Errorf("first item = %d, want %d", got[0], tt.first)
			}
			if len(got) > tt.perPage {
				t.Errorf("page holds %d items, exceeds page size %d", len(got), tt.perPage)
			}
		})
	}
}

func TestCalculateTotalPages(t *testing.T) {
	tests := []struct {
		name       string
		totalItems int
		perPage    int
		want       int
	}{
		{"zero items", 0, 10, 1},
		{"less than one page", 5, 10, 1},
		{"exactly one page", 10, 10, 1},
		{"one item over", 11, 10, 2},
		{"multiple pages", 25, 10, 3},
		{"zero per page", 10, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateTotalPages(tt.totalItems, tt.perPage); got != tt.want {
				t.Errorf("CalculateTotalPages(%d, %d) = %d, want %d", tt.totalItems, tt.perPage, got, tt.want)
			}
		})
	}
}

func labelsToStrings(labels []PageLabel) []string {
	out := make([]string, len(labels))
	for i, l := range labels {
		if l.IsEllipsis {
			out[i] = "..."
		} else {
			out[i] = fmt.Sprint(l.Number)
		}
	}
	return out
}

func TestPageLabels(t *testing.T) {
	tests := []struct {
		name        string
		currentPage int
		totalPages  int
		want        []string
	}{
		{"single page", 1, 1, []string{"1"}},
		{"two pages", 1, 2, []string{"1", "2"}},
		{"five pages shows all", 3, 5, []string{"1", "2", "3", "4", "5"}},
		{"near start no leading ellipsis", 1, 10, []string{"1", "2", "...", "10"}},
		{"second page", 2, 10, []string{"1", "2", "3", "...", "10"}},
		{"third page", 3, 10, []string{"1", "2", "3", "4", "...", "10"}},
		{"middle both ellipses", 5, 10, []string{"1", "...", "4", "5", "6", "...", "10"}},
		{"near end no trailing ellipsis", 9, 10, []string{"1", "...", "8", "9", "10"}},
		{"last page", 10, 10, []string{"1", "...", "9", "10"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := labelsToStrings(PageLabels(tt.currentPage, tt.totalPages))
			if len(got) != len(tt.want) {
				t.Fatalf("PageLabels(%d, %d) = %v, want %v", tt.currentPage, tt.totalPages, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("PageLabels(%d, %d) = %v, want %v", tt.currentPage, tt.totalPages, got, tt.want)
				}
			}
		})
	}
}

func TestPageLabelsInvariants(t *testing.T) {
	for totalPages := 6; totalPages <= 40; totalPages++ {
		for current := 1; current <= totalPages; current++ {
			labels := PageLabels(current, totalPages)

			if labels[0].Number != 1 {
				t.Fatalf("PageLabels(%d, %d): first label is %d, want 1", current, totalPages, labels[0].Number)
			}
			if labels[len(labels)-1].Number != totalPages {
				t.Fatalf("PageLabels(%d, %d): last label is %d, want %d",
					current, totalPages, labels[len(labels)-1].Number, totalPages)
			}

			ellipses := 0
			currents := 0
			for _, l := range labels {
				if l.IsEllipsis {
					ellipses++
				}
				if l.IsCurrent {
					currents++
				}
			}
			if ellipses > 2 {
				t.Fatalf("PageLabels(%d, %d) has %d ellipses, want at most 2", current, totalPages, ellipses)
			}
			if currents != 1 {
				t.Fatalf("PageLabels(%d, %d) marks %d current pages, want exactly 1", current, totalPages, currents)
			}
		}
	}
}

func TestController(t *testing.T) {
	items := make([]namedItem, 12)
	for i := range items {
		items[i] = namedItem{Name: fmt.Sprintf("Category %d", i+1)}
	}

	t.Run("twelve items across two pages", func(t *testing.T) {
		c := NewController(items, 10, namedFields)
		if got := len(c.PageItems()); got != 10 {
			t.Errorf("page 1 shows %d items, want 10", got)
		}
		c.SetPage(2)
		if got := len(c.PageItems()); got != 2 {
			t.Errorf("page 2 shows %d items, want 2", got)
		}
		want := []string{"1", "2"}
		got := labelsToStrings(c.Labels())
		if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
			t.Errorf("labels = %v, want %v", got, want)
		}
	})

	t.Run("search resets page", func(t *testing.T) {
		c := NewController(items, 10, namedFields)
		c.SetPage(2)
		c.SetSearchTerm("category 1")
		if c.CurrentPage() != 1 {
			t.Errorf("CurrentPage after SetSearchTerm = %d, want 1", c.CurrentPage())
		}
	})

	t.Run("set page clamps", func(t *testing.T) {
		c := NewController(items, 10, namedFields)
		c.SetPage(99)
		if c.CurrentPage() != 2 {
			t.Errorf("SetPage(99) clamped to %d, want 2", c.CurrentPage())
		}
		c.SetPage(-3)
		if c.CurrentPage() != 1 {
			t.Errorf("SetPage(-3) clamped to %d, want 1", c.CurrentPage())
		}
	})
}
