// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"context"
	"errors"
	"testing"
)

func TestNormalizePaging(t *testing.T) {
	tests := []struct {
		name         string
		page, size   int
		wantPage     int
		wantPageSize int
	}{
		{"both valid", 3, 20, 3, 20},
		{"zero page", 0, 20, 1, 20},
		{"negative page", -5, 20, 1, 20},
		{"zero size", 3, 0, 3, 10},
		{"negative size", 3, -1, 3, 10},
		{"both invalid", 0, 0, 1, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, size := NormalizePaging(tt.page, tt.size)
			if page != tt.wantPage || size != tt.wantPageSize {
				t.Errorf("NormalizePaging(%d, %d) = (%d, %d), want (%d, %d)",
					tt.page, tt.size, page, size, tt.wantPage, tt.wantPageSize)
			}
		})
	}
}

func TestPaginate_WindowMath(t *testing.T) {
	var gotLimit, gotOffset int
	page := paginate(context.Background(), 3, 10,
		func(ctx context.Context) (int, error) { return 25, nil },
		func(ctx context.Context, limit, offset int) ([]string, error) {
			gotLimit, gotOffset = limit, offset
			return []string{"a", "b", "c", "d", "e"}, nil
		},
	)

	if gotLimit != 10 || gotOffset != 20 {
		t.Errorf("fetch window = (limit %d, offset %d), want (10, 20)", gotLimit, gotOffset)
	}
	want := Meta{Total: 25, Page: 3, PageSize: 10, TotalPages: 3}
	if page.Meta != want {
		t.Errorf("meta = %+v, want %+v", page.Meta, want)
	}
	if len(page.Data) != 5 {
		t.Errorf("data length = %d, want 5", len(page.Data))
	}
}

func TestPaginate_TotalPagesRoundsUp(t *testing.T) {
	tests := []struct {
		total, pageSize, want int
	}{
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
		{30, 10, 3},
	}
	for _, tt := range tests {
		page := paginate(context.Background(), 1, tt.pageSize,
			func(ctx context.Context) (int, error) { return tt.total, nil },
			func(ctx context.Context, limit, offset int) ([]int, error) { return []int{1}, nil },
		)
		if page.Meta.TotalPages != tt.want {
			t.Errorf("total %d pageSize %d: totalPages = %d, want %d",
				tt.total, tt.pageSize, page.Meta.TotalPages, tt.want)
		}
	}
}

func TestPaginate_CountErrorReturnsEmptyPage(t *testing.T) {
	fetchCalled := false
	page := paginate(context.Background(), 2, 10,
		func(ctx context.Context) (int, error) { return 0, errors.New("connection refused") },
		func(ctx context.Context, limit, offset int) ([]string, error) {
			fetchCalled = true
			return []string{"x"}, nil
		},
	)

	if fetchCalled {
		t.Error("fetch ran after count failed")
	}
	if page.Data == nil || len(page.Data) != 0 {
		t.Errorf("data = %#v, want empty non-nil slice", page.Data)
	}
	want := Meta{Total: 0, Page: 2, PageSize: 10, TotalPages: 0}
	if page.Meta != want {
		t.Errorf("meta = %+v, want %+v", page.Meta, want)
	}
}

func TestPaginate_FetchErrorReturnsEmptyPage(t *testing.T) {
	page := paginate(context.Background(), 1, 10,
		func(ctx context.Context) (int, error) { return 7, nil },
		func(ctx context.Context, limit, offset int) ([]string, error) {
			return nil, errors.New("query failed")
		},
	)

	if page.Data == nil || len(page.Data) != 0 {
		t.Errorf("data = %#v, want empty non-nil slice", page.Data)
	}
	if page.Meta.Total != 0 || page.Meta.TotalPages != 0 {
		t.Errorf("meta = %+v, want zeroed total and totalPages", page.Meta)
	}
}

func TestPaginate_ZeroTotalSkipsFetch(t *testing.T) {
	fetchCalled := false
	page := paginate(context.Background(), 1, 10,
		func(ctx context.Context) (int, error) { return 0, nil },
		func(ctx context.Context, limit, offset int) ([]string, error) {
			fetchCalled = true
			return nil, nil
		},
	)

	if fetchCalled {
		t.Error("fetch ran for an empty result set")
	}
	if len(page.Data) != 0 || page.Meta.TotalPages != 0 {
		t.Errorf("page = %+v, want empty", page)
	}
}

func TestPaginate_NilRowsBecomeEmptySlice(t *testing.T) {
	page := paginate(context.Background(), 1, 10,
		func(ctx context.Context) (int, error) { return 3, nil },
		func(ctx context.Context, limit, offset int) ([]string, error) { return nil, nil },
	)
	if page.Data == nil {
		t.Error("data is nil, want empty slice")
	}
}

func TestPaginate_NormalizesBeforeOffset(t *testing.T) {
	var gotOffset int
	paginate(context.Background(), 0, 0,
		func(ctx context.Context) (int, error) { return 5, nil },
		func(ctx context.Context, limit, offset int) ([]int, error) {
			gotOffset = offset
			return []int{1}, nil
		},
	)
	if gotOffset != 0 {
		t.Errorf("offset = %d, want 0 for defaulted page", gotOffset)
	}
}
