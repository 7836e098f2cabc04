package database

import (
	"context"
	"strconv"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

type PageParam struct {
	Page  int
	Limit int
}

// ParsePageParam reads page and limit from raw query values. Absent, non-numeric
// or non-positive values fall back to 1 and 10; limit is clamped to maxLimit when
// maxLimit > 0.
func ParsePageParam(page, limit string, maxLimit int) PageParam {
	p := PageParam{Page: DefaultPage, Limit: DefaultLimit}
	if n, err := strconv.Atoi(page); err == nil && n >= 1 {
		p.Page = n
	}
	if n, err := strconv.Atoi(limit); err == nil && n >= 1 {
		p.Limit = n
	}
	if maxLimit > 0 && p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	return p
}

func (p PageParam) Offset() int {
	return (p.Page - 1) * p.Limit
}

type Page[T any] struct {
	Docs          []T   `json:"docs"`
	TotalDocs     int64 `json:"totalDocs"`
	Limit         int   `json:"limit"`
	Page          int   `json:"page"`
	TotalPages    int   `json:"totalPages"`
	PagingCounter int   `json:"pagingCounter"`
	HasPrevPage   bool  `json:"hasPrevPage"`
	HasNextPage   bool  `json:"hasNextPage"`
	PrevPage      *int  `json:"prevPage"`
	NextPage      *int  `json:"nextPage"`
}

// NewPage wraps an already windowed slice of docs.
func NewPage[T any](docs []T, total int64, param PageParam) *Page[T] {
	if docs == nil {
		docs = []T{}
	}
	totalPages := int((total + int64(param.Limit) - 1) / int64(param.Limit))
	if totalPages < 1 {
		totalPages = 1
	}
	page := &Page[T]{
		Docs:          docs,
		TotalDocs:     total,
		Limit:         param.Limit,
		Page:          param.Page,
		TotalPages:    totalPages,
		PagingCounter: param.Offset() + 1,
		HasPrevPage:   param.Page > 1,
		HasNextPage:   param.Page < totalPages,
	}
	if page.HasPrevPage {
		prev := param.Page - 1
		page.PrevPage = &prev
	}
	if page.HasNextPage {
		next := param.Page + 1
		page.NextPage = &next
	}
	return page
}

// SlicePage windows a fully materialised list.
func SlicePage[T any](all []T, param PageParam) *Page[T] {
	total := int64(len(all))
	start := param.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + param.Limit
	if end > len(all) {
		end = len(all)
	}
	docs := make([]T, end-start)
	copy(docs, all[start:end])
	return NewPage(docs, total, param)
}

// Paginate counts the pipeline's matches and scans one window of its view.
func Paginate[T any](ctx context.Context, db *gorm.DB, p *Pipeline, param PageParam) (*Page[T], error) {
	countQuery, err := p.BuildCount(db.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	var total int64
	if err = countQuery.Count(&total).Error; err != nil {
		return nil, errors.Wrapf(err, "count %s failed", p.Table())
	}

	docs := make([]T, 0, param.Limit)
	if int64(param.Offset()) < total {
		q, err := p.Build(db.WithContext(ctx))
		if err != nil {
			return nil, err
		}
		if err = q.Offset(param.Offset()).Limit(param.Limit).Scan(&docs).Error; err != nil {
			return nil, errors.Wrapf(err, "page %s failed", p.Table())
		}
	}
	return NewPage(docs, total, param), nil
}
