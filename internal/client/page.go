// ABOUTME: Response envelope, pagination types and list filters shared by all resources
// ABOUTME: Filters serialize to query parameters, omitting empty optional fields

package client

import (
	"net/url"
	"strconv"
)

// Envelope is the {succeed, data} wrapper every API response uses
type Envelope[T any] struct {
	Succeed bool `json:"succeed"`
	Data    T    `json:"data"`
}

// Page is one page of a backend collection
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// SinglePage wraps a bare array as the one implicit page of a collection
func SinglePage[T any](items []T) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{
		Items:      items,
		Page:       1,
		PageSize:   len(items),
		TotalItems: len(items),
		TotalPages: 1,
	}
}

// Paginate slices a full collection locally, for endpoints that do not page
func Paginate[T any](items []T, page, pageSize int) *Page[T] {
	if pageSize <= 0 {
		return SinglePage(items)
	}
	if page < 1 {
		page = 1
	}

	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}

	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return &Page[T]{
		Items:      append([]T{}, items[start:end]...),
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}
}

// ListFilter is the search/pagination filter of the paged endpoints
type ListFilter struct {
	Search   string
	Page     int
	PageSize int
}

func (f ListFilter) values() url.Values {
	v := url.Values{}
	setString(v, "search", f.Search)
	setInt(v, "page", f.Page)
	setInt(v, "pageSize", f.PageSize)
	return v
}

// OrderFilter adds the order status filter
type OrderFilter struct {
	ListFilter
	Status string
}

func (f OrderFilter) values() url.Values {
	v := f.ListFilter.values()
	setString(v, "status", f.Status)
	return v
}

// CategoryFilter uses limit instead of pageSize, as the categories endpoint does
type CategoryFilter struct {
	Search string
	Page   int
	Limit  int
}

func (f CategoryFilter) values() url.Values {
	v := url.Values{}
	setString(v, "search", f.Search)
	setInt(v, "page", f.Page)
	setInt(v, "limit", f.Limit)
	return v
}

func setString(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}

func setInt(v url.Values, key string, value int) {
	if value > 0 {
		v.Set(key, strconv.Itoa(value))
	}
}
