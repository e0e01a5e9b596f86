package util

import (
	"strconv"
	"strings"
	"time"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	MaxPage         = 1_000_000
)

func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

// ParseOptionalUint returns nil for an empty or malformed value.
func ParseOptionalUint(s string) *uint {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return nil
	}
	u := uint(v)
	return &u
}

func ParseOptionalInt(s string) *int {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

func ParseOptionalBool(s string) *bool {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return nil
	}
	return &v
}

// ParseOptionalTime accepts RFC 3339 timestamps or plain dates.
func ParseOptionalTime(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

// ParseOptionalEndTime is ParseOptionalTime for inclusive upper bounds: a
// plain date covers the whole day.
func ParseOptionalEndTime(s string) *time.Time {
	t := ParseOptionalTime(s)
	if t != nil && len(strings.TrimSpace(s)) == len("2006-01-02") {
		end := t.Add(24*time.Hour - time.Nanosecond)
		return &end
	}
	return t
}

type PageRequest struct {
	Page     int
	PageSize int
}

// NormalizePage clamps page to 1..MaxPage and pageSize to 1..MaxPageSize.
func NormalizePage(page, size int) PageRequest {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return PageRequest{Page: page, PageSize: size}
}

func (p PageRequest) Offset() int { return (p.Page - 1) * p.PageSize }

func (p PageRequest) Limit() int { return p.PageSize }

type Page[T any] struct {
	Items      []T   `json:"dados"`
	Total      int64 `json:"totalRegistros"`
	Page       int   `json:"pagina"`
	PageSize   int   `json:"tamanhoPagina"`
	TotalPages int   `json:"totalPaginas"`
	HasNext    bool  `json:"temProximaPagina"`
	HasPrev    bool  `json:"temPaginaAnterior"`
}

func NewPage[T any](items []T, total int64, req PageRequest) Page[T] {
	if items == nil {
		items = []T{}
	}
	size := int64(req.PageSize)
	return Page[T]{
		Items:      items,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: int((total + size - 1) / size),
		HasNext:    int64(req.Page)*size < total,
		HasPrev:    req.Page > 1,
	}
}

// MapPage converts page items while keeping the envelope.
func MapPage[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := make([]U, 0, len(p.Items))
	for _, it := range p.Items {
		out = append(out, fn(it))
	}
	return Page[U]{
		Items:      out,
		Total:      p.Total,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: p.TotalPages,
		HasNext:    p.HasNext,
		HasPrev:    p.HasPrev,
	}
}
