package attendance

import (
	"sort"
	"strings"
)

// DepartmentSummary counts report rows of one department by status.
type DepartmentSummary struct {
	Department string         `json:"department"`
	Total      int            `json:"total"`
	Counts     map[Status]int `json:"counts"`
}

// Count returns the number of rows with status s.
func (d DepartmentSummary) Count(s Status) int {
	return d.Counts[s]
}

// Summarize groups rows by department, sorted by department name.
func Summarize(rows []Row) []DepartmentSummary {
	idx := map[string]int{}
	var out []DepartmentSummary
	for _, r := range rows {
		i, ok := idx[r.Department]
		if !ok {
			i = len(out)
			idx[r.Department] = i
			out = append(out, DepartmentSummary{Department: r.Department, Counts: map[Status]int{}})
		}
		out[i].Total++
		out[i].Counts[r.Status]++
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Department < out[b].Department })
	return out
}

// Filter narrows report rows the way the report table does. Zero fields
// match everything.
type Filter struct {
	Statuses   []Status
	Department string
	EmployeeID string
	Query      string
}

func (f Filter) Match(r Row) bool {
	if len(f.Statuses) > 0 {
		found := false
		for _, s := range f.Statuses {
			if r.Status == s {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Department != "" && !strings.EqualFold(f.Department, r.Department) {
		return false
	}
	if f.EmployeeID != "" && f.EmployeeID != r.EmployeeID {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if !strings.Contains(strings.ToLower(r.Name), q) && !strings.Contains(strings.ToLower(r.EmployeeID), q) {
			return false
		}
	}
	return true
}

// Apply returns the matching rows in their original order.
func (f Filter) Apply(rows []Row) []Row {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

type Pagination struct {
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
	Count      int  `json:"count"`
}

const (
	DefaultPerPage = 20
	MaxPerPage     = 500
)

// Paginate slices rows to a 1-based page. Out of range values are clamped.
func Paginate(rows []Row, page, perPage int) ([]Row, Pagination) {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	if page < 1 {
		page = 1
	}
	total := len(rows)
	pages := (total + perPage - 1) / perPage
	// Compare before multiplying so a huge page cannot overflow.
	start := total
	if page-1 <= total/perPage {
		start = (page - 1) * perPage
		if start > total {
			start = total
		}
	}
	end := start + perPage
	if end > total {
		end = total
	}
	items := rows[start:end]
	return items, Pagination{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: pages,
		HasNext:    page < pages,
		HasPrev:    page > 1,
		Count:      len(items),
	}
}
