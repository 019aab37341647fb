package model

import (
	"strings"
	"time"
)

// Lead is one row of the lead export. Values are kept in header order so
// pass-through columns round-trip untouched; the remaining fields are
// working annotations that are never exported.
type Lead struct {
	Row    int      `json:"row"` // 1-based data row in the source file
	Values []string `json:"values"`

	Timestamp time.Time `json:"timestamp"`
	Date      string    `json:"date"`      // YYYY-MM-DD, empty when the timestamp is missing
	ZipClean  string    `json:"zip_clean"` // normalized 5-digit postal code
}

// With returns a copy of the lead with column idx set to v.
func (l Lead) With(idx int, v string) Lead {
	n := len(l.Values)
	if idx >= n {
		n = idx + 1
	}
	values := make([]string, n)
	copy(values, l.Values)
	values[idx] = v
	l.Values = values
	return l
}

// Value returns the value at column idx, or "" for short rows.
func (l Lead) Value(idx int) string {
	if idx < 0 || idx >= len(l.Values) {
		return ""
	}
	return l.Values[idx]
}

// LeadSet is an ordered lead collection sharing one header.
type LeadSet struct {
	Header []string
	Leads  []Lead

	index map[string]int
}

// NewLeadSet indexes header by trimmed column name. When a name repeats,
// the first occurrence wins.
func NewLeadSet(header []string, leads []Lead) LeadSet {
	h := make([]string, len(header))
	copy(h, header)

	idx := make(map[string]int, len(h))
	for i, col := range h {
		key := strings.TrimSpace(col)
		if _, ok := idx[key]; !ok {
			idx[key] = i
		}
	}
	return LeadSet{Header: h, Leads: leads, index: idx}
}

// WithLeads returns a set sharing this header with a different lead slice.
func (s LeadSet) WithLeads(leads []Lead) LeadSet {
	return LeadSet{Header: s.Header, Leads: leads, index: s.index}
}

// Col returns the index of the named column.
func (s LeadSet) Col(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// Get returns the named column of l, or "" when the column is absent.
func (s LeadSet) Get(l Lead, name string) string {
	i, ok := s.index[name]
	if !ok {
		return ""
	}
	return l.Value(i)
}

// Len returns the number of leads.
func (s LeadSet) Len() int { return len(s.Leads) }

// Rows returns the exported cells of every lead, padded to the header width.
// Cells past the header are kept.
func (s LeadSet) Rows() [][]string {
	rows := make([][]string, 0, len(s.Leads))
	for _, l := range s.Leads {
		row := make([]string, max(len(s.Header), len(l.Values)))
		copy(row, l.Values)
		rows = append(rows, row)
	}
	return rows
}

// CountWhere counts leads whose column equals value.
func (s LeadSet) CountWhere(col, value string) int {
	i, ok := s.index[col]
	if !ok {
		return 0
	}
	n := 0
	for _, l := range s.Leads {
		if l.Value(i) == value {
			n++
		}
	}
	return n
}

// IsBlank reports whether a cell holds no value.
func IsBlank(v string) bool {
	return strings.TrimSpace(v) == ""
}
