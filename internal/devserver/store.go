package devserver

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// row is one stored record, keyed by column name. Values are the JSON
// shapes the REST layer works with: strings, float64, bool, nil.
type row map[string]any

// filter is one parsed query condition, e.g. user_id=eq.<uuid>.
type filter struct {
	column string
	op     string
	value  string
}

// tableStore backs the dev server with the same observable behavior as
// the hosted backend's per-table REST interface: rows get server-side
// ids and created_at stamps, filters compare the JSON string form.
type tableStore struct {
	mutex  sync.Mutex
	tables map[string][]row

	nowFunc func() time.Time
}

func newTableStore() *tableStore {
	return &tableStore{
		tables:  map[string][]row{},
		nowFunc: time.Now,
	}
}

// clone copies a row so callers can read or marshal it after the store
// mutex is released, while writers keep mutating the stored map.
func (r row) clone() row {
	copied := make(row, len(r))
	for column, value := range r {
		copied[column] = value
	}
	return copied
}

func (s *tableStore) insert(table string, newRow row) row {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	stored := newRow.clone()
	if _, ok := stored["id"]; !ok {
		stored["id"] = uuid.NewString()
	}
	if _, ok := stored["created_at"]; !ok {
		stored["created_at"] = s.nowFunc().UTC().Format(time.RFC3339)
	}

	s.tables[table] = append(s.tables[table], stored)
	return stored.clone()
}

func (s *tableStore) selectRows(table string, filters []filter, orderBy string, ascending bool) []row {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	var matched []row
	for _, r := range s.tables[table] {
		if matchesAll(r, filters) {
			matched = append(matched, r.clone())
		}
	}

	if orderBy != "" {
		sort.SliceStable(matched, func(i, j int) bool {
			cmp := compareValues(matched[i][orderBy], matched[j][orderBy])
			if ascending {
				return cmp < 0
			}
			return cmp > 0
		})
	}
	return matched
}

func (s *tableStore) update(table string, filters []filter, patch row) []row {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	var updated []row
	for _, r := range s.tables[table] {
		if !matchesAll(r, filters) {
			continue
		}
		for column, value := range patch {
			r[column] = value
		}
		updated = append(updated, r.clone())
	}
	return updated
}

func (s *tableStore) deleteRows(table string, filters []filter) int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	var kept []row
	deleted := 0
	for _, r := range s.tables[table] {
		if matchesAll(r, filters) {
			deleted++
			continue
		}
		kept = append(kept, r)
	}
	s.tables[table] = kept
	return deleted
}

func matchesAll(r row, filters []filter) bool {
	for _, f := range filters {
		if !matches(r, f) {
			return false
		}
	}
	return true
}

func matches(r row, f filter) bool {
	value, ok := r[f.column]
	switch f.op {
	case "is":
		if f.value == "null" {
			return !ok || value == nil
		}
		return false
	case "eq":
		return ok && value != nil && stringValue(value) == f.value
	case "scope":
		// tenant scoping: rows without the column pass, rows with it must match
		return !ok || value == nil || stringValue(value) == f.value
	case "gte":
		return ok && value != nil && compareValues(value, filterOperand(value, f.value)) >= 0
	case "lte":
		return ok && value != nil && compareValues(value, filterOperand(value, f.value)) <= 0
	case "lt":
		return ok && value != nil && compareValues(value, filterOperand(value, f.value)) < 0
	}
	return false
}

// filterOperand coerces the filter's string operand to the column's type.
func filterOperand(columnValue any, operand string) any {
	if _, ok := columnValue.(float64); ok {
		if parsed, err := strconv.ParseFloat(operand, 64); err == nil {
			return parsed
		}
	}
	return operand
}

func stringValue(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return ""
}

// compareValues compares two column values. Numbers compare numerically,
// everything else by string form; RFC3339 timestamps order correctly as
// strings.
func compareValues(a, b any) int {
	aNum, aOk := a.(float64)
	bNum, bOk := b.(float64)
	if aOk && bOk {
		switch {
		case aNum < bNum:
			return -1
		case aNum > bNum:
			return 1
		}
		return 0
	}
	return strings.Compare(stringValue(a), stringValue(b))
}
