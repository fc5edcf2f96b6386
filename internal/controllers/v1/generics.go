package v1

import (
	"slices"

	"gorm.io/gorm"
)

// stringFilters applies the name, note and search filters that are
// matched with LIKE instead of equality.
func stringFilters(db, query *gorm.DB, setFields []string, name, note, search string) *gorm.DB {
	if slices.Contains(setFields, "Name") {
		query = query.Where("name LIKE ?", "%"+name+"%")
	}

	if slices.Contains(setFields, "Note") {
		query = query.Where("note LIKE ?", "%"+note+"%")
	}

	if search != "" {
		query = query.Where(
			db.Where("note LIKE ?", "%"+search+"%").
				Or("name LIKE ?", "%"+search+"%"),
		)
	}

	return query
}

// listLimit returns the effective limit for a list request. The default
// is 50, a negative limit disables the limit entirely.
func listLimit(setFields []string, limit int) int {
	if slices.Contains(setFields, "Limit") {
		return limit
	}

	return 50
}
