package repository

import "gorm.io/gorm"

// SerialFilter restricts projects by last_serial. Unset bounds do not
// filter; when both are set they are AND-ed.
type SerialFilter struct {
	// Since keeps projects with last_serial >= Since.
	Since *int64
	// Exact keeps projects with last_serial == Exact.
	Exact *int64
}

// Scope applies the filter to a projects query.
func (f SerialFilter) Scope() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.Since != nil {
			db = db.Where("last_serial >= ?", *f.Since)
		}
		if f.Exact != nil {
			db = db.Where("last_serial = ?", *f.Exact)
		}
		return db
	}
}
