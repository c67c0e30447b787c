package mysql

import "gorm.io/gorm"

const maxPageSize = 200

// paginate applies LIMIT/OFFSET; a zero limit means the default page.
func paginate(q *gorm.DB, limit, offset int) *gorm.DB {
	switch {
	case limit <= 0:
		limit = 50
	case limit > maxPageSize:
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return q.Limit(limit).Offset(offset)
}
