package services

import (
	"time"

	"gorm.io/gorm"
)

// nowFunc is the service clock, replaced in tests
var nowFunc = func() time.Time {
	return time.Now().UTC()
}

// supportsRowLocks reports whether SELECT ... FOR UPDATE is understood by the dialect
func supportsRowLocks(db *gorm.DB) bool {
	switch db.Dialector.Name() {
	case "postgres", "mysql":
		return true
	}
	return false
}

// claimRows takes a write lock on the matching rows for the rest of the
// transaction by setting column to itself. SQL Server holds the exclusive
// row lock until commit; sqlite already serializes on its single connection.
func claimRows(tx *gorm.DB, model any, column, query string, args ...any) *gorm.DB {
	return tx.Model(model).Where(query, args...).UpdateColumn(column, gorm.Expr(column))
}
