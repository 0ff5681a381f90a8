package database

import (
	"sync"

	"gorm.io/gorm"
)

var (
	storeOnce sync.Once
	storeDB   *gorm.DB
	storeErr  error
)

// Open returns the process-wide database handle, connecting on first use and
// reusing the same handle on every later call. Concurrent callers during
// initialization all observe the same outcome; the connection is never
// recreated per call.
func Open(dsn string) (*gorm.DB, error) {
	storeOnce.Do(func() {
		storeDB, storeErr = ConnectPostgres(dsn)
	})

	return storeDB, storeErr
}
