// Package database opens the SQL connection backing the catalog store.
//
// MySQL is the default driver; sqlite is supported for local runs and tests
// (use Name ":memory:" for a throwaway database). GORM logging is silenced so
// that all output goes through the application's zap logger.
package database
