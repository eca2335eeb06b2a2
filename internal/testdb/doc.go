// Package testdb opens the PostgreSQL database used by integration tests.
// Tests calling Open are skipped unless WORDFLIP_TEST_DATABASE_URL is set.
package testdb
