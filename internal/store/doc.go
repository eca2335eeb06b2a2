// Package store defines the persistence boundary for study sessions and the
// errors every implementation reports. Implementations live in
// internal/platform/memory and internal/platform/postgres.
package store
