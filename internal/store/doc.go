// Package store defines the persistence interfaces for the application's
// entities along with the sentinel errors implementations report. Concrete
// implementations live under internal/platform (MongoDB) and internal/mocks
// (tests); consumers depend only on these interfaces.
package store
