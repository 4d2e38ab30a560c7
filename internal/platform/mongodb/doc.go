// Package mongodb provides MongoDB-specific implementations for the data
// storage interfaces defined in the internal/store package. It handles
// client setup, index management, query construction, and the mapping
// between domain entities and BSON documents.
package mongodb
