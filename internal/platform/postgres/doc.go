// Package postgres provides the PostgreSQL implementations of the store
// interfaces: the word catalog, curriculum reference data, users, word
// progress and answer history. Stores run against either a pool or a
// transaction through store.DBTX, and the embedded goose migrations under
// migrations/ define the schema they expect.
package postgres
