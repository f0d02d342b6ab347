//go:build integration

// Package testdb provides utilities for database integration tests.
//
// Tests run against the database named by DATABASE_URL (or COACH_TEST_DB_URL)
// and are skipped when neither is set. The schema comes from the migrations
// embedded in the postgres package, applied once per process. Each test then
// runs inside its own transaction that is rolled back when it finishes, so
// tests can run in parallel against shared tables:
//
//	func TestProgressStore(t *testing.T) {
//	    t.Parallel()
//	    db := testdb.GetTestDBWithT(t)
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sqlx.Tx) {
//	        repos := postgres.NewRepositories(tx, nil)
//	        // ...
//	    })
//	}
package testdb
