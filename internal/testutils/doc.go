// Package testutils provides test doubles shared by the service and API tests.
//
// MemStore is an in-memory implementation of every store interface plus
// store.Transactor. Transactions are serialized and restore a snapshot of
// the data when the unit of work fails or panics, which lets service tests
// assert all-or-nothing behavior without a database:
//
//	ms := testutils.NewMemStore()
//	level := ms.SeedLevel("A1", 1)
//	word := ms.SeedWord("apple", "蘋果", &level.ID, nil)
//	svc := session.NewService(ms, ms.Repositories(), ...)
//
// Clock is a settable time source for code that takes a func() time.Time.
package testutils
