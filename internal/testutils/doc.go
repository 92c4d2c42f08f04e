// Package testutils provides helpers shared by the package tests: migrated
// throwaway databases, transaction isolation, store bundles and fixture
// builders for the domain types.
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    t.Parallel()
//
//	    db := testutils.OpenTestDB(t)
//	    testutils.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        stores := testutils.CreateTestStores(tx)
//	        user := testutils.MustInsertUser(ctx, t, stores, "someone@example.com")
//	        // ...
//	    })
//	}
package testutils
