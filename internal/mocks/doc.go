// Package mocks provides centralized mock implementations for testing.
//
// Mocks come in two flavours: function-field mocks (MockUserStore,
// MockPasswordVerifier, MockTokenStore) whose behaviour is customised by
// assigning functions, and testify/mock based mocks (TestifyMockUserStore,
// TestifyMockRoleStore) for tests that assert on expected calls.
//
// Usage:
//
//	import "github.com/phrazzld/taskboard-api/internal/mocks"
//
//	func TestSomething(t *testing.T) {
//	    tokens := &mocks.MockTokenStore{
//	        ResolveFn: func(ctx context.Context, token string) (uuid.UUID, bool) {
//	            return userID, token == "valid"
//	        },
//	    }
//
//	    // Use the mock in your test...
//	}
package mocks
