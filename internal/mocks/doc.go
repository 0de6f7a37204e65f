// Package mocks provides centralized mock implementations for testing.
//
// Each mock is a struct with function fields for the interface methods it
// implements plus default return values used when a function field is nil.
// Calls are recorded so tests can assert on what happened:
//
//	import "github.com/phrazzld/scry-drill/internal/mocks"
//
//	func TestSomething(t *testing.T) {
//	    port := &mocks.MockPort{
//	        Continues: []bool{true, false},
//	        Corrects:  []bool{true},
//	    }
//
//	    // Use the mock in your test...
//	}
//
// When adding a new mock to this package:
//  1. Create a new file named after the interface being mocked
//  2. Implement the mock struct with function fields for each interface method
//  3. Document any helper methods or special functionality
package mocks
