// Package types provides shared data structures for the memdrive backend.
//
// This package defines the service surface used across all components:
//
//   - Service: Service provider definition
//   - Tool: Service tool specification
//   - Parameter: Tool parameter schema
//   - Context: Execution context (session selection)
//   - Result: Standard operation result
//
// Example Usage:
//
//	res := &types.Result{
//	    Success: true,
//	    Data:    map[string]interface{}{"message": "created C:/docs"},
//	}
package types
