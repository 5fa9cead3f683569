// Package compare diffs two generated site trees structurally and
// semantically.
//
// Every check runs and reports on its own; nothing short-circuits. The
// comparison reads only the two trees, so comparing unchanged outputs
// twice yields identical results.
package compare
