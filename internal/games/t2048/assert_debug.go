//go:build !release

package t2048

// assertionsFatal makes failed invariant checks panic in development and test
// builds. Build with -tags release to turn them into returned errors.
const assertionsFatal = true
