//go:build release

package t2048

const assertionsFatal = false
