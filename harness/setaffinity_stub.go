//go:build !linux

// setaffinity_stub.go
//
// No-op affinity stub for platforms without sched_setaffinity.

package harness

func setAffinity(cpu int) {}
