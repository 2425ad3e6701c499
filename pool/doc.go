// Package pool
// Author: momentics <momentics@gmail.com>
//
// Concurrent, size-classed array pool for fixed-capacity element buffers.
// Rented buffers are cached per OS thread on release and reused by any
// thread through a cross-thread steal path, eliminating allocation churn
// on hot paths that repeatedly need boundable temporary arrays.
// See arraypool.go for the size-class router, chain.go for the
// borrow/return engine and slice.go for the borrow handle.
package pool
