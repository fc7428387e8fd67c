// ============================================================================
// Async-Runtime Sample Client - Factorial
// ============================================================================
//
// Package: internal/client
// File: factorial.go
// Function: Computes n! by chaining n-1 multiplications through futures,
//           adapted from original_source/silnia.c.
//
// ============================================================================

package client

import (
	"github.com/ChuLiYu/go-async-runtime/internal/future"
	"github.com/ChuLiYu/go-async-runtime/internal/pool"
)

// factorialIter mirrors silnia.c's iter_t: the running product and the
// next multiplicand.
type factorialIter struct {
	k      uint64
	retval uint64
}

func multiplyAndAdvance(it factorialIter) factorialIter {
	it.retval *= it.k
	it.k++
	return it
}

// Factorial computes n! on p by chaining n-1 Map calls starting from
// the seed {k:1, retval:1}, exactly as silnia.c's main loop does with
// async/map. n == 0 and n == 1 both return 1 without deferring any
// multiplication beyond the seed task.
func Factorial(p *pool.Pool, n uint64) (uint64, error) {
	seed, err := future.Async[factorialIter, factorialIter](p, factorialIter{k: 1, retval: 1}, multiplyAndAdvance)
	if err != nil {
		return 0, err
	}

	cur := seed
	for k := uint64(1); k < n; k++ {
		cur, err = future.Map[factorialIter, factorialIter](p, cur, multiplyAndAdvance)
		if err != nil {
			return 0, err
		}
	}

	return cur.Await().retval, nil
}
