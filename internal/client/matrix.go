// ============================================================================
// Async-Runtime Sample Client - Matrix Row Sums
// ============================================================================
//
// Package: internal/client
// File: matrix.go
// Function: Fills a k*n matrix of independent delayed computations in
//           parallel and sums each row, adapted from
//           original_source/macierz.c.
//
// ============================================================================

package client

import (
	"time"

	"github.com/ChuLiYu/go-async-runtime/internal/future"
	"github.com/ChuLiYu/go-async-runtime/internal/pool"
)

// Cell mirrors macierz.c's cell_data_t: the value the cell resolves
// to, and how long computing it takes.
type Cell struct {
	Value int64
	Delay time.Duration
}

func calcCell(c Cell) int64 {
	time.Sleep(c.Delay)
	return c.Value
}

// MatrixRowSums submits one Async task per cell (all k*n of them
// in parallel, exactly as macierz.c's nested submission loop does) and
// then Awaits row by row, returning each row's sum in order.
func MatrixRowSums(p *pool.Pool, cells [][]Cell) ([]int64, error) {
	futures := make([][]*future.Future[int64], len(cells))

	for i, row := range cells {
		futures[i] = make([]*future.Future[int64], len(row))
		for j, cell := range row {
			f, err := future.Async[Cell, int64](p, cell, calcCell)
			if err != nil {
				return nil, err
			}
			futures[i][j] = f
		}
	}

	sums := make([]int64, len(cells))
	for i, row := range futures {
		var sum int64
		for _, f := range row {
			sum += f.Await()
		}
		sums[i] = sum
	}
	return sums, nil
}
