package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/ChuLiYu/go-async-runtime/internal/client"
)

// readMatrixCells reads k, n, then k*n (value, delay_ms) pairs from r,
// in the row-major order original_source/macierz.c reads them.
func readMatrixCells(r io.Reader) ([][]client.Cell, error) {
	var k, n uint64
	if _, err := fmt.Fscan(r, &k, &n); err != nil {
		return nil, err
	}

	cells := make([][]client.Cell, k)
	for i := range cells {
		cells[i] = make([]client.Cell, n)
		for j := range cells[i] {
			var value int64
			var delayMs uint64
			if _, err := fmt.Fscan(r, &value, &delayMs); err != nil {
				return nil, err
			}
			cells[i][j] = client.Cell{Value: value, Delay: time.Duration(delayMs) * time.Millisecond}
		}
	}
	return cells, nil
}
