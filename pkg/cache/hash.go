package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/matzehuels/flowshop/pkg/flowshop"
)

// MatrixHash returns the hex SHA-256 of m. Every row is length-prefixed, so
// ragged matrices holding the same values in a different layout hash apart.
func MatrixHash(m flowshop.Matrix) string {
	h := sha256.New()
	var buf [binary.MaxVarintLen64]byte
	put := func(v int) {
		n := binary.PutVarint(buf[:], int64(v))
		h.Write(buf[:n])
	}

	put(len(m))
	for _, row := range m {
		put(len(row))
		for _, v := range row {
			put(v)
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

// outcomeKey returns "outcome:<sha256>" over the fields that change an
// outcome. Fields are NUL separated; algorithm names never contain NUL.
func outcomeKey(algorithm, matrixHash string, opts OutcomeKeyOpts) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s\x00%d\x00%d", algorithm, matrixHash, int64(opts.TimeLimit), opts.NodeLimit)
	return "outcome:" + hex.EncodeToString(h.Sum(nil))
}
