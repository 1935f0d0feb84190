package sumhash

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"
)

// Fixed dimensions of the sumhash512 compression matrix: 512 output rows
// organized as 8 lanes of 64 bits each, 1024 input columns organized as 128
// column-blocks of 8 columns each.
const (
	matrixRows  = 512
	matrixCols  = 1024
	matrixLanes = matrixRows / 64
	numBlocks   = matrixCols / 8
)

// matrixSeed is the fixed, public seed from which the compression matrix is
// expanded. A fixed public matrix is what makes sumhash512 keyless.
var matrixSeed = []byte("Algorand")

// column is one column of the compression matrix: a Z_{2^64}-valued entry
// per lane, lane k holding the entry for rows 64k..64k+63.
type column [matrixLanes]uint64

// generateMatrix deterministically expands matrixSeed into the 512x1024
// compression matrix, stored column-major. Entries are full 64-bit unsigned
// integers, not single bits: §9's wraparound-arithmetic rationale (short-
// integer-solution hardness modulo 2^64 per lane) requires that A·x can
// actually wrap, which a {0,1} matrix could never do.
//
// Shake-256 first absorbs a 6-byte parameter header (entry width 64, lane
// count and column count, each a little-endian uint16), then the seed, and
// is squeezed for exactly matrixLanes*matrixCols*8 bytes (one little-endian
// uint64 per lane per column). The squeeze is consumed in lane-major order:
// lane k's 1024 column entries come first (8 bytes each), then lane k+1's.
func generateMatrix() [matrixCols]column {
	xof := sha3.NewShake256()
	var hdr [6]byte
	binary.LittleEndian.PutUint16(hdr[0:2], 64)
	binary.LittleEndian.PutUint16(hdr[2:4], matrixLanes)
	binary.LittleEndian.PutUint16(hdr[4:6], matrixCols)
	xof.Write(hdr[:])
	xof.Write(matrixSeed)

	squeeze := make([]byte, matrixLanes*matrixCols*8)
	if _, err := xof.Read(squeeze); err != nil {
		panic("sumhash: shake256 squeeze failed: " + err.Error())
	}

	var cols [matrixCols]column
	for lane := 0; lane < matrixLanes; lane++ {
		base := lane * matrixCols * 8
		for j := 0; j < matrixCols; j++ {
			off := base + j*8
			cols[j][lane] = binary.LittleEndian.Uint64(squeeze[off : off+8])
		}
	}
	return cols
}

// lookupTable is the precomputed grouping of matrix columns into
// byte-indexed lane sums: lookupTable[j][b] is the lane-wise sum, modulo
// 2^64, of the columns in block j selected by the set bits of b.
type lookupTable [numBlocks][256]column

// buildLookupTable precomputes, for every column-block and every possible
// byte value, the modular lane-sum of the columns that byte selects. Bit i
// of a block's index byte selects column 8*j+i of that block,
// least-significant bit first; this selection order is independent of how
// generateMatrix filled each column's entries.
func buildLookupTable(cols [matrixCols]column) *lookupTable {
	var t lookupTable
	for j := 0; j < numBlocks; j++ {
		base := 8 * j
		for b := 0; b < 256; b++ {
			var acc column
			for i := 0; i < 8; i++ {
				if b&(1<<uint(i)) == 0 {
					continue
				}
				c := cols[base+i]
				for lane := 0; lane < matrixLanes; lane++ {
					acc[lane] += c[lane]
				}
			}
			t[j][b] = acc
		}
	}
	return &t
}
