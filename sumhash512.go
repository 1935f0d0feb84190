package sumhash

import (
	"encoding/binary"
	"errors"
	"hash"
)

// DigestSize is the size, in bytes, of a Sumhash512 digest.
const DigestSize = chainSize

// BlockSize is the size, in bytes, of a Sumhash512 message block.
const BlockSize = 64

// SaltSize is the required size, in bytes, of a salt passed to NewSalted.
const SaltSize = 64

// Digest represents the partial evaluation of a Sumhash512 checksum.
type Digest struct {
	table *lookupTable

	chain    [chainSize]byte
	lenBytes uint64

	salt *[SaltSize]byte

	buf    [BlockSize]byte
	bufLen int
}

// New returns a new unsalted Sumhash512 hasher.
func New() *Digest {
	d := &Digest{table: sharedTable()}
	d.Reset()
	return d
}

// NewSalted returns a new Sumhash512 hasher salted with salt, which must be
// exactly SaltSize bytes. The salt is XORed into every absorbed message
// block and is additionally absorbed as a synthetic all-zero prelude block,
// which is equivalent to prepending the salt itself to the input.
func NewSalted(salt []byte) (*Digest, error) {
	if len(salt) != SaltSize {
		return nil, errors.New("sumhash: salt must be exactly 64 bytes")
	}
	d := &Digest{table: sharedTable(), salt: new([SaltSize]byte)}
	copy(d.salt[:], salt)
	d.Reset()
	return d, nil
}

// Reset returns the hasher to its initial state: a zero chain, zero length,
// and an empty buffer. A salted hasher re-runs its zero-block prelude.
func (d *Digest) Reset() {
	d.chain = [chainSize]byte{}
	d.lenBytes = 0
	d.bufLen = 0
	if d.salt != nil {
		var zero [BlockSize]byte
		d.absorbBlock(&zero)
	}
}

// Size returns DigestSize.
func (d *Digest) Size() int { return DigestSize }

// BlockSize returns BlockSize.
func (d *Digest) BlockSize() int { return BlockSize }

// absorbBlock drives one message block through the compression function,
// XORing it against the salt first if the hasher is salted.
func (d *Digest) absorbBlock(block *[BlockSize]byte) {
	var cin [compressInputSize]byte
	copy(cin[:chainSize], d.chain[:])
	if d.salt != nil {
		for i := range block {
			cin[chainSize+i] = block[i] ^ d.salt[i]
		}
	} else {
		copy(cin[chainSize:], block[:])
	}
	compress(d.table, &d.chain, &cin)
	d.lenBytes += BlockSize
}

// Write absorbs p into the running hash. It never returns an error and
// always reports len(p) written, satisfying io.Writer and hash.Hash.
func (d *Digest) Write(p []byte) (n int, err error) {
	n = len(p)

	if d.bufLen > 0 {
		c := copy(d.buf[d.bufLen:], p)
		d.bufLen += c
		p = p[c:]
		if d.bufLen == BlockSize {
			d.absorbBlock(&d.buf)
			d.bufLen = 0
		}
	}

	for len(p) >= BlockSize {
		var block [BlockSize]byte
		copy(block[:], p[:BlockSize])
		d.absorbBlock(&block)
		p = p[BlockSize:]
	}

	if len(p) > 0 {
		d.bufLen = copy(d.buf[:], p)
	}

	return n, nil
}

// Sum appends the digest of the current state to b and returns the
// resulting slice without modifying the underlying hasher, per hash.Hash.
func (d *Digest) Sum(b []byte) []byte {
	dup := *d
	out := dup.Finalize()
	return append(b, out[:]...)
}

// Finalize pads and absorbs the length trailer, consuming the hasher's
// state, and returns the 64-byte digest. After Finalize the hasher must not
// be written to again until Reset is called.
func (d *Digest) Finalize() [DigestSize]byte {
	bitLen := (d.lenBytes + uint64(d.bufLen)) << 3

	const trailerSize = 16
	const zeroRoom = BlockSize - trailerSize // bytes of zero-padding room before the trailer

	pad := make([]byte, BlockSize)
	pad[0] = 0x01
	if d.bufLen < zeroRoom {
		d.Write(pad[:zeroRoom-d.bufLen])
	} else {
		d.Write(pad[:BlockSize+zeroRoom-d.bufLen])
	}

	var trailer [trailerSize]byte
	binary.LittleEndian.PutUint64(trailer[0:8], bitLen)
	// trailer[8:16] stays zero: the high 64 bits of the 128-bit bit-length
	// encoding are always zero, per the wire contract in spec section 6.
	d.Write(trailer[:])

	if d.bufLen != 0 {
		panic("sumhash: invalid padding, buffer not block-aligned after finalize")
	}

	return d.chain
}

var _ hash.Hash = (*Digest)(nil)
