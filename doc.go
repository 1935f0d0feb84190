// Package sumhash implements Sumhash512, a 512-bit keyless cryptographic
// hash built around a fixed pseudo-random Z_{2^64} matrix: the compression
// function reduces 1024 input bits to 512 output bits by summing
// precomputed column-block sums modulo 2^64 across 8 independent 64-bit
// lanes, and a thin Merkle-Damgard wrapper streams arbitrary-length input
// through it with an optional 64-byte salt.
package sumhash
