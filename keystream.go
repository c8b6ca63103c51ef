// SPDX-License-Identifier: MIT

package mabipack

import "gonum.org/v1/gonum/mathext/prng"

// keystreamSeedMask is XORed into the shifted version key to form the
// generator seed.
const keystreamSeedMask = 0xA9C36DE1

// keystream is the deterministic byte source used to obfuscate compressed
// entry content. XOR is self-inverse, so the same stream both encodes and
// decodes.
type keystream struct {
	src *prng.MT19937
}

// newKeystream seeds a 32-bit Mersenne Twister from the container version key.
func newKeystream(version uint32) *keystream {
	src := prng.NewMT19937()
	src.Seed(uint64(version<<7 ^ keystreamSeedMask))

	return &keystream{src: src}
}

// apply XORs buf in place with the next len(buf) keystream bytes.
//
// One full 32-bit word is drawn per output byte and truncated to its low
// 8 bits. The game client consumes the generator at exactly this rate;
// drawing fewer words per byte produces a different stream and breaks
// binary compatibility with existing containers.
func (k *keystream) apply(buf []byte) {
	for i := range buf {
		buf[i] ^= byte(k.src.Uint32())
	}
}
