// Copyright © 2025 Ansisnap contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: checksum/cksum.go
// Summary: In-process implementation of the POSIX cksum CRC.
//
// Cache keys must stay portable across machines and verifiable against the
// widely available cksum(1) utility, so the exact published algorithm is
// implemented here: CRC-32 with polynomial 0x04C11DB7, unreflected, zero
// initial value, the message length fed in as trailing bytes (least
// significant first, leading zero octets omitted), and a final one's
// complement. hash/crc32 implements the reflected IEEE variant and cannot
// produce these values.

package checksum

import "strconv"

const cksumPoly = 0x04C11DB7

var cksumTable [256]uint32

func init() {
	for i := range cksumTable {
		c := uint32(i) << 24
		for bit := 0; bit < 8; bit++ {
			if c&0x80000000 != 0 {
				c = c<<1 ^ cksumPoly
			} else {
				c <<= 1
			}
		}
		cksumTable[i] = c
	}
}

// Cksum returns the POSIX cksum CRC of data. It is deterministic and pure:
// equal inputs always produce equal values, with no side effects.
func Cksum(data []byte) uint32 {
	var crc uint32
	for _, b := range data {
		crc = crc<<8 ^ cksumTable[byte(crc>>24)^b]
	}
	// The length participates in the CRC, least significant byte first.
	// A zero length contributes no bytes, so cksum of empty input is the
	// bare complement 0xFFFFFFFF.
	for n := len(data); n > 0; n >>= 8 {
		crc = crc<<8 ^ cksumTable[byte(crc>>24)^byte(n)]
	}
	return ^crc
}

// CksumString is Cksum over the bytes of s.
func CksumString(s string) uint32 {
	return Cksum([]byte(s))
}

// Fallback is a simple 31-multiplier polynomial hash. It exists as the
// documented alternative for content the primary algorithm cannot process;
// with an in-process CRC there is no such content, and Fallback is never
// substituted silently.
func Fallback(data []byte) uint32 {
	var h uint32
	for _, b := range data {
		h = h*31 + uint32(b)
	}
	return h
}

// Format renders a hash value the way cache keys expect it: the decimal
// string representation of an unsigned 32-bit integer.
func Format(h uint32) string {
	return strconv.FormatUint(uint64(h), 10)
}
