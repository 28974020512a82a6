package bit

// Combine joins two bytes into a big-endian 16 bit word.
func Combine(high, low uint8) uint16 {
	return (uint16(high) << 8) | uint16(low)
}

// High returns the most significant byte of a word.
func High(value uint16) uint8 {
	return uint8(value >> 8)
}

// Low returns the least significant byte of a word.
func Low(value uint16) uint8 {
	return uint8(value)
}

// Nibble returns the 4 bit group at position n of a word, 0 being the lowest.
func Nibble(value uint16, n uint8) uint8 {
	return uint8(value>>(4*n)) & 0x0F
}

// Addr returns the low 12 bits of a word.
func Addr(value uint16) uint16 {
	return value & 0x0FFF
}

// CheckedAdd adds two bytes and reports whether the sum overflowed 8 bits.
func CheckedAdd(a, b uint8) (result uint8, overflow bool) {
	sum := uint16(a) + uint16(b)
	return uint8(sum), sum > 0xFF
}

// CheckedSub subtracts b from a and reports whether a borrow happened (a < b).
func CheckedSub(a, b uint8) (result uint8, borrow bool) {
	return a - b, a < b
}

// IsSet checks if the bit at index is 1.
func IsSet(index, value uint8) bool {
	return ((value >> index) & 1) == 1
}

// GetBitValue returns the bit at index as 0 or 1.
func GetBitValue(index, value uint8) uint8 {
	return (value >> index) & 1
}

// Digits splits a byte into its decimal hundreds, tens and ones.
func Digits(value uint8) (hundreds, tens, ones uint8) {
	return value / 100, (value / 10) % 10, value % 10
}
