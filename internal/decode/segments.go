package decode

// digitsByMask maps a packed 7-bit segment mask (segment a = bit 6 down
// to g = bit 0) to its decimal digit. Six and nine each accept two
// handwriting variants, per spec.md §4.8.
var digitsByMask = map[uint8]int{
	0b1111110: 0,
	0b0110000: 1,
	0b1101101: 2,
	0b1111001: 3,
	0b0110011: 4,
	0b1011011: 5,
	0b1011111: 6,
	0b0011111: 6,
	0b1110000: 7,
	0b1111111: 8,
	0b1111011: 9,
	0b1110011: 9,
}

const emptyMask uint8 = 0b0000000
