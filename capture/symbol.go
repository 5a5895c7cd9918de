package capture

import "fmt"

// Symbol alphabet used by the GameCube export in place of the usual base64
// one. The index of each character is its 6-bit value.
const alphabet = "TAZOLYNdnE9mP6ci3SzeqIyXBhDgfQp7l5batM4rFKJj8CusxR1+k2V0wUGovWH/"

func (t *Tables) symbol(b byte) byte {
	return t.symbols[b&0x7f]
}

// DecodeSymbols converts every 4 symbols in src into 3 bytes. Bytes that
// are not in the alphabet decode as zero rather than failing.
func (t *Tables) DecodeSymbols(src []byte) ([]byte, error) {
	if len(src)%4 != 0 {
		return nil, &SizeError{
			Stage: "symbol",
			Want:  len(src) + 4 - len(src)%4,
			Got:   len(src),
		}
	}

	dst := make([]byte, len(src)/4*3)
	for i, j := 0, 0; i < len(src); i, j = i+4, j+3 {
		v0, v1, v2, v3 := t.symbol(src[i]), t.symbol(src[i+1]), t.symbol(src[i+2]), t.symbol(src[i+3])

		dst[j+0] = v0<<2 | v1>>4
		dst[j+1] = v1<<4 | v2>>2
		dst[j+2] = v2<<6 | v3
	}
	return dst, nil
}

// DecodeSymbols decodes src using the default tables.
func DecodeSymbols(src []byte) ([]byte, error) {
	return defaultTables.DecodeSymbols(src)
}

// EncodeSymbols is the inverse of DecodeSymbols. The length of src must be
// a multiple of 3.
func EncodeSymbols(src []byte) ([]byte, error) {
	if len(src)%3 != 0 {
		return nil, fmt.Errorf("capture: symbol input length %d is not a multiple of 3", len(src))
	}

	dst := make([]byte, len(src)/3*4)
	for i, j := 0, 0; i < len(src); i, j = i+3, j+4 {
		b0, b1, b2 := src[i], src[i+1], src[i+2]

		dst[j+0] = alphabet[b0>>2]
		dst[j+1] = alphabet[(b0&0x03)<<4|b1>>4]
		dst[j+2] = alphabet[(b1&0x0f)<<2|b2>>6]
		dst[j+3] = alphabet[b2&0x3f]
	}
	return dst, nil
}
