package util

import "github.com/valyala/fastrand"

// Session codes avoid characters that read ambiguously when shared out loud
// or typed from a screen (0/O, 1/I/L).
const codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// GenerateCode returns a human-typable uppercase code of n characters.
func GenerateCode(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = codeAlphabet[fastrand.Uint32n(uint32(len(codeAlphabet)))]
	}
	return string(b)
}
