package util

import (
	"strings"
	"testing"
)

func TestGenerateCodeLength(t *testing.T) {
	for _, n := range []int{1, 6, 8} {
		code := GenerateCode(n)
		if len(code) != n {
			t.Errorf("expected code of length %d, got %q", n, code)
		}
	}
}

func TestGenerateCodeAlphabet(t *testing.T) {
	for i := 0; i < 50; i++ {
		code := GenerateCode(6)
		for _, r := range code {
			if !strings.ContainsRune(codeAlphabet, r) {
				t.Fatalf("code %q contains %q outside the alphabet", code, r)
			}
		}
	}
}
