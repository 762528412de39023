package checksum

import "testing"

// Reference values verified against cksum(1).
func TestCksumKnownValues(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  uint32
	}{
		{"empty", "", 4294967295},
		{"check string", "123456789", 930766865},
		{"single byte", "a", 1220704766},
		{"newline significant", "hello\n", 3015617425},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CksumString(tt.input); got != tt.want {
				t.Errorf("Cksum(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestCksumDeterministic(t *testing.T) {
	data := []byte("ls --color=always -l \x1b[31mREADME\x1b[0m")
	first := Cksum(data)
	for i := 0; i < 10; i++ {
		if got := Cksum(data); got != first {
			t.Fatalf("repeated call returned %d, first call returned %d", got, first)
		}
	}
}

func TestCksumDistinguishesContent(t *testing.T) {
	a := CksumString("line one")
	b := CksumString("line two")
	if a == b {
		t.Errorf("distinct inputs hashed to the same value %d", a)
	}
}

func TestFormat(t *testing.T) {
	if got := Format(4294967295); got != "4294967295" {
		t.Errorf("Format(4294967295) = %q", got)
	}
	if got := Format(0); got != "0" {
		t.Errorf("Format(0) = %q", got)
	}
}

func TestFallback(t *testing.T) {
	// h = h*31 + b over "ab": 'a'*31 + 'b' = 3105.
	if got := Fallback([]byte("ab")); got != 3105 {
		t.Errorf("Fallback(\"ab\") = %d, want 3105", got)
	}
	if got := Fallback(nil); got != 0 {
		t.Errorf("Fallback(nil) = %d, want 0", got)
	}
}
