package config

import "testing"

func TestFingerprintDeterministic(t *testing.T) {
	a := Default()
	a.ApplyFontMetrics()
	b := Default()
	b.ApplyFontMetrics()
	if a.Fingerprint() != b.Fingerprint() {
		t.Errorf("equal configs fingerprint differently: %s vs %s", a.Fingerprint(), b.Fingerprint())
	}
}

func TestFingerprintSensitivity(t *testing.T) {
	base := Default()
	base.ApplyFontMetrics()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"font size", func(c *Config) { c.FontSize = 15 }},
		{"font family", func(c *Config) { c.FontFamily = "Menlo" }},
		{"font width", func(c *Config) { c.FontWidth += 0.01 }},
		{"grid width", func(c *Config) { c.Width = 100 }},
		{"wrap flag", func(c *Config) { c.Wrap = true }},
		{"tab size", func(c *Config) { c.TabSize = 4 }},
		{"padding", func(c *Config) { c.Padding = 24 }},
		{"text color", func(c *Config) { c.TextColor = "#eeeeee" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mutated := *base
			tt.mutate(&mutated)
			if mutated.Fingerprint() == base.Fingerprint() {
				t.Errorf("changing %s did not change the fingerprint", tt.name)
			}
			if mutated.canonical() == base.canonical() {
				t.Errorf("changing %s did not change the canonical serialization", tt.name)
			}
		})
	}
}

func TestFingerprintIgnoresIOFields(t *testing.T) {
	a := Default()
	a.ApplyFontMetrics()
	b := *a
	b.InputFile = "in.txt"
	b.OutputFile = "out.svg"
	b.Debug = true
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("I/O-only fields must not affect the fingerprint")
	}
}

func TestApplyFontMetrics(t *testing.T) {
	c := Default()
	c.ApplyFontMetrics()
	if c.FontWidth != 14*0.60 {
		t.Errorf("FontWidth = %v, want %v", c.FontWidth, 14*0.60)
	}
	if c.FontHeight != 14*1.2 {
		t.Errorf("FontHeight = %v, want %v", c.FontHeight, 14*1.2)
	}

	c = Default()
	c.FontFamily = "JetBrains Mono"
	c.ApplyFontMetrics()
	if c.FontWidth != 14*0.55 {
		t.Errorf("JetBrains Mono FontWidth = %v, want %v", c.FontWidth, 14*0.55)
	}

	c = Default()
	c.FontWidth = 9.5
	c.FontWidthSet = true
	c.ApplyFontMetrics()
	if c.FontWidth != 9.5 {
		t.Errorf("explicit FontWidth overridden to %v", c.FontWidth)
	}
}

func TestFontLookups(t *testing.T) {
	if FontRatio("Ubuntu Mono") != 50 {
		t.Errorf("Ubuntu Mono ratio = %d", FontRatio("Ubuntu Mono"))
	}
	if FontRatio("Unknown Font") != 60 {
		t.Errorf("unknown family ratio = %d, want 60", FontRatio("Unknown Font"))
	}
	if _, ok := GoogleFontURL("Fira Code"); !ok {
		t.Error("Fira Code should be a Google Font")
	}
	if _, ok := GoogleFontURL("Consolas"); ok {
		t.Error("Consolas is a system font")
	}
}
