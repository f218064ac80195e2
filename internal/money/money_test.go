package money

import "testing"

func TestParseCents(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"12.34", 1234, false},
		{"12,34", 1234, false},
		{" 45.00 ", 4500, false},
		{"90", 9000, false},
		{"0", 0, false},
		{"0.5", 50, false},
		{".75", 75, false},
		{"12.345", 1234, false}, // rounds down
		{"12.346", 1235, false}, // rounds up
		{"", 0, true},
		{"-5", 0, true},
		{"+5", 0, true},
		{"1.2.3", 0, true},
		{"abc", 0, true},
		{"12.x", 0, true},
		{"92233720368547758.07", 1<<63 - 1, false}, // largest representable amount
		{"92233720368547758.08", 0, true},          // one cent past int64
		{"92233720368547758.99", 0, true},
		{"92233720368547759", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCents(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCents(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseCents(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatCents(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{1234, "12.34"},
		{0, "0.00"},
		{5, "0.05"},
		{-1250, "-12.50"},
		{9000, "90.00"},
	}

	for _, tt := range tests {
		if got := FormatCents(tt.in); got != tt.want {
			t.Errorf("FormatCents(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
