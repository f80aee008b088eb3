package schedule

import "testing"

func TestTimeToMinutes(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"9:50", 590},
		{"0:00", 0},
		{"13:05", 785},
		{"4:00", 240},
		{" 9 : 30 ", 570},
		{"", 0},
		{"950", 0},
		{"9:50:30", 0},
		{"x:10", 0},
		{"10:x", 0},
	}
	for _, tt := range tests {
		if got := TimeToMinutes(tt.input); got != tt.want {
			t.Errorf("TimeToMinutes(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}
