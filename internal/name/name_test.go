package name

import "testing"

func TestNormalise(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		// Basic names
		{"drop/avatar", "drop/avatar", false},
		{"clipboard", "clipboard", false},

		// Nested names
		{"drop/icons/small", "drop/icons/small", false},

		// Leading/trailing slashes
		{"/drop/avatar", "drop/avatar", false},
		{"drop/avatar/", "drop/avatar", false},
		{"drop//avatar", "drop/avatar", false},

		// Traversal names that resolve cleanly (not rejected)
		{"drop/../secret", "secret", false},

		// Invalid names
		{"", "", true},
		{".", "", true},
		{"..", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Normalise(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("Normalise(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("Normalise(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDirect(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		want   bool
	}{
		{"drop/avatar", "drop", true},
		{"drop/icons/small", "drop", false},
		{"drop", "drop", true},
		{"clipboard", "", true},
		{"drop/avatar", "", false},
		{"other/avatar", "drop", false},
		{"drop/avatar", "drop/", true},
	}

	for _, tt := range tests {
		if got := Direct(tt.name, tt.prefix); got != tt.want {
			t.Errorf("Direct(%q, %q) = %v, want %v", tt.name, tt.prefix, got, tt.want)
		}
	}
}
