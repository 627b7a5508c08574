package lockdown

import "testing"

func TestBlocked(t *testing.T) {
	tests := []struct {
		chord Chord
		want  bool
	}{
		{Chord{Key: "u", Ctrl: true}, true},
		{Chord{Key: "S", Ctrl: true}, true},
		{Chord{Key: "p", Ctrl: true, Shift: true}, true},
		{Chord{Key: "I", Ctrl: true, Shift: true}, true},
		{Chord{Key: "j", Ctrl: true, Shift: true}, true},
		{Chord{Key: "c", Ctrl: true, Shift: true}, true},
		{Chord{Key: "F12"}, true},
		{Chord{Key: "f12", Shift: true}, true},

		{Chord{Key: "c", Ctrl: true}, false},
		{Chord{Key: "i", Ctrl: true}, false},
		{Chord{Key: "i", Shift: true}, false},
		{Chord{Key: "u"}, false},
		{Chord{Key: "a", Ctrl: true}, false},
		{Chord{Key: "F11"}, false},
	}
	for _, tt := range tests {
		if got := Blocked(tt.chord); got != tt.want {
			t.Errorf("Blocked(%+v) = %v, want %v", tt.chord, got, tt.want)
		}
	}
}
