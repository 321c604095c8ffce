package game

import "testing"

func TestSafeIntDiv(t *testing.T) {
	cases := []struct {
		a, b, want int
	}{
		{6, 3, 2},
		{7, 3, 2},
		{-4, 3, -1},
		{-7, 3, -2},
		{4, -3, -1},
		{5, 0, 0},
		{0, 7, 0},
	}
	for _, c := range cases {
		if got := SafeIntDiv(c.a, c.b); got != c.want {
			t.Errorf("SafeIntDiv(%d, %d) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestGetModdedValue(t *testing.T) {
	cases := []struct {
		base, flat, pct, want int
	}{
		{10, 0, 0, 10},
		{10, 5, 0, 15},
		{10, 0, 50, 15},
		{10, 5, 50, 22},  // (10+5)*150/100 truncated
		{10, 0, -50, 5},
		{7, 0, 50, 10},   // 10.5 truncates toward zero
		{-7, 0, 50, -10}, // symmetric truncation for negatives
		{0, 0, 100, 0},
	}
	for _, c := range cases {
		if got := GetModdedValue(c.base, c.flat, c.pct); got != c.want {
			t.Errorf("GetModdedValue(%d, %d, %d) = %d, want %d", c.base, c.flat, c.pct, got, c.want)
		}
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(15, 0, 10); got != 10 {
		t.Errorf("Clamp(15, 0, 10) = %d, want 10", got)
	}
	if got := Clamp(-3, 0, 10); got != 0 {
		t.Errorf("Clamp(-3, 0, 10) = %d, want 0", got)
	}
	if got := Clamp(7, 0, 10); got != 7 {
		t.Errorf("Clamp(7, 0, 10) = %d, want 7", got)
	}
}
