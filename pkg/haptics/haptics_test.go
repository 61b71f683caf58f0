package haptics

import (
	"math"
	"testing"
)

func TestClickLength(t *testing.T) {
	click, err := Click(SampleRate)
	if err != nil {
		t.Fatalf("Click() error: %v", err)
	}

	buf := make([][2]float64, 512)
	total := 0
	peak := 0.0
	for {
		n, ok := click.Stream(buf)
		for _, s := range buf[:n] {
			peak = math.Max(peak, math.Abs(s[0]))
		}
		total += n
		if !ok {
			break
		}
	}

	if want := SampleRate.N(ClickDuration); total != want {
		t.Errorf("click samples = %d, want %d", total, want)
	}
	// Volume -2 in base 2 scales the sine by 1/4.
	if peak <= 0 || peak > 0.26 {
		t.Errorf("peak amplitude = %v, want (0, 0.25]", peak)
	}
}

func TestUninitializedBeepIsSilent(t *testing.T) {
	b := NewBeep()
	b.LightImpact()
	b.Close()
}

func TestSilent(t *testing.T) {
	var f Feedback = Silent{}
	f.LightImpact()
}
