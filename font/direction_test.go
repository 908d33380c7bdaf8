package font

import "testing"

func TestDetectDirectionLTR(t *testing.T) {
	if got := DetectDirection("hello world"); got != DirectionLTR {
		t.Fatalf("DetectDirection(ascii) = %v, want DirectionLTR", got)
	}
}

func TestDetectDirectionEmptyIsLTR(t *testing.T) {
	if got := DetectDirection(""); got != DirectionLTR {
		t.Fatalf("DetectDirection(\"\") = %v, want DirectionLTR", got)
	}
}

func TestDetectDirectionRTL(t *testing.T) {
	// Hebrew: "shalom" in Hebrew script, a pure-RTL paragraph.
	if got := DetectDirection("שלום"); got != DirectionRTL {
		t.Fatalf("DetectDirection(hebrew) = %v, want DirectionRTL", got)
	}
}
