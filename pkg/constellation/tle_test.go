package constellation

import (
	"strings"
	"testing"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"
)

var testEpoch = time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)

func testElements(satNum int) elements {
	return elements{
		SatNum:         satNum,
		Epoch:          testEpoch,
		InclinationDeg: 53,
		RAANDeg:        15,
		Eccentricity:   0.001,
		ArgPerigeeDeg:  0,
		MeanAnomalyDeg: 120,
		MeanMotion:     15.05,
		Bstar:          2.8098e-05,
	}
}

func TestEncodeTLELineShape(t *testing.T) {
	l1, l2 := encodeTLE(testElements(42))

	if len(l1) != 69 {
		t.Fatalf("line 1 is %d characters, want 69: %q", len(l1), l1)
	}
	if len(l2) != 69 {
		t.Fatalf("line 2 is %d characters, want 69: %q", len(l2), l2)
	}
	if !strings.HasPrefix(l1, "1 00042U") {
		t.Errorf("line 1 prefix wrong: %q", l1)
	}
	if !strings.HasPrefix(l2, "2 00042") {
		t.Errorf("line 2 prefix wrong: %q", l2)
	}
	// epoch field: day 1 of year 21
	if got := l1[18:32]; got != "21001.00000000" {
		t.Errorf("epoch field = %q, want 21001.00000000", got)
	}
	// eccentricity field: implied decimal point
	if got := l2[26:33]; got != "0010000" {
		t.Errorf("eccentricity field = %q, want 0010000", got)
	}
	// drag term in exponent notation
	if got := l1[53:61]; got != " 28098-4" {
		t.Errorf("bstar field = %q, want \" 28098-4\"", got)
	}
}

func TestEncodeTLEChecksums(t *testing.T) {
	l1, l2 := encodeTLE(testElements(7))
	for _, line := range []string{l1, l2} {
		if got, want := string(line[68]), checksumDigit(line[:68]); got != want {
			t.Errorf("checksum %q, want %q for %q", got, want, line)
		}
	}
}

func TestTLEExpField(t *testing.T) {
	cases := []struct {
		v    float64
		want string
	}{
		{0, " 00000-0"},
		{2.8098e-05, " 28098-4"},
		{-2.8098e-05, "-28098-4"},
		{0.5, " 50000+0"},
	}
	for _, c := range cases {
		if got := tleExpField(c.v); got != c.want {
			t.Errorf("tleExpField(%g) = %q, want %q", c.v, got, c.want)
		}
	}
}

func TestSatrecRoundTrip(t *testing.T) {
	rec, err := newSatrec(testElements(1))
	if err != nil {
		t.Fatalf("newSatrec: %v", err)
	}

	// At its epoch the satellite must sit near the nominal orbit radius.
	pos, _ := satellite.Propagate(rec, 2021, 1, 1, 0, 0, 0)
	r := Distance(pos, satellite.Vector3{})
	nominal := earthRadiusM/1000 + 550
	if r < nominal-50 || r > nominal+50 {
		t.Errorf("orbit radius = %.1f km, want about %.1f km", r, nominal)
	}
}

func TestNorm360(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0, 0},
		{360, 0},
		{-30, 330},
		{400, 40},
	}
	for _, c := range cases {
		if got := norm360(c.in); got != c.want {
			t.Errorf("norm360(%g) = %g, want %g", c.in, got, c.want)
		}
	}
}
