package constellation

import (
	"fmt"
	"math"
	"time"
)

// elements holds the orbital elements needed to initialise one satellite.
// Angles are in degrees, mean motion in revolutions per day.
type elements struct {
	SatNum         int
	Epoch          time.Time
	InclinationDeg float64
	RAANDeg        float64
	Eccentricity   float64
	ArgPerigeeDeg  float64
	MeanAnomalyDeg float64
	MeanMotion     float64
	Bstar          float64
}

// encodeTLE renders the elements as a standard two-line element set.
// go-satellite initialises its SGP4 state from TLE text only, so the
// builder goes through this encoding rather than touching the propagator
// internals. Field columns follow the NORAD layout; angle fields carry
// four decimal places, which is below a hundredth of a satellite spacing
// for any constellation this simulator handles.
func encodeTLE(e elements) (line1, line2 string) {
	yy := e.Epoch.Year() % 100
	doy := float64(e.Epoch.YearDay()) +
		(float64(e.Epoch.Hour())*3600+float64(e.Epoch.Minute())*60+float64(e.Epoch.Second()))/86400.0

	// ndot of 6.969196665e-13 rev/day^2 is zero at TLE precision.
	l1 := fmt.Sprintf("1 %05dU %-8s %02d%012.8f %10s %8s %8s 0 %4d",
		e.SatNum, intlDesignator(e.Epoch), yy, doy,
		" .00000000", tleExpField(0), tleExpField(e.Bstar), 999)
	l2 := fmt.Sprintf("2 %05d %8.4f %8.4f %07d %8.4f %8.4f %11.8f%5d",
		e.SatNum, e.InclinationDeg, norm360(e.RAANDeg),
		int(math.Round(e.Eccentricity*1e7)),
		norm360(e.ArgPerigeeDeg), norm360(e.MeanAnomalyDeg),
		e.MeanMotion, 1)

	return l1 + checksumDigit(l1), l2 + checksumDigit(l2)
}

// intlDesignator fabricates a launch designator from the epoch year. The
// propagator never reads it; it only fills the TLE column.
func intlDesignator(epoch time.Time) string {
	return fmt.Sprintf("%02d001A", epoch.Year()%100)
}

// tleExpField encodes a small value in the 8-character TLE exponent
// notation: sign, five mantissa digits, signed single-digit exponent
// (e.g. 2.8098e-5 -> " 28098-4").
func tleExpField(v float64) string {
	if v == 0 {
		return " 00000-0"
	}
	sign := " "
	if v < 0 {
		sign = "-"
		v = -v
	}
	exp := 0
	for v >= 1 {
		v /= 10
		exp++
	}
	for v < 0.1 {
		v *= 10
		exp--
	}
	digits := int(math.Round(v * 1e5))
	if digits == 100000 {
		digits = 10000
		exp++
	}
	return fmt.Sprintf("%s%05d%+d", sign, digits, exp)
}

// checksumDigit computes the NORAD line checksum: the sum of all digits
// plus one per minus sign, modulo ten.
func checksumDigit(line string) string {
	sum := 0
	for _, r := range line {
		switch {
		case r >= '0' && r <= '9':
			sum += int(r - '0')
		case r == '-':
			sum++
		}
	}
	return fmt.Sprintf("%d", sum%10)
}

// norm360 maps an angle in degrees onto [0, 360).
func norm360(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
