package calendar

import (
	"math"
	"time"
)

// A low-precision apparent solar longitude series (Meeus, Astronomical Algorithms
// ch. 25), kept as an independent check on the term instants lunar-go reports.

const (
	unixEpochJD = 2440587.5
	j2000       = 2451545.0
	meanMotion  = 0.9856473
)

func solarLongitude(jd float64) float64 {
	t := (jd - j2000) / 36525
	l0 := 280.46646 + 36000.76983*t + 0.0003032*t*t
	m := radians(357.52911 + 35999.05029*t - 0.0001537*t*t)
	c := (1.914602-0.004817*t-0.000014*t*t)*math.Sin(m) +
		(0.019993-0.000101*t)*math.Sin(2*m) +
		0.000289*math.Sin(3*m)
	omega := radians(125.04 - 1934.136*t)
	return normalize360(l0 + c - 0.00569 - 0.00478*math.Sin(omega))
}

// crossingNear refines guess until the sun stands at target degrees.
func crossingNear(target float64, guess time.Time) time.Time {
	jd := julianDay(guess)
	for i := 0; i < 50; i++ {
		d := normalize180(target - solarLongitude(jd))
		jd += d / meanMotion
		if math.Abs(d) < 1e-7 {
			break
		}
	}
	return time.Unix(int64(math.Round((jd-unixEpochJD)*86400)), 0).UTC()
}

func julianDay(t time.Time) float64 {
	return float64(t.Unix())/86400 + unixEpochJD
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func normalize360(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	return d
}

func normalize180(deg float64) float64 {
	return normalize360(deg+180) - 180
}
