package sim

import "fmt"

// checksumHex returns the two-byte uppercase-hex XOR checksum of body, the
// same rule the assembler package validates against (spec §4.3).
func checksumHex(body string) string {
	var sum byte
	for i := 0; i < len(body); i++ {
		sum ^= body[i]
	}
	return fmt.Sprintf("%02X", sum)
}

func withChecksum(body string) string {
	return "$" + body + "*" + checksumHex(body) + "\r\n"
}

// formatZDA renders a $GPZDA sentence for the given reference clock
// reading.
func formatZDA(ref ComponentDateTime) string {
	body := fmt.Sprintf("GPZDA,%02d%02d%05.2f,%02d,%02d,%04d,00,00",
		ref.Hour, ref.Minute, ref.Second, dayOfMonth(ref), monthOf(ref), ref.Year)
	return withChecksum(body)
}

// formatGGA renders a $GPGGA sentence for the given reference clock
// reading and position.
func formatGGA(ref ComponentDateTime, lat, lon float64) string {
	latDeg, latMin, latHem := toDegMin(lat, true)
	lonDeg, lonMin, lonHem := toDegMin(lon, false)
	body := fmt.Sprintf("GPGGA,%02d%02d%05.2f,%02d%07.4f,%s,%03d%07.4f,%s,1,08,0.9,0.0,M,0.0,M,,",
		ref.Hour, ref.Minute, ref.Second,
		latDeg, latMin, latHem,
		lonDeg, lonMin, lonHem)
	return withChecksum(body)
}

// formatDBT renders a $SDDBT sentence (depth below transducer) in feet,
// metres and fathoms.
func formatDBT(depthMetres float64) string {
	feet := depthMetres * 3.28084
	fathoms := depthMetres * 0.546807
	body := fmt.Sprintf("SDDBT,%.1f,f,%.1f,M,%.1f,F", feet, depthMetres, fathoms)
	return withChecksum(body)
}

func toDegMin(v float64, isLat bool) (int, float64, string) {
	hem := "N"
	if isLat && v < 0 {
		hem = "S"
	} else if !isLat {
		hem = "E"
		if v < 0 {
			hem = "W"
		}
	}
	abs := v
	if abs < 0 {
		abs = -abs
	}
	deg := int(abs)
	min := (abs - float64(deg)) * 60
	return deg, min, hem
}

// dayOfMonth and monthOf derive a calendar day/month from a year and
// day-of-year using the non-leap/leap month-length tables; good enough for
// simulated output, which never needs to round-trip back into a parser.
func dayOfMonth(c ComponentDateTime) int {
	d, _ := splitYearDay(c.Year, c.DayOfYear)
	return d
}

func monthOf(c ComponentDateTime) int {
	_, m := splitYearDay(c.Year, c.DayOfYear)
	return m
}

func splitYearDay(year, dayOfYear int) (day, month int) {
	lengths := [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
	if isLeap(year) {
		lengths[1] = 29
	}
	remaining := dayOfYear
	for i, l := range lengths {
		if remaining <= l {
			return remaining, i + 1
		}
		remaining -= l
	}
	return remaining, 12
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
