package domain

import (
	"strconv"
	"strings"
)

// ParseBirth builds BirthData from the text fields of a form or command line: date as
// YYYY-MM-DD, an optional HH:MM clock, a gender word and an optional IANA zone.
func ParseBirth(date, clock, gender, tz string) (BirthData, error) {
	var b BirthData
	parts := strings.Split(strings.TrimSpace(date), "-")
	if len(parts) != 3 {
		return BirthData{}, invalid("date", "must look like YYYY-MM-DD")
	}
	for i, dst := range []*int{&b.Year, &b.Month, &b.Day} {
		n, err := strconv.Atoi(parts[i])
		if err != nil {
			return BirthData{}, invalid("date", "must look like YYYY-MM-DD")
		}
		*dst = n
	}

	if clock = strings.TrimSpace(clock); clock != "" {
		hh, mm, ok := strings.Cut(clock, ":")
		h, herr := strconv.Atoi(hh)
		m, merr := strconv.Atoi(mm)
		if !ok || herr != nil || merr != nil {
			return BirthData{}, invalid("time", "must look like HH:MM")
		}
		b.Hour, b.Minute = &h, &m
	}

	g, err := ParseGender(gender)
	if err != nil {
		return BirthData{}, err
	}
	b.Gender = g
	b.Timezone = strings.TrimSpace(tz)

	if err := b.Validate(); err != nil {
		return BirthData{}, err
	}
	return b, nil
}

// ParseGender accepts male/female, m/f and 男/女 in any case.
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m", "男":
		return GenderMale, nil
	case "female", "f", "女":
		return GenderFemale, nil
	}
	return "", invalid("gender", "must be male or female")
}
