package utils

import (
	"fmt"
	"regexp"
	"runtime"
	"strconv"
)

func ErrorWithTrace(e error) error {
	_, file, line, _ := runtime.Caller(1)
	return fmt.Errorf("%s:%d\n\t%w", file, line, e)
}

var seasonRe = regexp.MustCompile(`^(\d{4})-(\d{2})$`)

// IsInvalidSeason reports whether s is not an NBA season string like "2024-25".
func IsInvalidSeason(s string) bool {
	m := seasonRe.FindStringSubmatch(s)
	if m == nil {
		return true
	}
	start, _ := strconv.Atoi(m[1])
	end, _ := strconv.Atoi(m[2])
	return (start+1)%100 != end
}

func DerefFloat64(f *float64) float64 {
	if f == nil {
		return float64(0)
	}
	return *f
}
