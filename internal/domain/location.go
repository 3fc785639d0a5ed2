package domain

import (
	"strconv"
	"strings"

	"github.com/samvad-hq/nyc-schools/internal/logger"
)

// ParseLocation splits a combined location of the form
// "10th Street, Brooklyn, NY, 11224 (50.3221, -72.44442)" into address, latitude and
// longitude. When the coordinates cannot be parsed it logs a warning and returns
// the address with (0, 0).
func ParseLocation(info string) (string, float64, float64) {
	segments := strings.Split(strings.ReplaceAll(info, ")", "("), "(")
	address := strings.TrimSpace(segments[0])

	if len(segments) < 2 {
		warnUnparsedLocation(info)
		return address, 0, 0
	}

	pair := strings.Split(segments[1], ",")
	if len(pair) != 2 {
		warnUnparsedLocation(info)
		return address, 0, 0
	}

	lat, latErr := strconv.ParseFloat(strings.TrimSpace(pair[0]), 64)
	long, longErr := strconv.ParseFloat(strings.TrimSpace(pair[1]), 64)
	if latErr != nil || longErr != nil {
		warnUnparsedLocation(info)
		return address, 0, 0
	}
	return address, lat, long
}

func warnUnparsedLocation(info string) {
	logger.For(logger.CategoryBusinessLogic).WarnObj("location info could not be parsed into valid lat/long", "location", info)
}
