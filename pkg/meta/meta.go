// Package meta derives per-image metadata from the image filename: the radar
// polarization and the season of the acquisition date.
package meta

import (
	"regexp"
	"strconv"
	"strings"
)

// Polarization values recognized in Sentinel-1 filenames.
const (
	PolVV    = "VV"
	PolVH    = "VH"
	PolOther = "OTHER"
)

// Season names; Unknown covers filenames without a parseable date.
const (
	Winter  = "Winter"
	Spring  = "Spring"
	Summer  = "Summer"
	Autumn  = "Autumn"
	Unknown = "Unknown"
)

// Polarization infers the radar polarization from the filename.
func Polarization(imageName string) string {
	switch {
	case strings.Contains(imageName, PolVV):
		return PolVV
	case strings.Contains(imageName, PolVH):
		return PolVH
	default:
		return PolOther
	}
}

var digitRuns = regexp.MustCompile(`[0-9]+`)

// Season infers the season from a YYYYMMDD date embedded in the filename.
// Every 8-digit run is tried in order; the first one with a plausible year,
// month and day wins. Filenames without such a run yield Unknown.
func Season(imageName string) string {
	for _, run := range digitRuns.FindAllString(imageName, -1) {
		if len(run) != 8 {
			continue
		}
		year, _ := strconv.Atoi(run[0:4])
		month, _ := strconv.Atoi(run[4:6])
		day, _ := strconv.Atoi(run[6:8])
		if year < 1900 || month < 1 || month > 12 || day < 1 || day > 31 {
			continue
		}
		return seasonOf(month)
	}
	return Unknown
}

func seasonOf(month int) string {
	switch month {
	case 12, 1, 2:
		return Winter
	case 3, 4, 5:
		return Spring
	case 6, 7, 8:
		return Summer
	case 9, 10, 11:
		return Autumn
	default:
		return Unknown
	}
}
