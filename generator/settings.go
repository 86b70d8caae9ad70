package generator

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

const (
	DEFAULT_WALKING_SPEED = 1.33
	DEFAULT_DIST          = 4000
	DEFAULT_TOLERANCE     = 0.0008
)

var DEFAULT_TIME_RANGES = []int{5, 10}

// Time ranges offered by the upload form.
var TIME_RANGE_OPTIONS = []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 15, 20, 30}

var validate = validator.New()

// User adjustable parameters of a map generation.
type Settings struct {
	// m/s
	WalkingSpeed float64 `json:"walking_speed" validate:"gt=0,lte=10"`
	// minutes
	TimeRanges []int `json:"range" validate:"required,dive,gt=0,lte=120"`
	// network extent around each stop in meters
	Dist      float64 `json:"dist" validate:"gt=0,lte=50000"`
	Simplify  bool    `json:"simplify"`
	Tolerance float64 `json:"tolerance" validate:"gte=0,lt=1"`
}

func DefaultSettings() Settings {
	ranges := make([]int, len(DEFAULT_TIME_RANGES))
	copy(ranges, DEFAULT_TIME_RANGES)
	return Settings{
		WalkingSpeed: DEFAULT_WALKING_SPEED,
		TimeRanges:   ranges,
		Dist:         DEFAULT_DIST,
		Simplify:     false,
		Tolerance:    DEFAULT_TOLERANCE,
	}
}

// Replaces empty time ranges by the defaults and removes duplicates keeping the first occurrence.
func (self Settings) Normalize() Settings {
	if len(self.TimeRanges) == 0 {
		self.TimeRanges = DefaultSettings().TimeRanges
		return self
	}
	seen := make(map[int]bool, len(self.TimeRanges))
	ranges := make([]int, 0, len(self.TimeRanges))
	for _, t := range self.TimeRanges {
		if seen[t] {
			continue
		}
		seen[t] = true
		ranges = append(ranges, t)
	}
	self.TimeRanges = ranges
	return self
}

func (self Settings) Validate() error {
	if err := validate.Struct(self); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}
