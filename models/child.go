package models

import (
	"time"

	"gorm.io/gorm"
)

// Gender values accepted on a child profile.
const (
	GenderMale        = "male"
	GenderFemale      = "female"
	GenderUnspecified = "unspecified"
)

// Activity levels, matching the physical-activity coefficient table.
const (
	ActivitySedentary        = "sedentary"
	ActivityLightlyActive    = "lightly_active"
	ActivityModeratelyActive = "moderately_active"
	ActivityVeryActive       = "very_active"
	ActivityExtraActive      = "extra_active"
)

// Child is one kid profile under a parent account. Weight/height are optional;
// the target calculator substitutes reference values when they are missing.
type Child struct {
	gorm.Model
	UserID        uint      `gorm:"index;not null"`
	Name          string    `gorm:"not null"`
	BirthDate     time.Time `gorm:"not null"`
	Gender        string    // male|female|unspecified
	WeightKg      *float64
	HeightCm      *float64
	ActivityLevel string // empty → moderately_active
}
