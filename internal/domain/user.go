package domain

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// Course bounds accepted during registration
const (
	MinCourse = 1
	MaxCourse = 6
)

// ErrInvalidCourse is returned when course input is not an integer in [MinCourse, MaxCourse]
var ErrInvalidCourse = errors.New("course must be an integer from 1 to 6")

// UserProfile represents a registered student
type UserProfile struct {
	UserID    int64
	FullName  string
	Group     string
	Course    int
	CreatedAt time.Time
}

// ParseCourse validates course input: ASCII digits only, value in [MinCourse, MaxCourse]
func ParseCourse(text string) (int, error) {
	if text == "" {
		return 0, ErrInvalidCourse
	}
	for _, r := range text {
		if r < '0' || r > '9' {
			return 0, ErrInvalidCourse
		}
	}

	course, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidCourse, err)
	}
	if course < MinCourse || course > MaxCourse {
		return 0, ErrInvalidCourse
	}
	return course, nil
}

// RegistrationState is the step of the registration dialog a user is in
type RegistrationState string

const (
	StateNotStarted       RegistrationState = "not_started"
	StateAwaitingFullName RegistrationState = "awaiting_full_name"
	StateAwaitingGroup    RegistrationState = "awaiting_group"
	StateAwaitingCourse   RegistrationState = "awaiting_course"
	StateCompleted        RegistrationState = "completed"
)

// Registration holds the partially collected profile of a user
type Registration struct {
	UserID    int64
	State     RegistrationState
	FullName  string
	Group     string
	UpdatedAt time.Time
}

// Profile merges the collected fields with a validated course
func (r Registration) Profile(course int, now time.Time) UserProfile {
	return UserProfile{
		UserID:    r.UserID,
		FullName:  r.FullName,
		Group:     r.Group,
		Course:    course,
		CreatedAt: now,
	}
}
