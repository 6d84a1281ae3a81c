package job

import (
	"errors"
	"strings"
	"time"
)

type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelSenior       Level = "Senior"
)

var ErrInvalidLevel = errors.New("invalid job level")

// ParseLevel accepts the short form and the "<X> Level" form older clients send.
func ParseLevel(s string) (Level, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, " Level")
	switch Level(s) {
	case LevelBeginner, LevelIntermediate, LevelSenior:
		return Level(s), nil
	default:
		return "", ErrInvalidLevel
	}
}

type Job struct {
	ID          int64
	Title       string
	Location    string
	Level       Level
	CompanyID   int64
	Description string
	Salary      int
	Category    string
	Visible     bool
	CreatedAt   time.Time
}

type CompanyRef struct {
	ID       int64
	Name     string
	Email    string
	ImageRef *string
}

// Listing is a job joined with its owner and application count.
type Listing struct {
	Job
	Company        CompanyRef
	ApplicantCount int
}

// Patch holds optional field changes. CompanyID is deliberately absent: the
// owner of a job never changes.
type Patch struct {
	Title       *string
	Location    *string
	Level       *Level
	Description *string
	Salary      *int
	Category    *string
	Visible     *bool
}

func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Location == nil && p.Level == nil && p.Description == nil &&
		p.Salary == nil && p.Category == nil && p.Visible == nil
}

func (j Job) Apply(p Patch) Job {
	if p.Title != nil {
		j.Title = *p.Title
	}
	if p.Location != nil {
		j.Location = *p.Location
	}
	if p.Level != nil {
		j.Level = *p.Level
	}
	if p.Description != nil {
		j.Description = *p.Description
	}
	if p.Salary != nil {
		j.Salary = *p.Salary
	}
	if p.Category != nil {
		j.Category = *p.Category
	}
	if p.Visible != nil {
		j.Visible = *p.Visible
	}
	return j
}
