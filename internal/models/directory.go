package models

import "time"

// Inspector is a member of the hygiene patrol roster. Reference data: the core
// service reads it, only the seeding surface replaces it.
type Inspector struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:64;not null" json:"name"`
	ClassLabel string    `gorm:"size:16;not null;index" json:"class_label"`
	CreatedAt  time.Time `json:"created_at"`
}

// RosterClass is one class in the school roster, e.g. label "101" for grade 1.
type RosterClass struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Label     string    `gorm:"size:16;not null;index" json:"label"`
	Homeroom  string    `gorm:"size:64" json:"homeroom"`
	CreatedAt time.Time `json:"created_at"`
}

// Grade enumerates the three school grades. The grade of a class is encoded as
// the first character of its label.
type Grade int

const (
	GradeFirst Grade = iota + 1
	GradeSecond
	GradeThird
)

// ParseGrade maps the wire value ("1", "2", "3") to a Grade.
func ParseGrade(value string) (Grade, bool) {
	switch value {
	case "1":
		return GradeFirst, true
	case "2":
		return GradeSecond, true
	case "3":
		return GradeThird, true
	default:
		return 0, false
	}
}

// Prefix returns the class-label prefix used to filter directory rows.
func (g Grade) Prefix() string {
	switch g {
	case GradeFirst:
		return "1"
	case GradeSecond:
		return "2"
	case GradeThird:
		return "3"
	default:
		return ""
	}
}

// Valid reports whether the grade is one of the three known values.
func (g Grade) Valid() bool {
	return g >= GradeFirst && g <= GradeThird
}
