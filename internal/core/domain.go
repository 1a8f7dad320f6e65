package core

import (
	"errors"
	"strings"
	"time"
)

// DateFormat is the calendar-day format used everywhere a date crosses the
// store boundary. Lexicographic order on these strings equals date order,
// which the range queries rely on.
const DateFormat = "2006-01-02"

// ClockFormat is the time-of-day format for todo deadlines.
const ClockFormat = "15:04"

type (
	Category struct {
		ID          int64     `json:"id"`
		Name        string    `json:"name"`
		Description string    `json:"description"`
		Color       string    `json:"color"`
		IsSystem    bool      `json:"isSystemCategory"`
		CreatedAt   time.Time `json:"createdAt"`
	}

	// GoalTarget is a per-category hour quota owned by a goal. Category
	// name and color are denormalized for display.
	GoalTarget struct {
		ID            int64   `json:"id"`
		GoalID        int64   `json:"goalId"`
		CategoryID    int64   `json:"categoryId"`
		CategoryName  string  `json:"categoryName"`
		CategoryColor string  `json:"categoryColor"`
		TargetHours   float64 `json:"targetHours"`
	}

	Goal struct {
		ID          int64        `json:"id"`
		Title       string       `json:"title"`
		Description string       `json:"description"`
		StartDate   string       `json:"startDate,omitempty"` // empty = unbounded
		EndDate     string       `json:"endDate,omitempty"`   // empty = unbounded
		IsActive    bool         `json:"isActive"`
		IsCompleted bool         `json:"isCompleted"`
		CompletedAt *time.Time   `json:"completedAt,omitempty"`
		CreatedAt   time.Time    `json:"createdAt"`
		Targets     []GoalTarget `json:"targets"`
	}

	TimeEntry struct {
		ID            int64     `json:"id"`
		Date          string    `json:"date"`
		CategoryID    int64     `json:"categoryId"`
		CategoryName  string    `json:"categoryName"`
		CategoryColor string    `json:"categoryColor"`
		DurationHours float64   `json:"durationHours"`
		Description   string    `json:"description"`
		CreatedAt     time.Time `json:"createdAt"`
		UpdatedAt     time.Time `json:"updatedAt"`
	}

	Todo struct {
		ID           int64      `json:"id"`
		Title        string     `json:"title"`
		Description  string     `json:"description"`
		StartDate    string     `json:"startDate"`
		DeadlineTime string     `json:"deadlineTime"`
		IsCompleted  bool       `json:"isCompleted"`
		CompletedAt  *time.Time `json:"completedAt,omitempty"`
		CreatedAt    time.Time  `json:"createdAt"`
		UpdatedAt    time.Time  `json:"updatedAt"`
	}

	// CategoryStat is one row of the per-category aggregation over a
	// date range.
	CategoryStat struct {
		CategoryID int64   `json:"categoryId"`
		Name       string  `json:"name"`
		Color      string  `json:"color"`
		IsSystem   bool    `json:"isSystemCategory"`
		TotalHours float64 `json:"totalHours"`
		ActiveDays int     `json:"activeDays"`
	}

	// GoalProgress is one (goal, category) progress row.
	GoalProgress struct {
		GoalID             int64   `json:"goalId"`
		GoalTitle          string  `json:"goalTitle"`
		CategoryID         int64   `json:"categoryId"`
		CategoryName       string  `json:"categoryName"`
		CategoryColor      string  `json:"categoryColor"`
		TargetHours        float64 `json:"targetHours"`
		CompletedHours     float64 `json:"completedHours"`
		ProgressPercentage float64 `json:"progressPercentage"`
	}
)

var (
	ErrEmptyName       = errors.New("name cannot be empty")
	ErrEmptyTitle      = errors.New("title cannot be empty")
	ErrInvalidColor    = errors.New("color must be a hex string like #3B82F6")
	ErrInvalidDate     = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidClock    = errors.New("time must be in HH:MM format")
	ErrInvalidDuration = errors.New("duration hours must be positive")
	ErrInvalidTarget   = errors.New("target hours must be positive")
	ErrNoCategory      = errors.New("category is required")
)

// DefaultColor is applied when a category is created without one.
const DefaultColor = "#3B82F6"

// ValidDate reports whether s is a well-formed YYYY-MM-DD day.
func ValidDate(s string) bool {
	_, err := time.Parse(DateFormat, s)
	return err == nil
}

// ValidClock reports whether s is a well-formed HH:MM time of day.
func ValidClock(s string) bool {
	_, err := time.Parse(ClockFormat, s)
	return err == nil
}

func validColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if c.Color != "" && !validColor(c.Color) {
		return ErrInvalidColor
	}
	return nil
}

func (g Goal) Validate() error {
	if strings.TrimSpace(g.Title) == "" {
		return ErrEmptyTitle
	}
	if g.StartDate != "" && !ValidDate(g.StartDate) {
		return ErrInvalidDate
	}
	if g.EndDate != "" && !ValidDate(g.EndDate) {
		return ErrInvalidDate
	}
	if g.StartDate != "" && g.EndDate != "" && g.EndDate < g.StartDate {
		return errors.New("end date must not precede start date")
	}
	for _, t := range g.Targets {
		if t.CategoryID == 0 {
			return ErrNoCategory
		}
		if t.TargetHours <= 0 {
			return ErrInvalidTarget
		}
	}
	return nil
}

func (e TimeEntry) Validate() error {
	if !ValidDate(e.Date) {
		return ErrInvalidDate
	}
	if e.CategoryID == 0 {
		return ErrNoCategory
	}
	if e.DurationHours <= 0 {
		return ErrInvalidDuration
	}
	return nil
}

func (td Todo) Validate() error {
	if strings.TrimSpace(td.Title) == "" {
		return ErrEmptyTitle
	}
	if !ValidDate(td.StartDate) {
		return ErrInvalidDate
	}
	if !ValidClock(td.DeadlineTime) {
		return ErrInvalidClock
	}
	return nil
}
