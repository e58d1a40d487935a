package models

// DayActivity is the estimated engaged time for one calendar day
type DayActivity struct {
	Date    string  `json:"date"` // YYYY-MM-DD in the configured zone
	Weekday string  `json:"weekday"`
	Items   int     `json:"items"`
	Minutes float64 `json:"minutes"`
}

// LevelSummary is the completion state of one level of an activity type
type LevelSummary struct {
	Level     int     `json:"level"`
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	Stars     int     `json:"stars"`
	Ratio     float64 `json:"ratio"`
	Started   bool    `json:"started"`
}

// SessionTime is the uncapped time-on-task estimate over all records
type SessionTime struct {
	UserID         int64   `json:"userId"`
	CompletedItems int     `json:"completedItems"`
	Minutes        float64 `json:"minutes"`
}

// Dashboard is the parent-facing progress summary for one user
type Dashboard struct {
	User           User           `json:"user"`
	Reading        []LevelSummary `json:"reading"`
	Math           []LevelSummary `json:"math"`
	WeeklyActivity []DayActivity  `json:"weeklyActivity"`
	WeeklyMinutes  float64        `json:"weeklyMinutes"`
	TotalMinutes   float64        `json:"totalMinutes"`
	Achievements   []Achievement  `json:"achievements"`
}
