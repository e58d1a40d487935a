package models

// Math activity types
const (
	MathCounting = "counting"
	MathAddition = "addition"
)

// ReadingWord is a catalog word shown with a picture. Word is stored upper-case.
type ReadingWord struct {
	ID       int64  `json:"id"`
	Word     string `json:"word"`
	Level    int    `json:"level"`
	ImageURL string `json:"imageUrl"`
}

// MathActivity is a counting or addition question
type MathActivity struct {
	ID       int64    `json:"id"`
	Type     string   `json:"type"`
	Level    int      `json:"level"`
	Question string   `json:"question"`
	Answer   int      `json:"answer"`
	Objects  []string `json:"objects"`
}

// AnswerOptions is the multiple-choice set for a math activity
type AnswerOptions struct {
	ActivityID int64 `json:"activityId"`
	Options    []int `json:"options"`
}
