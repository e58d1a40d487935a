// Package content holds the starter catalog and the answer option generator
// for math activities.
package content

import (
	"fmt"
	"strings"

	"kidlearn/internal/models"
)

var countingObjects = []string{"🍎", "⭐", "🐶", "🎈", "🦆", "🌸", "🚗", "🍪", "🐟", "⚽"}

// ReadingWords returns a copy of the starter reading catalog
func ReadingWords() []models.ReadingWord {
	words := make([]models.ReadingWord, len(readingWords))
	copy(words, readingWords)
	return words
}

// MathActivities returns the starter math catalog: counting and addition
// activities for levels 1 and 2.
func MathActivities() []models.MathActivity {
	var activities []models.MathActivity

	// counting: level 1 counts 1..5, level 2 counts 6..10
	for level := 1; level <= 2; level++ {
		for n := 1; n <= 5; n++ {
			count := (level-1)*5 + n
			object := countingObjects[(count-1)%len(countingObjects)]
			activities = append(activities, models.MathActivity{
				Type:     models.MathCounting,
				Level:    level,
				Question: fmt.Sprintf("How many %s can you count?", object),
				Answer:   count,
				Objects:  repeat(object, count),
			})
		}
	}

	additions := map[int][][2]int{
		1: {{1, 1}, {1, 2}, {2, 2}, {2, 3}, {1, 4}},
		2: {{3, 4}, {5, 2}, {4, 4}, {6, 3}, {5, 5}},
	}
	for level := 1; level <= 2; level++ {
		for i, pair := range additions[level] {
			a, b := pair[0], pair[1]
			object := countingObjects[(i+level)%len(countingObjects)]
			activities = append(activities, models.MathActivity{
				Type:     models.MathAddition,
				Level:    level,
				Question: fmt.Sprintf("What is %d + %d?", a, b),
				Answer:   a + b,
				Objects:  append(repeat(object, a), repeat(object, b)...),
			})
		}
	}

	return activities
}

// NormalizeWord trims a catalog word and upper-cases it
func NormalizeWord(word string) string {
	return strings.ToUpper(strings.TrimSpace(word))
}

func repeat(s string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = s
	}
	return out
}
