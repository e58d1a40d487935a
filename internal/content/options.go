package content

import (
	"math/rand/v2"

	"kidlearn/internal/models"
)

const (
	optionCount = 4
	// distractors are drawn from answer-3 .. answer+2
	spreadBelow = 3
	spreadAbove = 2
)

// AnswerOptions returns the answer and three distinct positive distractors in
// an order fixed by the activity ID. The same activity always produces the
// same options.
func AnswerOptions(activity models.MathActivity) models.AnswerOptions {
	rng := rand.New(rand.NewPCG(uint64(activity.ID), uint64(int64(activity.Answer))))

	// Near 1 the window slides upward so there are always enough candidates.
	lo := max(1, activity.Answer-spreadBelow)
	hi := max(activity.Answer+spreadAbove, lo+spreadBelow+spreadAbove)

	candidates := make([]int, 0, hi-lo+1)
	for v := lo; v <= hi; v++ {
		if v != activity.Answer {
			candidates = append(candidates, v)
		}
	}
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	options := make([]int, 0, optionCount)
	options = append(options, activity.Answer)
	options = append(options, candidates[:optionCount-1]...)
	rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return models.AnswerOptions{ActivityID: activity.ID, Options: options}
}
