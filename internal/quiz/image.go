package quiz

import (
	"fmt"

	"github.com/meur/lorequiz/internal/models"
)

// imageQuestion pairs an item with its artwork, in one of two directions
// chosen at random. Ascendancy items have no artwork and are excluded.
func (g *Generator) imageQuestion(b *batch) *models.Question {
	var pool []models.Item
	for _, it := range b.candidates {
		if !b.used[it.ID] && !g.ascendancyTypeIDs[it.TypeID] {
			pool = append(pool, it)
		}
	}
	if len(pool) == 0 {
		return nil
	}
	correct := pool[g.rng.Intn(len(pool))]

	distractors := g.sameTypeDistractors(b, correct, true)
	if len(distractors) < 3 {
		return nil
	}

	b.used[correct.ID] = true

	if g.rng.Intn(2) == 0 {
		// Four pictures, name one of them.
		options := []models.AnswerOption{{Text: correct.Name, ImageURL: correct.Link, IsCorrect: true}}
		for _, it := range distractors {
			options = append(options, models.AnswerOption{Text: it.Name, ImageURL: it.Link})
		}
		return &models.Question{
			QuestionText:  fmt.Sprintf("Which of these is %s?", correct.Name),
			Options:       g.shuffled(options),
			CorrectAnswer: correct.Name,
		}
	}

	// One picture, pick its name.
	options := []models.AnswerOption{{Text: correct.Name, IsCorrect: true}}
	for _, it := range distractors {
		options = append(options, models.AnswerOption{Text: it.Name})
	}
	return &models.Question{
		QuestionText:  "Which item is shown in this picture?",
		ImageURL:      correct.Link,
		Options:       g.shuffled(options),
		CorrectAnswer: correct.Name,
	}
}
