package quiz

import (
	"fmt"

	"github.com/meur/lorequiz/internal/models"
)

// modifierQuestion asks which item or ascendancy a globally unique
// modifier line belongs to. Uniqueness is checked against the entire
// catalog, not just the tier-filtered candidates: a line appearing on
// two items anywhere is never a valid subject.
func (g *Generator) modifierQuestion(b *batch) *models.Question {
	multiplicity := make(map[string]int)
	for _, it := range b.all {
		for _, m := range it.Modifiers {
			multiplicity[m]++
		}
	}

	type subject struct {
		item     models.Item
		modifier string
	}
	var subjects []subject
	for _, it := range b.candidates {
		if b.used[it.ID] {
			continue
		}
		for _, m := range it.Modifiers {
			if multiplicity[m] == 1 {
				subjects = append(subjects, subject{item: it, modifier: m})
			}
		}
	}
	if len(subjects) == 0 {
		return nil
	}
	chosen := subjects[g.rng.Intn(len(subjects))]
	correct := chosen.item

	if g.ascendancyTypeIDs[correct.TypeID] {
		var allAscendancies []models.Item
		for _, it := range b.all {
			if g.ascendancyTypeIDs[it.TypeID] {
				allAscendancies = append(allAscendancies, it)
			}
		}
		names := g.otherAscendancyNames(allAscendancies, correct.TypeID)
		if len(names) < 3 {
			return nil
		}

		options := []models.AnswerOption{{Text: correct.TypeName, IsCorrect: true}}
		for _, name := range names {
			options = append(options, models.AnswerOption{Text: name})
		}

		b.used[correct.ID] = true
		return &models.Question{
			QuestionText:  fmt.Sprintf("Which 'Ascendancy' has the modifier %q?", chosen.modifier),
			Options:       g.shuffled(options),
			CorrectAnswer: correct.TypeName,
		}
	}

	distractors := g.sameTypeDistractors(b, correct, false)
	if len(distractors) < 3 {
		return nil
	}

	options := []models.AnswerOption{{Text: correct.Name, IsCorrect: true}}
	for _, it := range distractors {
		options = append(options, models.AnswerOption{Text: it.Name})
	}

	b.used[correct.ID] = true
	return &models.Question{
		QuestionText:  fmt.Sprintf("Which 'Unique' has the modifier %q?", chosen.modifier),
		Options:       g.shuffled(options),
		CorrectAnswer: correct.Name,
	}
}
