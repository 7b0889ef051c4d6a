package quiz

import (
	"fmt"
	"strings"

	"github.com/meur/lorequiz/internal/models"
)

// ascendancyQuestion builds a question about one of the ascendancy
// classes. A nil return means this attempt found nothing workable and
// the batch loop should just move on.
func (g *Generator) ascendancyQuestion(b *batch) *models.Question {
	var pool []models.Item
	for _, it := range b.candidates {
		if g.ascendancyTypeIDs[it.TypeID] && !b.used[it.TypeID] {
			pool = append(pool, it)
		}
	}
	if len(pool) == 0 {
		return nil
	}
	chosen := pool[g.rng.Intn(len(pool))]
	if len(chosen.Modifiers) == 0 {
		return nil
	}

	var allAscendancies []models.Item
	for _, it := range b.all {
		if g.ascendancyTypeIDs[it.TypeID] {
			allAscendancies = append(allAscendancies, it)
		}
	}

	if g.rng.Intn(2) == 0 {
		return g.signatureModifierQuestion(b, chosen, allAscendancies)
	}
	return g.rightModifierQuestion(b, chosen, allAscendancies)
}

// signatureModifierQuestion lists the modifiers only the chosen
// ascendancy grants and asks which class they belong to
func (g *Generator) signatureModifierQuestion(b *batch, chosen models.Item, allAscendancies []models.Item) *models.Question {
	foreign := make(map[string]bool)
	for _, it := range allAscendancies {
		if it.TypeID == chosen.TypeID {
			continue
		}
		for _, m := range it.Modifiers {
			foreign[m] = true
		}
	}

	var signature []string
	for _, m := range chosen.Modifiers {
		if !foreign[m] {
			signature = append(signature, m)
		}
	}
	if len(signature) == 0 {
		// Nothing distinguishes this class; let another strategy try.
		return nil
	}

	names := g.otherAscendancyNames(allAscendancies, chosen.TypeID)
	if len(names) < 3 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("Which ascendancy grants the following?<ul>")
	for _, m := range signature {
		sb.WriteString("<li>" + m + "</li>")
	}
	sb.WriteString("</ul>")

	options := []models.AnswerOption{{Text: chosen.TypeName, IsCorrect: true}}
	for _, name := range names {
		options = append(options, models.AnswerOption{Text: name})
	}

	b.used[chosen.TypeID] = true
	return &models.Question{
		QuestionText:  sb.String(),
		Options:       g.shuffled(options),
		CorrectAnswer: chosen.TypeName,
	}
}

// rightModifierQuestion shows one of the chosen ascendancy's modifiers
// among three drawn from its rivals
func (g *Generator) rightModifierQuestion(b *batch, chosen models.Item, allAscendancies []models.Item) *models.Question {
	own := make(map[string]bool, len(chosen.Modifiers))
	for _, m := range chosen.Modifiers {
		own[m] = true
	}

	seen := make(map[string]bool)
	var wrong []string
	for _, it := range allAscendancies {
		if it.TypeID == chosen.TypeID {
			continue
		}
		for _, m := range it.Modifiers {
			// A modifier the chosen class also grants can't be a wrong answer.
			if own[m] || seen[m] {
				continue
			}
			seen[m] = true
			wrong = append(wrong, m)
		}
	}
	if len(wrong) < 3 {
		return nil
	}
	g.rng.Shuffle(len(wrong), func(i, j int) { wrong[i], wrong[j] = wrong[j], wrong[i] })
	wrong = wrong[:3]

	correct := chosen.Modifiers[g.rng.Intn(len(chosen.Modifiers))]
	options := []models.AnswerOption{{Text: correct, IsCorrect: true}}
	for _, m := range wrong {
		options = append(options, models.AnswerOption{Text: m})
	}

	b.used[chosen.TypeID] = true
	return &models.Question{
		QuestionText:  fmt.Sprintf("Which of these modifiers belongs to the ascendancy %s?", chosen.TypeName),
		Options:       g.shuffled(options),
		CorrectAnswer: correct,
	}
}

// otherAscendancyNames draws up to three distinct ascendancy names other
// than the excluded type, in random order
func (g *Generator) otherAscendancyNames(allAscendancies []models.Item, excludeTypeID int) []string {
	seen := make(map[string]bool)
	var names []string
	for _, it := range allAscendancies {
		if it.TypeID == excludeTypeID || seen[it.TypeName] {
			continue
		}
		seen[it.TypeName] = true
		names = append(names, it.TypeName)
	}
	g.rng.Shuffle(len(names), func(i, j int) { names[i], names[j] = names[j], names[i] })
	if len(names) > 3 {
		names = names[:3]
	}
	return names
}
