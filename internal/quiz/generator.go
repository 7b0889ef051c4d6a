package quiz

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/meur/lorequiz/internal/models"
)

// Difficulties lists the supported difficulty labels in play order
var Difficulties = []string{"warmup", "easy", "medium", "hard", "impossible"}

// maxAttempts bounds one batch: abandoned strategy attempts burn budget
// instead of being retried with another item.
const maxAttempts = 100

// FameRange maps a difficulty label to the fame tiers a question may draw
// its subject from. Unknown labels open up the whole range.
func FameRange(difficulty string) []int {
	switch strings.ToLower(difficulty) {
	case "warmup":
		return []int{5}
	case "easy":
		return []int{4, 5}
	case "medium":
		return []int{3, 4}
	case "hard":
		return []int{2, 3}
	case "impossible":
		return []int{1}
	default:
		return []int{1, 2, 3, 4, 5}
	}
}

// allowsAscendancy reports whether ascendancy questions are in play for a
// fame range. They are kept out of the extremes so warmup stays easy and
// impossible stays about rare items.
func allowsAscendancy(fameRange []int) bool {
	for _, f := range fameRange {
		if f >= 2 && f <= 4 {
			return true
		}
	}
	return false
}

// InsufficientDataError reports that the catalog could not support the
// requested batch within the attempt budget.
type InsufficientDataError struct {
	Difficulty string
	Generated  int
	Required   int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("generated %d/%d questions for %s difficulty",
		e.Generated, e.Required, e.Difficulty)
}

// Generator produces multiple-choice questions from a catalog snapshot.
// Not safe for concurrent use: give each request its own instance.
type Generator struct {
	ascendancyTypeIDs map[int]bool
	rng               *rand.Rand
}

// New creates a generator. ascendancyTypeIDs is the configured set of
// type ids whose items are ascendancy classes. A nil rng gets a
// time-seeded source; tests inject a fixed seed.
func New(ascendancyTypeIDs []int, rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	ids := make(map[int]bool, len(ascendancyTypeIDs))
	for _, id := range ascendancyTypeIDs {
		ids[id] = true
	}
	return &Generator{ascendancyTypeIDs: ids, rng: rng}
}

// batch is the state one Generate call threads through its strategies:
// the full snapshot, the tier-filtered candidates, and the ids already
// used as question subjects. Ascendancy questions mark the type id, the
// other strategies mark the item id; both share the one set.
type batch struct {
	all        []models.Item
	candidates []models.Item
	used       map[int]bool
}

// Generate produces count questions for a difficulty from the given
// catalog snapshot. On shortfall it returns the questions it did manage
// together with an *InsufficientDataError.
func (g *Generator) Generate(difficulty string, count int, catalog []models.Item) ([]models.Question, error) {
	fameRange := FameRange(difficulty)
	inRange := make(map[int]bool, len(fameRange))
	for _, f := range fameRange {
		inRange[f] = true
	}

	b := &batch{all: catalog, used: make(map[int]bool)}
	for _, it := range catalog {
		if inRange[it.Fame] {
			b.candidates = append(b.candidates, it)
		}
	}
	allowAsc := allowsAscendancy(fameRange)

	var questions []models.Question
	for attempts := 0; len(questions) < count && attempts < maxAttempts; attempts++ {
		var q *models.Question
		if allowAsc && g.rng.Intn(3) == 0 {
			q = g.ascendancyQuestion(b)
		}
		if q == nil && g.rng.Intn(2) == 0 {
			q = g.modifierQuestion(b)
		}
		if q == nil {
			q = g.imageQuestion(b)
		}
		if q != nil {
			q.Difficulty = difficulty
			questions = append(questions, *q)
		}
	}

	if len(questions) < count {
		return questions, &InsufficientDataError{
			Difficulty: difficulty,
			Generated:  len(questions),
			Required:   count,
		}
	}
	return questions, nil
}

// shuffled permutes the options uniformly so the correct answer's
// position carries no signal
func (g *Generator) shuffled(options []models.AnswerOption) []models.AnswerOption {
	g.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}

// sameTypeDistractors picks up to three items sharing the correct item's
// type: first from the tier-filtered candidates, then (replacing, not
// extending) from the whole catalog one fame level below the correct
// item, then from the whole catalog at any fame. excludeAscendancy keeps
// ascendancy items out of every stage.
func (g *Generator) sameTypeDistractors(b *batch, correct models.Item, excludeAscendancy bool) []models.Item {
	eligible := func(it models.Item) bool {
		if it.ID == correct.ID || it.TypeID != correct.TypeID {
			return false
		}
		return !excludeAscendancy || !g.ascendancyTypeIDs[it.TypeID]
	}

	var pool []models.Item
	for _, it := range b.candidates {
		if eligible(it) {
			pool = append(pool, it)
		}
	}
	if len(pool) < 3 && correct.Fame-1 >= 1 {
		pool = nil
		for _, it := range b.all {
			if eligible(it) && it.Fame == correct.Fame-1 {
				pool = append(pool, it)
			}
		}
	}
	if len(pool) < 3 {
		pool = nil
		for _, it := range b.all {
			if eligible(it) {
				pool = append(pool, it)
			}
		}
	}

	g.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if len(pool) > 3 {
		pool = pool[:3]
	}
	return pool
}
