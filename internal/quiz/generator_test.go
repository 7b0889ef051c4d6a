package quiz

import (
	"errors"
	"fmt"
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"github.com/meur/lorequiz/internal/models"
)

var testAscendancyIDs = []int{27, 28, 29, 30}

func newTestGenerator(seed int64) *Generator {
	return New(testAscendancyIDs, rand.New(rand.NewSource(seed)))
}

// ordinaryCatalog builds nTypes ordinary types with perTier items of each
// type at every fame tier. Every item carries one modifier line of its
// own and one line shared across the whole catalog.
func ordinaryCatalog(nTypes, perTier int) []models.Item {
	var items []models.Item
	id := 1
	for t := 1; t <= nTypes; t++ {
		for fame := 1; fame <= 5; fame++ {
			for n := 0; n < perTier; n++ {
				items = append(items, models.Item{
					ID:       id,
					TypeID:   t,
					TypeName: fmt.Sprintf("Type %d", t),
					Fame:     fame,
					Name:     fmt.Sprintf("Item %d", id),
					Link:     fmt.Sprintf("https://img.example/%d.png", id),
					Modifiers: []string{
						fmt.Sprintf("+%d to something", id),
						"shared line",
					},
				})
				id++
			}
		}
	}
	return items
}

// ascendancyItems builds one item per test ascendancy type at the given
// fame: a signature modifier of its own plus a line all classes share.
func ascendancyItems(fame int) []models.Item {
	var items []models.Item
	for _, typeID := range testAscendancyIDs {
		items = append(items, models.Item{
			ID:       1000 + typeID,
			TypeID:   typeID,
			TypeName: fmt.Sprintf("Class %d", typeID),
			Fame:     fame,
			Name:     fmt.Sprintf("Class %d", typeID),
			Modifiers: []string{
				fmt.Sprintf("signature power %d", typeID),
				"class shared line",
			},
		})
	}
	return items
}

func newBatch(g *Generator, difficulty string, catalog []models.Item) *batch {
	inRange := make(map[int]bool)
	for _, f := range FameRange(difficulty) {
		inRange[f] = true
	}
	b := &batch{all: catalog, used: make(map[int]bool)}
	for _, it := range catalog {
		if inRange[it.Fame] {
			b.candidates = append(b.candidates, it)
		}
	}
	return b
}

func TestFameRange(t *testing.T) {
	tests := []struct {
		difficulty string
		want       []int
	}{
		{"warmup", []int{5}},
		{"easy", []int{4, 5}},
		{"medium", []int{3, 4}},
		{"hard", []int{2, 3}},
		{"impossible", []int{1}},
		{"WARMUP", []int{5}},
		{"Impossible", []int{1}},
		{"nightmare", []int{1, 2, 3, 4, 5}},
		{"", []int{1, 2, 3, 4, 5}},
	}
	for _, tt := range tests {
		if got := FameRange(tt.difficulty); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("FameRange(%q) = %v, want %v", tt.difficulty, got, tt.want)
		}
	}
}

func TestAllowsAscendancy(t *testing.T) {
	tests := []struct {
		difficulty string
		want       bool
	}{
		{"warmup", false},
		{"easy", true},
		{"medium", true},
		{"hard", true},
		{"impossible", false},
		{"nightmare", true},
	}
	for _, tt := range tests {
		if got := allowsAscendancy(FameRange(tt.difficulty)); got != tt.want {
			t.Errorf("allowsAscendancy(FameRange(%q)) = %v, want %v", tt.difficulty, got, tt.want)
		}
	}
}

func TestGenerateBatchInvariants(t *testing.T) {
	catalog := append(ordinaryCatalog(3, 4), ascendancyItems(3)...)

	for i, difficulty := range Difficulties {
		g := newTestGenerator(int64(i + 1))
		questions, err := g.Generate(difficulty, 5, catalog)
		if err != nil {
			t.Fatalf("Generate(%q) error: %v", difficulty, err)
		}
		if len(questions) != 5 {
			t.Fatalf("Generate(%q) returned %d questions, want 5", difficulty, len(questions))
		}

		for qi, q := range questions {
			if q.Difficulty != difficulty {
				t.Errorf("%s question %d tagged %q", difficulty, qi, q.Difficulty)
			}
			if len(q.Options) != 4 {
				t.Fatalf("%s question %d has %d options, want 4", difficulty, qi, len(q.Options))
			}
			correct := 0
			labels := make(map[string]bool)
			for _, opt := range q.Options {
				if opt.IsCorrect {
					correct++
					if opt.Text != q.CorrectAnswer {
						t.Errorf("%s question %d: correct option %q but CorrectAnswer %q",
							difficulty, qi, opt.Text, q.CorrectAnswer)
					}
				}
				if labels[opt.Text] {
					t.Errorf("%s question %d repeats option label %q", difficulty, qi, opt.Text)
				}
				labels[opt.Text] = true
			}
			if correct != 1 {
				t.Errorf("%s question %d has %d correct options, want 1", difficulty, qi, correct)
			}
		}
	}
}

func TestNoAscendancyQuestionsAtExtremes(t *testing.T) {
	catalog := append(ordinaryCatalog(3, 4), ascendancyItems(3)...)

	for _, difficulty := range []string{"warmup", "impossible"} {
		for seed := int64(1); seed <= 10; seed++ {
			g := newTestGenerator(seed)
			questions, err := g.Generate(difficulty, 5, catalog)
			if err != nil {
				t.Fatalf("Generate(%q) seed %d error: %v", difficulty, seed, err)
			}
			for _, q := range questions {
				if strings.Contains(strings.ToLower(q.QuestionText), "ascendancy") {
					t.Errorf("%s seed %d produced ascendancy question: %q", difficulty, seed, q.QuestionText)
				}
			}
		}
	}
}

func TestSameTypeDistractorsFallsBackOneTierLower(t *testing.T) {
	correct := models.Item{ID: 1, TypeID: 1, Fame: 3, Name: "Correct"}
	catalog := []models.Item{correct}
	for i := 2; i <= 4; i++ {
		catalog = append(catalog, models.Item{ID: i, TypeID: 1, Fame: 2, Name: fmt.Sprintf("Lower %d", i)})
	}

	g := newTestGenerator(1)
	b := newBatch(g, "medium", catalog) // tiers {3,4}: no same-type siblings in range
	got := g.sameTypeDistractors(b, correct, false)
	if len(got) != 3 {
		t.Fatalf("got %d distractors, want 3", len(got))
	}
	for _, it := range got {
		if it.Fame != 2 {
			t.Errorf("distractor %q has fame %d, want fallback fame 2", it.Name, it.Fame)
		}
	}
}

func TestSameTypeDistractorsFallsBackToAnyFame(t *testing.T) {
	correct := models.Item{ID: 1, TypeID: 1, Fame: 3, Name: "Correct"}
	catalog := []models.Item{
		correct,
		{ID: 2, TypeID: 1, Fame: 5, Name: "Common A"},
		{ID: 3, TypeID: 1, Fame: 5, Name: "Common B"},
		{ID: 4, TypeID: 1, Fame: 1, Name: "Rare"},
	}

	g := newTestGenerator(1)
	b := newBatch(g, "medium", catalog)
	got := g.sameTypeDistractors(b, correct, false)
	if len(got) != 3 {
		t.Fatalf("got %d distractors, want 3 from the whole catalog", len(got))
	}
}

func TestSameTypeDistractorsInsufficient(t *testing.T) {
	correct := models.Item{ID: 1, TypeID: 1, Fame: 3, Name: "Correct"}
	catalog := []models.Item{
		correct,
		{ID: 2, TypeID: 1, Fame: 5, Name: "Sibling"},
		{ID: 3, TypeID: 2, Fame: 3, Name: "Other type"},
	}

	g := newTestGenerator(1)
	b := newBatch(g, "medium", catalog)
	if got := g.sameTypeDistractors(b, correct, false); len(got) >= 3 {
		t.Fatalf("got %d distractors from a type with one sibling", len(got))
	}
}

func TestModifierQuestionSkipsSharedModifiers(t *testing.T) {
	// "twin line" appears on two items, one of them outside the fame
	// range: multiplicity is counted over the whole catalog, so neither
	// occurrence is a valid subject.
	catalog := []models.Item{
		{ID: 1, TypeID: 1, TypeName: "Type 1", Fame: 5, Name: "Candidate", Modifiers: []string{"twin line"}},
		{ID: 2, TypeID: 2, TypeName: "Type 2", Fame: 1, Name: "Far away", Modifiers: []string{"twin line"}},
	}

	g := newTestGenerator(1)
	b := newBatch(g, "warmup", catalog)
	for i := 0; i < 20; i++ {
		if q := g.modifierQuestion(b); q != nil {
			t.Fatalf("modifierQuestion built a question from a non-unique modifier: %q", q.QuestionText)
		}
	}
}

func TestRightModifierQuestionWithOverlappingModifiers(t *testing.T) {
	// Every class shares "class shared line"; it must never show up as a
	// wrong answer next to the chosen class's correct one.
	catalog := ascendancyItems(3)
	g := newTestGenerator(1)
	b := newBatch(g, "medium", catalog)

	for i := 0; i < 50; i++ {
		q := g.rightModifierQuestion(b, catalog[0], catalog)
		if q == nil {
			t.Fatal("rightModifierQuestion returned nil with three rival classes available")
		}
		correct := 0
		for _, opt := range q.Options {
			if opt.IsCorrect {
				correct++
			}
		}
		if correct != 1 {
			t.Fatalf("question has %d correct options, want 1: %+v", correct, q.Options)
		}
		delete(b.used, catalog[0].TypeID)
	}
}

func TestGenerateDoesNotReuseSubjects(t *testing.T) {
	// One type, eight tier-3 items: every question subjects a distinct item.
	var catalog []models.Item
	for i := 1; i <= 8; i++ {
		catalog = append(catalog, models.Item{
			ID:        i,
			TypeID:    1,
			TypeName:  "Type 1",
			Fame:      3,
			Name:      fmt.Sprintf("Item %d", i),
			Modifiers: []string{fmt.Sprintf("+%d to something", i)},
		})
	}

	for seed := int64(1); seed <= 5; seed++ {
		g := newTestGenerator(seed)
		questions, err := g.Generate("medium", 5, catalog)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		subjects := make(map[string]bool)
		for _, q := range questions {
			if subjects[q.CorrectAnswer] {
				t.Errorf("seed %d: item %q subjects two questions in one batch", seed, q.CorrectAnswer)
			}
			subjects[q.CorrectAnswer] = true
		}
	}
}

func TestGenerateShortfallReturnsInsufficientData(t *testing.T) {
	catalog := []models.Item{
		{ID: 1, TypeID: 1, TypeName: "Type 1", Fame: 5, Name: "Only one", Modifiers: []string{"alone"}},
	}

	g := newTestGenerator(1)
	questions, err := g.Generate("impossible", 5, catalog)
	if err == nil {
		t.Fatal("Generate succeeded with no tier-1 items")
	}
	var insufficient *InsufficientDataError
	if !errors.As(err, &insufficient) {
		t.Fatalf("error is %T, want *InsufficientDataError", err)
	}
	if insufficient.Generated != len(questions) || insufficient.Required != 5 {
		t.Errorf("got Generated=%d Required=%d with %d questions", insufficient.Generated, insufficient.Required, len(questions))
	}
	if insufficient.Difficulty != "impossible" {
		t.Errorf("got Difficulty=%q", insufficient.Difficulty)
	}
}

func TestGenerateUnknownDifficultyUsesAllTiers(t *testing.T) {
	// Items only at the extremes: an unrecognized label must still see them.
	var catalog []models.Item
	for i := 1; i <= 4; i++ {
		catalog = append(catalog, models.Item{
			ID: i, TypeID: 1, TypeName: "Type 1", Fame: 5,
			Name: fmt.Sprintf("Common %d", i), Modifiers: []string{fmt.Sprintf("c%d", i)},
		})
		catalog = append(catalog, models.Item{
			ID: 10 + i, TypeID: 1, TypeName: "Type 1", Fame: 1,
			Name: fmt.Sprintf("Rare %d", i), Modifiers: []string{fmt.Sprintf("r%d", i)},
		})
	}

	g := newTestGenerator(1)
	questions, err := g.Generate("nightmare", 2, catalog)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(questions))
	}
}

func TestMediumBatchCanAskSignatureQuestion(t *testing.T) {
	// A small catalog: 25 items, 5 per tier, among them a tier-3
	// ascendancy item whose "signature power" no rival grants. A medium
	// batch must be able to turn that into a class question with three
	// rival class names as distractors.
	var catalog []models.Item
	id := 1
	for fame := 1; fame <= 5; fame++ {
		perTier := 5
		if fame == 3 {
			perTier = 1 // tier 3 is completed by the four classes below
		}
		for n := 0; n < perTier; n++ {
			catalog = append(catalog, models.Item{
				ID: id, TypeID: 1, TypeName: "Type 1", Fame: fame,
				Name: fmt.Sprintf("Item %d", id), Modifiers: []string{fmt.Sprintf("+%d to something", id)},
			})
			id++
		}
	}
	catalog = append(catalog, ascendancyItems(3)...)
	if len(catalog) != 25 {
		t.Fatalf("scenario catalog has %d items, want 25", len(catalog))
	}

	chosen := catalog[len(catalog)-4] // Class 27
	g := newTestGenerator(42)

	for i := 0; i < 500; i++ {
		b := newBatch(g, "medium", catalog)
		q := g.ascendancyQuestion(b)
		if q == nil || !strings.Contains(q.QuestionText, "signature power 27") {
			continue
		}

		if len(q.Options) != 4 {
			t.Fatalf("signature question has %d options", len(q.Options))
		}
		for _, opt := range q.Options {
			if opt.IsCorrect && opt.Text != chosen.TypeName {
				t.Fatalf("correct option is %q, want %q", opt.Text, chosen.TypeName)
			}
			if !opt.IsCorrect && !strings.HasPrefix(opt.Text, "Class ") {
				t.Fatalf("distractor %q is not a class name", opt.Text)
			}
		}
		return
	}
	t.Fatal("signature question for Class 27 never generated")
}

func TestShuffledKeepsOptions(t *testing.T) {
	g := newTestGenerator(1)
	options := []models.AnswerOption{
		{Text: "a", IsCorrect: true}, {Text: "b"}, {Text: "c"}, {Text: "d"},
	}
	got := g.shuffled(options)
	if len(got) != 4 {
		t.Fatalf("got %d options", len(got))
	}
	seen := make(map[string]bool)
	for _, opt := range got {
		seen[opt.Text] = true
	}
	for _, want := range []string{"a", "b", "c", "d"} {
		if !seen[want] {
			t.Errorf("option %q lost in shuffle", want)
		}
	}
}
