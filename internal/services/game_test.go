package services

import (
	"testing"

	"github.com/mroth/weightedrand/v2"
)

func newGameForTest(t *testing.T) *ServiceGame {
	t.Helper()
	chooser, err := weightedrand.NewChooser(
		weightedrand.NewChoice(1, GAME_WEIGHT_EASY),
		weightedrand.NewChoice(2, GAME_WEIGHT_MEDIUM),
		weightedrand.NewChoice(3, GAME_WEIGHT_HARD),
	)
	if err != nil {
		t.Fatal(err)
	}
	return &ServiceGame{chooser: chooser}
}

func TestCheckAnswer(t *testing.T) {
	game := newGameForTest(t)

	q := questionBank[0]

	correct, err := game.CheckAnswer(q.ID, q.Answer)
	if err != nil {
		t.Fatal(err)
	}
	if !correct {
		t.Fatalf("answer %d for question %d must be correct", q.Answer, q.ID)
	}

	correct, err = game.CheckAnswer(q.ID, q.Answer+1)
	if err != nil {
		t.Fatal(err)
	}
	if correct {
		t.Fatalf("answer %d for question %d must be wrong", q.Answer+1, q.ID)
	}

	if _, err = game.CheckAnswer(-1, 0); err == nil {
		t.Fatal("unknown question id must error")
	}
}

func TestQuestionsDrawWithoutRepeats(t *testing.T) {
	game := newGameForTest(t)

	picked := game.Questions(5)
	if len(picked) != 5 {
		t.Fatalf("drew %d questions, want 5", len(picked))
	}
	seen := map[int]bool{}
	for _, q := range picked {
		if seen[q.ID] {
			t.Fatalf("question %d drawn twice", q.ID)
		}
		seen[q.ID] = true
	}

	// out-of-range counts fall back to the default draw size
	if got := len(game.Questions(0)); got != GAME_DEFAULT_QUESTION_COUNT {
		t.Fatalf("zero count drew %d, want %d", got, GAME_DEFAULT_QUESTION_COUNT)
	}
	if got := len(game.Questions(len(questionBank) + 1)); got != GAME_DEFAULT_QUESTION_COUNT {
		t.Fatalf("oversized count drew %d, want %d", got, GAME_DEFAULT_QUESTION_COUNT)
	}
}
