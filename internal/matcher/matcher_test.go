package matcher

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifeupmcp/internal/types"
)

func sampleAchievements() []types.Achievement {
	return []types.Achievement{
		{ID: 1, Name: "Reading Master", Desc: "Read 50 books", CategoryID: 1},
		{ID: 2, Name: "Programming Expert", Desc: "Ship 10 side projects", CategoryID: 2},
		{ID: 3, Name: "Unrelated", Desc: "Drink water daily", CategoryID: 3},
	}
}

func TestExtractKeywords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"basic", "read programming book", []string{"read", "programming", "book"}},
		{"separators", "deep-work_session\tplanning", []string{"deep", "work", "session", "planning"}},
		{"unicode spaces", "morning\u00a0run\u3000stretch", []string{"morning", "run", "stretch"}},
		{"lowercases", "Write The REPORT", []string{"write", "report"}},
		{"drops short tokens", "go to gym at 6", []string{"gym"}},
		{"drops filler", "complete the task and finish homework", []string{"homework"}},
		{"caps at five", "alpha bravo charlie delta echo foxtrot golf", []string{"alpha", "bravo", "charlie", "delta", "echo"}},
		{"empty", "", []string{}},
		{"only stop words", "the and for", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractKeywords(tt.text))
		})
	}
}

func TestExtractKeywords_Idempotent(t *testing.T) {
	inputs := []string{
		"read programming book",
		"Finish the quarterly tax-return paperwork before Friday",
		"go_for_a_long run with the dog and then stretch",
	}
	for _, in := range inputs {
		first := ExtractKeywords(in)
		second := ExtractKeywords(strings.Join(first, " "))
		assert.Subset(t, first, second, "input %q", in)
	}
}

func TestFindMatches_ReadingScenario(t *testing.T) {
	matches := FindMatches("read programming book", sampleAchievements(), nil)

	require.Len(t, matches, 2)
	ids := []int{matches[0].Achievement.ID, matches[1].Achievement.ID}
	assert.Equal(t, []int{1, 2}, ids)
	for _, m := range matches {
		assert.NotEqual(t, "Unrelated", m.Achievement.Name)
	}

	// "read" hits name and desc (+20), "book" hits the desc (+20), and
	// "reading" contains "read" (+15).
	assert.Equal(t, 55, matches[0].Confidence)
	assert.Equal(t, []string{`Keyword "read" found`, `Keyword "book" found`}, matches[0].Reasons)
	assert.Equal(t, 35, matches[1].Confidence)
}

func TestFindMatches_RepeatedKeywordCountsOnce(t *testing.T) {
	achievements := []types.Achievement{{ID: 7, Name: "Bookworm", Desc: "reading", CategoryID: 1}}

	matches := FindMatches("reading reading reading", achievements, nil)

	require.Len(t, matches, 1)
	assert.Equal(t, 20, matches[0].Confidence)
	assert.Equal(t, []string{`Keyword "reading" found`}, matches[0].Reasons)
}

func TestFindMatches_CategoryBonus(t *testing.T) {
	cat := 2
	matches := FindMatches("read programming book", sampleAchievements(), &cat)
	require.Len(t, matches, 2)
	assert.Equal(t, 55, matches[0].Confidence)
	assert.Equal(t, 2, matches[1].Achievement.ID)
	assert.Equal(t, 45, matches[1].Confidence)
	assert.Contains(t, matches[1].Reasons, ReasonSameCategory)

	// A category match alone is enough to be listed.
	cat = 3
	matches = FindMatches("meditate", sampleAchievements(), &cat)
	require.Len(t, matches, 1)
	assert.Equal(t, 3, matches[0].Achievement.ID)
	assert.Equal(t, 10, matches[0].Confidence)
	assert.Equal(t, []string{ReasonSameCategory}, matches[0].Reasons)
}

func TestFindMatches_CapsAndTruncates(t *testing.T) {
	cat := 9
	a := types.Achievement{
		ID:         1,
		Name:       "Marathon Runner",
		Desc:       "marathon training running distance endurance pace",
		CategoryID: 9,
	}
	matches := FindMatches("marathon training running distance endurance", []types.Achievement{a}, &cat)
	require.Len(t, matches, 1)
	assert.Equal(t, MaxConfidence, matches[0].Confidence)
	assert.Len(t, matches[0].Reasons, MaxReasons)
}

func TestFindMatches_TopFiveStableTies(t *testing.T) {
	var achievements []types.Achievement
	for i := 1; i <= 8; i++ {
		achievements = append(achievements, types.Achievement{ID: i, Name: "Writer", Desc: "journal"})
	}
	achievements = append(achievements, types.Achievement{ID: 100, Name: "Journal Writer", Desc: "journal daily"})

	matches := FindMatches("journal", achievements, nil)
	require.Len(t, matches, MaxMatches)

	got := make([]int, 0, len(matches))
	for _, m := range matches {
		got = append(got, m.Achievement.ID)
	}
	if diff := cmp.Diff([]int{100, 1, 2, 3, 4}, got); diff != "" {
		t.Errorf("ranking mismatch (-want +got):\n%s", diff)
	}
}

func TestFindMatches_Properties(t *testing.T) {
	achievements := sampleAchievements()
	inputs := []string{"read programming book", "drink water", "ship side projects daily", "books"}
	for _, in := range inputs {
		matches := FindMatches(in, achievements, nil)
		for i, m := range matches {
			assert.GreaterOrEqual(t, m.Confidence, 1)
			assert.LessOrEqual(t, m.Confidence, MaxConfidence)
			if i > 0 {
				assert.GreaterOrEqual(t, matches[i-1].Confidence, m.Confidence)
			}
		}
		again := FindMatches(in, achievements, nil)
		assert.Equal(t, matches, again)
	}
}

func TestFindMatches_Empty(t *testing.T) {
	assert.Empty(t, FindMatches("", sampleAchievements(), nil))
	assert.Empty(t, FindMatches("read", nil, nil))
	assert.Empty(t, FindMatches("astronomy", sampleAchievements(), nil))
}
