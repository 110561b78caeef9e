package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstQuestionPressShowsIndexZero(t *testing.T) {
	s := NewSessionState()
	s.NextQuestion(3)

	assert.Equal(t, 0, s.Index)
	assert.Equal(t, PanelQuestion, s.Panel)
	assert.True(t, s.Started)
	assert.Equal(t, 1, s.QuestionNumber())

	s.NextQuestion(3)
	assert.Equal(t, 1, s.Index)
}

func TestNextSaturatesAtNoMoreSlot(t *testing.T) {
	s := NewSessionState()
	for i := 0; i < 10; i++ {
		s.NextQuestion(2)
	}
	assert.Equal(t, 2, s.Index)

	nav := NewNavigator(sampleBank(), "conceptual")
	_, ok := nav.Current(SessionState{Index: nav.Len()})
	assert.False(t, ok)
}

func TestPreviousClampsAtZero(t *testing.T) {
	s := NewSessionState()
	s.NextQuestion(4)
	assert.Equal(t, 0, s.Index)

	s.PreviousQuestion(4)
	assert.Equal(t, 0, s.Index)
	assert.Equal(t, PanelQuestion, s.Panel)

	s.NextQuestion(4)
	s.NextQuestion(4)
	s.PreviousQuestion(4)
	assert.Equal(t, 1, s.Index)
}

func TestPreviousFromLandingStartsAtZero(t *testing.T) {
	s := NewSessionState()
	s.PreviousQuestion(0)
	assert.Equal(t, 0, s.Index)
	assert.True(t, s.Started)
}

func TestNavigatorOutOfRange(t *testing.T) {
	nav := NewNavigator(sampleBank(), "Behavioral")
	assert.Equal(t, 2, nav.Len())

	_, ok := nav.At(2)
	assert.False(t, ok)
	_, ok = nav.At(-1)
	assert.False(t, ok)
	_, ok = nav.At(100)
	assert.False(t, ok)

	rec, ok := nav.At(1)
	assert.True(t, ok)
	assert.Equal(t, "Describe a failure.", rec.Question)
}

func TestEmptyBankNeverFaults(t *testing.T) {
	nav := NewNavigator(NewBank(nil), "All")
	s := NewSessionState()
	s.NextQuestion(nav.Len())
	s.NextQuestion(nav.Len())

	assert.Equal(t, 0, s.Index)
	_, ok := nav.Current(s)
	assert.False(t, ok)
}

func TestSelectCategoryResets(t *testing.T) {
	s := NewSessionState()
	s.NextQuestion(4)
	s.NextQuestion(4)
	s.Submit("an answer")

	s.SelectCategory("behavioral")
	assert.Equal(t, 0, s.Index)
	assert.True(t, s.Started, "first question is already shown")
	assert.False(t, s.Submitted)
	assert.Empty(t, s.Response)
	assert.Equal(t, PanelQuestion, s.Panel)

	s.NextQuestion(2)
	s.SelectCategory("Behavioral")
	assert.Equal(t, 1, s.Index, "same category ignoring case keeps position")
}

func TestCategoryChangeThenNextAdvances(t *testing.T) {
	s := NewSessionState()
	s.NextQuestion(3)
	s.SelectCategory("Technical")
	assert.Equal(t, PanelQuestion, s.Panel)
	assert.Equal(t, 0, s.Index)

	s.NextQuestion(3)
	assert.Equal(t, 1, s.Index)
}

func TestCategoryChangeOnLandingStaysUnstarted(t *testing.T) {
	s := NewSessionState()
	s.SelectCategory("Technical")
	assert.Equal(t, PanelLanding, s.Panel)
	assert.False(t, s.Started)

	s.NextQuestion(3)
	assert.Equal(t, 0, s.Index, "first press shows the first question")
}

func TestRevealedClearedByNavigationAndSubmit(t *testing.T) {
	s := NewSessionState()
	s.NextQuestion(3)
	s.Reveal()
	assert.True(t, s.Revealed)

	s.Submit("typed after all")
	assert.False(t, s.Revealed)

	s.Reveal()
	s.NextQuestion(3)
	assert.False(t, s.Revealed)
}

func TestAnswerSubmitRevealFlow(t *testing.T) {
	s := NewSessionState()
	s.NextQuestion(3)

	s.OpenAnswer()
	assert.Equal(t, PanelAnswer, s.Panel)
	assert.False(t, s.Submitted)

	s.Submit("GROUP BY aggregates rows")
	assert.Equal(t, PanelFeedback, s.Panel)
	assert.True(t, s.Submitted)
	assert.Equal(t, "GROUP BY aggregates rows", s.Response)

	s.NextQuestion(3)
	assert.Empty(t, s.Response)
	assert.False(t, s.Submitted)

	s.Reveal()
	assert.Equal(t, PanelFeedback, s.Panel)
	assert.True(t, s.Submitted)
	assert.Empty(t, s.Response)
}

func TestScoreClearedByNavigation(t *testing.T) {
	s := NewSessionState()
	s.NextQuestion(3)
	s.Submit("joins combine tables")
	s.Record(0.82)
	require.NotNil(t, s.Score)

	s.Reveal()
	assert.NotNil(t, s.Score, "reveal keeps the score of the same response")

	s.Submit("a different answer")
	assert.Nil(t, s.Score)

	s.Record(0.5)
	s.NextQuestion(3)
	assert.Nil(t, s.Score)
}

func TestNavigatorNextPrevious(t *testing.T) {
	nav := NewNavigator(sampleBank(), "Behavioral")
	s := NewSessionState()
	nav.Next(&s)
	nav.Next(&s)
	nav.Next(&s)
	assert.Equal(t, nav.Len(), s.Index)

	nav.Previous(&s)
	rec, ok := nav.Current(s)
	require.True(t, ok)
	assert.Equal(t, "Describe a failure.", rec.Question)
}
