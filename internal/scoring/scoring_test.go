package scoring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"grupoandino/supplier-evaluator/internal/models"
	"grupoandino/supplier-evaluator/internal/scoring"
)

func section(id string, weight float64, questionIDs ...string) models.Section {
	s := models.Section{ID: id, Title: id, Weight: weight}
	for _, qid := range questionIDs {
		// Per-question weight is set to an arbitrary value on purpose:
		// scoring must never read it.
		s.Questions = append(s.Questions, models.Question{ID: qid, Text: qid, Weight: 37})
	}
	return s
}

func response(questionID, sectionID string, category models.Category, answer models.Answer) models.Response {
	return models.Response{
		QuestionID: questionID,
		SectionID:  sectionID,
		Category:   category,
		Answer:     answer,
	}
}

func TestQuestionPointValue_EqualSplit(t *testing.T) {
	s := section("s1", 40, "q1", "q2", "q3", "q4")
	assert.InDelta(t, 10.0, scoring.QuestionPointValue(s), 1e-9)

	// point value * question count == section weight
	for _, count := range []int{1, 2, 3, 5, 7} {
		ids := make([]string, count)
		for i := range ids {
			ids[i] = "q"
		}
		sec := section("s", 100, ids...)
		assert.InDelta(t, sec.Weight, scoring.QuestionPointValue(sec)*float64(count), 1e-9)
	}
}

func TestQuestionPointValue_EmptySection(t *testing.T) {
	assert.Equal(t, 0.0, scoring.QuestionPointValue(models.Section{ID: "s", Weight: 50}))
}

func TestSectionScore(t *testing.T) {
	s := section("s1", 50, "q1", "q2")

	responses := []models.Response{
		response("q1", "s1", models.CategoryCalidad, models.AnswerCumple),
		response("q2", "s1", models.CategoryCalidad, models.AnswerNoCumple),
	}

	result := scoring.SectionScore(s, responses)
	assert.InDelta(t, 25.0, result.PointsEarned, 1e-9)
	assert.InDelta(t, 50.0, result.PointsPossible, 1e-9)
	assert.InDelta(t, 50.0, result.Percentage, 1e-9)
}

func TestSectionScore_IgnoresOtherSections(t *testing.T) {
	s := section("s1", 50, "q1")

	responses := []models.Response{
		response("other", "s2", models.CategoryCalidad, models.AnswerCumple),
	}

	result := scoring.SectionScore(s, responses)
	assert.Equal(t, 0.0, result.PointsEarned)
}

// Two sections of weight 50 with 2 questions each, one compliant answer per
// section: the category lands on exactly 50.
func TestCategoryScore_HalfCompliant(t *testing.T) {
	sections := []models.Section{
		section("s1", 50, "q1", "q2"),
		section("s2", 50, "q3", "q4"),
	}
	responses := []models.Response{
		response("q1", "s1", models.CategoryCalidad, models.AnswerCumple),
		response("q2", "s1", models.CategoryCalidad, models.AnswerNoCumple),
		response("q3", "s2", models.CategoryCalidad, models.AnswerCumple),
		response("q4", "s2", models.CategoryCalidad, models.AnswerNoCumple),
	}

	assert.InDelta(t, 50.0, scoring.CategoryScore(sections, responses), 1e-9)
}

// All-cumple must score 100 and all-no_cumple 0 regardless of how the
// weight is distributed across sections.
func TestCategoryScore_Extremes(t *testing.T) {
	sections := []models.Section{
		section("s1", 70, "q1", "q2", "q3"),
		section("s2", 20, "q4"),
		section("s3", 10, "q5", "q6"),
	}

	var allYes, allNo []models.Response
	for _, s := range sections {
		for _, q := range s.Questions {
			allYes = append(allYes, response(q.ID, s.ID, models.CategoryCalidad, models.AnswerCumple))
			allNo = append(allNo, response(q.ID, s.ID, models.CategoryCalidad, models.AnswerNoCumple))
		}
	}

	assert.InDelta(t, 100.0, scoring.CategoryScore(sections, allYes), 1e-9)
	assert.InDelta(t, 0.0, scoring.CategoryScore(sections, allNo), 1e-9)
}

func TestCategoryScore_NoPossiblePoints(t *testing.T) {
	assert.Equal(t, 0.0, scoring.CategoryScore(nil, nil))
}

func TestGlobalScore_Mean(t *testing.T) {
	assert.InDelta(t, 70.0, scoring.GlobalScore(80, 60), 1e-9)
	assert.Equal(t, models.ClassificationMejorar, scoring.Classify(scoring.GlobalScore(80, 60)))
}

func TestClassify_Partition(t *testing.T) {
	tests := []struct {
		score float64
		want  models.Classification
	}{
		{0, models.ClassificationSalir},
		{59.99, models.ClassificationSalir},
		{60, models.ClassificationMejorar},
		{79.99, models.ClassificationMejorar},
		{80, models.ClassificationCrecer},
		{100, models.ClassificationCrecer},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, scoring.Classify(tt.score), "score %.2f", tt.score)
	}

	// monotonic over the whole range
	prev := scoring.Classify(0)
	rank := map[models.Classification]int{
		models.ClassificationSalir:   0,
		models.ClassificationMejorar: 1,
		models.ClassificationCrecer:  2,
	}
	for s := 0.0; s <= 100; s += 0.5 {
		cur := scoring.Classify(s)
		assert.GreaterOrEqual(t, rank[cur], rank[prev])
		prev = cur
	}
}

func TestComputeProgress(t *testing.T) {
	q := &models.Questionnaire{
		Calidad: models.CategoryQuestionnaire{
			TotalWeight: 100,
			Sections:    []models.Section{section("c1", 100, "q1", "q2")},
		},
		Abastecimiento: models.CategoryQuestionnaire{
			TotalWeight: 100,
			Sections:    []models.Section{section("a1", 100, "q3", "q4")},
		},
	}

	responses := []models.Response{
		response("q1", "c1", models.CategoryCalidad, models.AnswerCumple),
		response("q3", "a1", models.CategoryAbastecimiento, models.AnswerNoCumple),
		response("q4", "a1", models.CategoryAbastecimiento, models.AnswerCumple),
	}

	p := scoring.ComputeProgress(q, responses)
	assert.Equal(t, 1, p.CalidadAnswered)
	assert.Equal(t, 2, p.CalidadQuestions)
	assert.Equal(t, 2, p.AbastecimientoAnswered)
	assert.Equal(t, 2, p.AbastecimientoQuestions)
	assert.InDelta(t, 75.0, p.OverallPercent, 1e-9)
}

func TestComputeProgress_Empty(t *testing.T) {
	p := scoring.ComputeProgress(&models.Questionnaire{}, nil)
	assert.Equal(t, 0.0, p.OverallPercent)
}
