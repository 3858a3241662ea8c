// Package scoring holds the pure score arithmetic: given a questionnaire
// and a set of responses it produces the same outputs every time. No store
// access, no clock, no randomness; response timestamps are metadata and are
// never read here.
package scoring

import (
	"grupoandino/supplier-evaluator/internal/models"
)

// QuestionPointValue is the authoritative point value of every question in
// a section: the section weight split evenly across its questions. The
// per-question Weight field the questionnaire carries is presentation
// metadata and is deliberately not consulted.
func QuestionPointValue(section models.Section) float64 {
	if len(section.Questions) == 0 {
		return 0
	}
	return section.Weight / float64(len(section.Questions))
}

type SectionResult struct {
	PointsEarned   float64 `json:"pointsEarned"`
	PointsPossible float64 `json:"pointsPossible"`
	Percentage     float64 `json:"percentage"`
}

// SectionScore sums one QuestionPointValue per compliant answer in the
// section and expresses it as a percentage of the section weight.
func SectionScore(section models.Section, responses []models.Response) SectionResult {
	pointValue := QuestionPointValue(section)

	earned := 0.0
	for _, r := range responses {
		if r.SectionID != section.ID {
			continue
		}
		if r.Answer == models.AnswerCumple {
			earned += pointValue
		}
	}

	result := SectionResult{
		PointsEarned:   earned,
		PointsPossible: section.Weight,
	}
	if section.Weight > 0 {
		result.Percentage = 100 * earned / section.Weight
	}
	return result
}

// CategoryScore aggregates earned/possible points across every section of a
// category. Returns 0 when no points are possible.
func CategoryScore(sections []models.Section, responses []models.Response) float64 {
	earned := 0.0
	possible := 0.0
	for _, s := range sections {
		r := SectionScore(s, responses)
		earned += r.PointsEarned
		possible += r.PointsPossible
	}
	if possible == 0 {
		return 0
	}
	return 100 * earned / possible
}

// GlobalScore is the arithmetic mean of the two category scores. The
// categories are not weighted against each other.
func GlobalScore(calidad, abastecimiento float64) float64 {
	return (calidad + abastecimiento) / 2
}

// Classify maps a global score to the three-tier outcome. 60 belongs to
// MEJORAR and 80 to CRECER.
func Classify(globalScore float64) models.Classification {
	switch {
	case globalScore >= 80:
		return models.ClassificationCrecer
	case globalScore >= 60:
		return models.ClassificationMejorar
	default:
		return models.ClassificationSalir
	}
}

// ComputeProgress counts answered questions per category. A question counts
// as answered when any response exists with its id.
func ComputeProgress(q *models.Questionnaire, responses []models.Response) models.Progress {
	answered := make(map[string]bool, len(responses))
	for _, r := range responses {
		answered[r.QuestionID] = true
	}

	p := models.Progress{}
	for _, s := range q.Calidad.Sections {
		for _, question := range s.Questions {
			p.CalidadQuestions++
			if answered[question.ID] {
				p.CalidadAnswered++
			}
		}
	}
	for _, s := range q.Abastecimiento.Sections {
		for _, question := range s.Questions {
			p.AbastecimientoQuestions++
			if answered[question.ID] {
				p.AbastecimientoAnswered++
			}
		}
	}

	total := p.CalidadQuestions + p.AbastecimientoQuestions
	if total > 0 {
		done := p.CalidadAnswered + p.AbastecimientoAnswered
		p.OverallPercent = 100 * float64(done) / float64(total)
	}
	return p
}
