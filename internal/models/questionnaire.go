package models

import (
	"time"

	"gorm.io/datatypes"
)

type Category string

const (
	CategoryCalidad        Category = "calidad"
	CategoryAbastecimiento Category = "abastecimiento"
)

func (c Category) IsValid() bool {
	return c == CategoryCalidad || c == CategoryAbastecimiento
}

type Answer string

const (
	AnswerCumple   Answer = "cumple"
	AnswerNoCumple Answer = "no_cumple"
)

func (a Answer) IsValid() bool {
	return a == AnswerCumple || a == AnswerNoCumple
}

type Classification string

const (
	ClassificationSalir   Classification = "SALIR"
	ClassificationMejorar Classification = "MEJORAR"
	ClassificationCrecer  Classification = "CRECER"
)

// Question weight is carried for the configuration admin but is not what
// determines point value: scoring splits the section weight evenly across
// the section's questions.
type Question struct {
	ID     string  `json:"id"`
	Text   string  `json:"text"`
	Weight float64 `json:"weight"`
}

type Section struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Weight    float64    `json:"weight"`
	Questions []Question `json:"questions"`
}

type CategoryQuestionnaire struct {
	TotalWeight float64   `json:"totalWeight"`
	Sections    []Section `json:"sections"`
}

type Questionnaire struct {
	Calidad        CategoryQuestionnaire `json:"calidad"`
	Abastecimiento CategoryQuestionnaire `json:"abastecimiento"`
}

// Sections returns the section list for a category.
func (q *Questionnaire) Sections(c Category) []Section {
	if c == CategoryAbastecimiento {
		return q.Abastecimiento.Sections
	}
	return q.Calidad.Sections
}

// QuestionCount counts the questions across every section of a category.
func (q *Questionnaire) QuestionCount(c Category) int {
	total := 0
	for _, s := range q.Sections(c) {
		total += len(s.Questions)
	}
	return total
}

// QuestionnaireConfig is the single stored questionnaire document.
type QuestionnaireConfig struct {
	Key       string                            `gorm:"type:text;primaryKey" json:"key"`
	Payload   datatypes.JSONType[Questionnaire] `gorm:"type:jsonb;not null" json:"payload"`
	UpdatedAt time.Time                         `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (QuestionnaireConfig) TableName() string {
	return "questionnaire_configs"
}

// QuestionnaireConfigKey is the fixed key of the stored questionnaire row.
const QuestionnaireConfigKey = "supplier_questionnaire"

// DefaultQuestionnaire is the built-in questionnaire served when none has
// been stored yet, and the fallback when the configuration store cannot be
// read.
func DefaultQuestionnaire() *Questionnaire {
	return &Questionnaire{
		Calidad: CategoryQuestionnaire{
			TotalWeight: 100,
			Sections: []Section{
				{
					ID:     "cal-sgc",
					Title:  "Sistema de gestión de calidad",
					Weight: 40,
					Questions: []Question{
						{ID: "cal-sgc-1", Text: "¿Cuenta con política de calidad documentada y divulgada?", Weight: 10},
						{ID: "cal-sgc-2", Text: "¿Tiene procedimientos documentados para sus procesos críticos?", Weight: 10},
						{ID: "cal-sgc-3", Text: "¿Realiza auditorías internas de calidad al menos una vez al año?", Weight: 10},
						{ID: "cal-sgc-4", Text: "¿Cuenta con certificación vigente de su sistema de gestión?", Weight: 10},
					},
				},
				{
					ID:     "cal-producto",
					Title:  "Control de producto",
					Weight: 35,
					Questions: []Question{
						{ID: "cal-prod-1", Text: "¿Inspecciona materias primas antes de ingresarlas a producción?", Weight: 10},
						{ID: "cal-prod-2", Text: "¿Cuenta con trazabilidad por lote de producto terminado?", Weight: 10},
						{ID: "cal-prod-3", Text: "¿Registra y gestiona producto no conforme?", Weight: 10},
					},
				},
				{
					ID:     "cal-mejora",
					Title:  "Mejora continua",
					Weight: 25,
					Questions: []Question{
						{ID: "cal-mej-1", Text: "¿Gestiona acciones correctivas derivadas de reclamos de clientes?", Weight: 10},
						{ID: "cal-mej-2", Text: "¿Mide indicadores de desempeño de calidad?", Weight: 10},
					},
				},
			},
		},
		Abastecimiento: CategoryQuestionnaire{
			TotalWeight: 100,
			Sections: []Section{
				{
					ID:     "aba-capacidad",
					Title:  "Capacidad de suministro",
					Weight: 50,
					Questions: []Question{
						{ID: "aba-cap-1", Text: "¿Cuenta con capacidad instalada para atender aumentos de demanda del 20%?", Weight: 10},
						{ID: "aba-cap-2", Text: "¿Mantiene inventario de seguridad de insumos críticos?", Weight: 10},
						{ID: "aba-cap-3", Text: "¿Cumple los tiempos de entrega pactados en los últimos seis meses?", Weight: 10},
					},
				},
				{
					ID:     "aba-logistica",
					Title:  "Logística y entregas",
					Weight: 50,
					Questions: []Question{
						{ID: "aba-log-1", Text: "¿Dispone de flota o aliados logísticos para entregas programadas?", Weight: 10},
						{ID: "aba-log-2", Text: "¿Notifica oportunamente retrasos o novedades en los despachos?", Weight: 10},
						{ID: "aba-log-3", Text: "¿Entrega la documentación completa con cada despacho?", Weight: 10},
					},
				},
			},
		},
	}
}
