package memory

import (
	"github.com/secmon-lab/kottos/pkg/domain/interfaces"
	"github.com/secmon-lab/kottos/pkg/domain/model"
)

// Memory holds every managed collection in process memory. Nothing survives a restart.
type Memory struct {
	controlCategories  *Collection[model.ControlCategory, *model.ControlCategory]
	controlFrequencies *Collection[model.ControlFrequency, *model.ControlFrequency]
	controlRatings     *Collection[model.ControlRating, *model.ControlRating]
	observationRatings *Collection[model.ObservationRating, *model.ObservationRating]
	inherentRiskLevels *Collection[model.InherentRiskLevel, *model.InherentRiskLevel]
	scoreBands         *Collection[model.ScoreBand, *model.ScoreBand]
	riskCategories     *Collection[model.RiskCategory, *model.RiskCategory]
	entities           *Collection[model.Entity, *model.Entity]
	users              *Collection[model.User, *model.User]
	roles              *Collection[model.Role, *model.Role]
	workflows          *Collection[model.WorkflowItem, *model.WorkflowItem]
	uploadTasks        *uploadTaskRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		controlCategories:  NewCollection[model.ControlCategory, *model.ControlCategory]("control-categories"),
		controlFrequencies: NewCollection[model.ControlFrequency, *model.ControlFrequency]("control-frequencies"),
		controlRatings:     NewCollection[model.ControlRating, *model.ControlRating]("control-ratings"),
		observationRatings: NewCollection[model.ObservationRating, *model.ObservationRating]("observation-ratings"),
		inherentRiskLevels: NewCollection[model.InherentRiskLevel, *model.InherentRiskLevel]("inherent-risk-levels"),
		scoreBands: NewCollection("score-bands",
			WithOrder[model.ScoreBand, *model.ScoreBand](model.ScoreBandsDescending),
			WithGuard[model.ScoreBand, *model.ScoreBand](model.CheckScoreBand),
		),
		riskCategories: NewCollection[model.RiskCategory, *model.RiskCategory]("risk-categories"),
		entities:       NewCollection[model.Entity, *model.Entity]("entities"),
		users:          NewCollection[model.User, *model.User]("users"),
		roles:          NewCollection[model.Role, *model.Role]("roles"),
		workflows:      NewCollection[model.WorkflowItem, *model.WorkflowItem]("workflows"),
		uploadTasks:    newUploadTaskRepository(),
	}
}

func (m *Memory) ControlCategories() interfaces.Collection[model.ControlCategory] {
	return m.controlCategories
}

func (m *Memory) ControlFrequencies() interfaces.Collection[model.ControlFrequency] {
	return m.controlFrequencies
}

func (m *Memory) ControlRatings() interfaces.Collection[model.ControlRating] {
	return m.controlRatings
}

func (m *Memory) ObservationRatings() interfaces.Collection[model.ObservationRating] {
	return m.observationRatings
}

func (m *Memory) InherentRiskLevels() interfaces.Collection[model.InherentRiskLevel] {
	return m.inherentRiskLevels
}

func (m *Memory) ScoreBands() interfaces.Collection[model.ScoreBand] {
	return m.scoreBands
}

func (m *Memory) RiskCategories() interfaces.Collection[model.RiskCategory] {
	return m.riskCategories
}

func (m *Memory) Entities() interfaces.Collection[model.Entity] {
	return m.entities
}

func (m *Memory) Users() interfaces.Collection[model.User] {
	return m.users
}

func (m *Memory) Roles() interfaces.Collection[model.Role] {
	return m.roles
}

func (m *Memory) Workflows() interfaces.Collection[model.WorkflowItem] {
	return m.workflows
}

func (m *Memory) UploadTasks() interfaces.UploadTaskRepository {
	return m.uploadTasks
}
