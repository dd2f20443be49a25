package domain

// AnnotationSource says who produced an annotation.
type AnnotationSource string

const (
	SourceAI   AnnotationSource = "ai"
	SourceUser AnnotationSource = "user"
)

func (s AnnotationSource) Valid() bool {
	switch s {
	case SourceAI, SourceUser:
		return true
	}
	return false
}

// ActionType classifies one annotation mutation in the audit log.
type ActionType string

const (
	ActionAdded       ActionType = "added"
	ActionEdited      ActionType = "edited"
	ActionDeleted     ActionType = "deleted"
	ActionAIGenerated ActionType = "ai_generated"
)

func (a ActionType) Valid() bool {
	switch a {
	case ActionAdded, ActionEdited, ActionDeleted, ActionAIGenerated:
		return true
	}
	return false
}

// RecordStatus is the engineer's verdict on a maintenance record.
type RecordStatus string

const (
	StatusOK               RecordStatus = "OK"
	StatusNeedsMaintenance RecordStatus = "Needs Maintenance"
	StatusUrgentAttention  RecordStatus = "Urgent Attention"
)

func (s RecordStatus) Valid() bool {
	switch s {
	case StatusOK, StatusNeedsMaintenance, StatusUrgentAttention:
		return true
	}
	return false
}
