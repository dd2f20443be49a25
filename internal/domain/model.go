package domain

// TimestampLayout is the layout used for all string timestamps stored in
// the database (ISO-8601 without zone, matching the frontend contract).
const TimestampLayout = "2006-01-02T15:04:05"

// DefaultUserID is recorded on annotations and log rows when the request
// does not identify the acting user.
const DefaultUserID = "Admin"

// Transformer is a monitored power transformer. Deleting one removes its
// inspections and maintenance records.
type Transformer struct {
	ID                 uint   `json:"id" gorm:"primaryKey"`
	Number             string `json:"number" gorm:"uniqueIndex;not null"`
	Pole               string `json:"pole"`
	Region             string `json:"region"`
	Type               string `json:"type"`
	BaselineImage      string `json:"baselineImage" gorm:"type:text"`
	BaselineUploadDate string `json:"baselineUploadDate"`
	Weather            string `json:"weather"`
	Location           string `json:"location"`

	Inspections        []Inspection        `json:"-" gorm:"foreignKey:TransformerID;constraint:OnDelete:CASCADE"`
	MaintenanceRecords []MaintenanceRecord `json:"-" gorm:"foreignKey:TransformerID;constraint:OnDelete:CASCADE"`
}

// Inspection is one examination event for a transformer. The Anomalies
// and ProgressStatus columns hold frontend-owned JSON and are stored and
// returned verbatim.
type Inspection struct {
	ID                    uint   `json:"id" gorm:"primaryKey"`
	TransformerID         uint   `json:"transformerId" gorm:"not null;index"`
	Date                  string `json:"date"`
	InspectedDate         string `json:"inspectedDate"`
	Inspector             string `json:"inspector"`
	Notes                 string `json:"notes" gorm:"type:text"`
	Status                string `json:"status" gorm:"default:Pending"`
	MaintenanceImage      string `json:"maintenanceImage" gorm:"type:text"`
	MaintenanceUploadDate string `json:"maintenanceUploadDate"`
	MaintenanceWeather    string `json:"maintenanceWeather"`
	AnnotatedImage        string `json:"annotatedImage" gorm:"type:text"`
	Anomalies             string `json:"anomalies" gorm:"type:text"`
	ProgressStatus        string `json:"progressStatus" gorm:"type:text"`

	Transformer    Transformer     `json:"-" gorm:"foreignKey:TransformerID"`
	Annotations    []Annotation    `json:"-" gorm:"foreignKey:InspectionID;constraint:OnDelete:CASCADE"`
	AnnotationLogs []AnnotationLog `json:"-" gorm:"foreignKey:InspectionID;constraint:OnDelete:CASCADE"`
}

// Annotation is a bounding-box label on an inspection image. AnnotationID
// is the client-supplied key (e.g. "ai_1", "user_123") and stays stable
// across edits; Deleted rows are hidden from reads but kept for the
// reconciler and the audit history.
type Annotation struct {
	ID             uint             `json:"id" gorm:"primaryKey"`
	InspectionID   uint             `json:"inspectionId" gorm:"not null;index"`
	AnnotationID   string           `json:"annotationId" gorm:"uniqueIndex;not null"`
	X              float64          `json:"x" gorm:"not null"`
	Y              float64          `json:"y" gorm:"not null"`
	W              float64          `json:"w" gorm:"not null"`
	H              float64          `json:"h" gorm:"not null"`
	Confidence     *float64         `json:"confidence"`
	Severity       string           `json:"severity"`
	Classification string           `json:"classification"`
	Comment        string           `json:"comment" gorm:"type:text"`
	Source         AnnotationSource `json:"source" gorm:"not null"`
	Deleted        bool             `json:"deleted" gorm:"default:false"`
	UserID         string           `json:"userId" gorm:"default:Admin"`
	CreatedAt      string           `json:"createdAt" gorm:"not null"`
	UpdatedAt      string           `json:"updatedAt" gorm:"not null"`

	Inspection Inspection `json:"-" gorm:"foreignKey:InspectionID"`
}

// AnnotationLog is one append-only audit row per annotation mutation.
// AnnotationData and UserAnnotation carry the post-action snapshot;
// AIPrediction carries the pre-action snapshot for edits and deletes and
// is nil for creations. Rows are never updated or deleted once written.
type AnnotationLog struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	InspectionID   uint       `json:"inspectionId" gorm:"not null;index"`
	TransformerID  uint       `json:"transformerId" gorm:"not null;index"`
	ImageID        string     `json:"imageId" gorm:"type:text"`
	ActionType     ActionType `json:"actionType" gorm:"not null"`
	AnnotationData string     `json:"annotationData" gorm:"type:text;not null"`
	AIPrediction   *string    `json:"aiPrediction" gorm:"type:text"`
	UserAnnotation string     `json:"userAnnotation" gorm:"type:text"`
	UserID         string     `json:"userId" gorm:"default:Admin"`
	Timestamp      string     `json:"timestamp" gorm:"not null"`
	Notes          string     `json:"notes" gorm:"type:text"`

	Inspection  Inspection  `json:"-" gorm:"foreignKey:InspectionID"`
	Transformer Transformer `json:"-" gorm:"foreignKey:TransformerID"`
}

// MaintenanceRecord is a post-inspection engineering report. Location is
// a snapshot copied from the transformer at creation time; it is not
// resynchronized when the transformer later moves.
type MaintenanceRecord struct {
	ID                uint   `json:"id" gorm:"primaryKey"`
	TransformerID     uint   `json:"transformerId" gorm:"not null;index"`
	InspectionID      *uint  `json:"inspectionId" gorm:"index"`
	RecordTimestamp   string `json:"recordTimestamp" gorm:"not null"`
	EngineerName      string `json:"engineerName"`
	Status            string `json:"status"`
	Readings          string `json:"readings" gorm:"type:text"`
	RecommendedAction string `json:"recommendedAction" gorm:"type:text"`
	Notes             string `json:"notes" gorm:"type:text"`
	AnnotatedImage    string `json:"annotatedImage" gorm:"type:text"`
	Anomalies         string `json:"anomalies" gorm:"type:text"`
	Location          string `json:"location"`
	CreatedAt         string `json:"createdAt" gorm:"not null"`
	UpdatedAt         string `json:"updatedAt" gorm:"not null"`

	Transformer Transformer `json:"-" gorm:"foreignKey:TransformerID"`
	Inspection  *Inspection `json:"-" gorm:"foreignKey:InspectionID"`
}
