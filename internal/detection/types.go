package detection

// Result is the structured response relayed from the detection service.
type Result struct {
	RequestID       string            `json:"requestId"`
	TransformerID   string            `json:"transformerId"`
	Timestamp       string            `json:"timestamp"`
	ImageLevelLabel string            `json:"imageLevelLabel"`
	AnomalyCount    int               `json:"anomalyCount"`
	Anomalies       []DetectedAnomaly `json:"anomalies"`
	Metrics         *Metrics          `json:"metrics"`
	OverlayImage    *OverlayImage     `json:"overlayImage"`
}

// DetectedAnomaly is one finding with its bounding box in pixel
// coordinates.
type DetectedAnomaly struct {
	ID             string      `json:"id"`
	BBox           BoundingBox `json:"bbox"`
	Confidence     float64     `json:"confidence"`
	Severity       string      `json:"severity"`
	Classification string      `json:"classification"`
	Area           int         `json:"area"`
}

type BoundingBox struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Metrics aggregates the comparison parameters the service applied.
type Metrics struct {
	MeanSSIM           float64 `json:"meanSsim"`
	WarpModel          string  `json:"warpModel"`
	ThresholdPotential float64 `json:"thresholdPotential"`
	ThresholdFault     float64 `json:"thresholdFault"`
	BasePotential      float64 `json:"basePotential"`
	BaseFault          float64 `json:"baseFault"`
	SliderPercent      float64 `json:"sliderPercent"`
	ScaleApplied       float64 `json:"scaleApplied"`
	ThresholdSource    string  `json:"thresholdSource"`
	Ratio              string  `json:"ratio"`
}

type OverlayImage struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	Path     string `json:"path"`
}

// DetectRequest is the inbound proxy payload.
type DetectRequest struct {
	TransformerID    string   `json:"transformerId"`
	BaselineImage    string   `json:"baselineImage"`
	MaintenanceImage string   `json:"maintenanceImage"`
	SliderPercent    *float64 `json:"sliderPercent"`
}
