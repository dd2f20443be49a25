package annotationlogs

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
)

// csvHeader is the fixed 12-column export layout.
var csvHeader = []string{
	"ID", "Inspection ID", "Transformer ID", "Transformer Number",
	"Image ID", "Action Type", "Annotation Data", "AI Prediction",
	"User Annotation", "User ID", "Timestamp", "Notes",
}

// ExportJSON serializes the full relation-resolved log list as
// pretty-printed JSON.
func (s *Service) ExportJSON(ctx context.Context) ([]byte, error) {
	logs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(logs, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export annotation logs to JSON: %w", err)
	}
	return data, nil
}

// ExportCSV serializes the full log list with the fixed header, one row
// per entry. Text fields pass through with the writer's standard quoting.
func (s *Service) ExportCSV(ctx context.Context) ([]byte, error) {
	logs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("export annotation logs to CSV: %w", err)
	}
	for i := range logs {
		l := &logs[i]
		aiPrediction := ""
		if l.AIPrediction != nil {
			aiPrediction = *l.AIPrediction
		}
		row := []string{
			strconv.FormatUint(uint64(l.ID), 10),
			strconv.FormatUint(uint64(l.InspectionID), 10),
			strconv.FormatUint(uint64(l.TransformerID), 10),
			l.TransformerNumber,
			l.ImageID,
			string(l.ActionType),
			l.AnnotationData,
			aiPrediction,
			l.UserAnnotation,
			l.UserID,
			l.Timestamp,
			l.Notes,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("export annotation logs to CSV: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("export annotation logs to CSV: %w", err)
	}
	return buf.Bytes(), nil
}
