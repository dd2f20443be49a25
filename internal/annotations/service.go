// Package annotations implements the annotation read API and the batch
// reconciler that maintains the append-only annotation audit log.
package annotations

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/thermowatch/go-thermal-backend/internal/domain"
	"github.com/thermowatch/go-thermal-backend/internal/storage"
)

// Item is one incoming annotation in a batch. X/Y/W/H are pointers so
// that zero coordinates survive required-field validation.
type Item struct {
	AnnotationID   string   `json:"annotationId" binding:"required"`
	X              *float64 `json:"x" binding:"required"`
	Y              *float64 `json:"y" binding:"required"`
	W              *float64 `json:"w" binding:"required"`
	H              *float64 `json:"h" binding:"required"`
	Confidence     *float64 `json:"confidence"`
	Severity       string   `json:"severity"`
	Classification string   `json:"classification"`
	Comment        string   `json:"comment"`
	Source         string   `json:"source" binding:"required,oneof=ai user"`
	Deleted        *bool    `json:"deleted"`
	UserID         string   `json:"userId"`
}

// SaveRequest is the reconcile payload for one inspection.
type SaveRequest struct {
	Annotations    []Item  `json:"annotations" binding:"required,dive"`
	AnnotatedImage *string `json:"annotatedImage"`
	UserID         string  `json:"userId"`
}

// Response is the annotation view returned by the API. Its JSON encoding
// is also the snapshot format written to the audit log.
type Response struct {
	ID             uint                    `json:"id"`
	InspectionID   uint                    `json:"inspectionId"`
	AnnotationID   string                  `json:"annotationId"`
	X              float64                 `json:"x"`
	Y              float64                 `json:"y"`
	W              float64                 `json:"w"`
	H              float64                 `json:"h"`
	Confidence     *float64                `json:"confidence"`
	Severity       string                  `json:"severity"`
	Classification string                  `json:"classification"`
	Comment        string                  `json:"comment"`
	Source         domain.AnnotationSource `json:"source"`
	Deleted        bool                    `json:"deleted"`
	UserID         string                  `json:"userId"`
	CreatedAt      string                  `json:"createdAt"`
	UpdatedAt      string                  `json:"updatedAt"`
}

// Service reconciles incoming annotation batches against the stored set.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ListByInspection returns the inspection's annotations, excluding
// soft-deleted rows. The inspection must exist.
func (s *Service) ListByInspection(ctx context.Context, inspectionID uint) ([]Response, error) {
	if _, err := storage.NewInspectionRepository(s.db).GetByID(ctx, inspectionID); err != nil {
		return nil, err
	}
	rows, err := storage.NewAnnotationRepository(s.db).ListActive(ctx, inspectionID)
	if err != nil {
		return nil, err
	}
	out := make([]Response, 0, len(rows))
	for i := range rows {
		out = append(out, mapToResponse(&rows[i]))
	}
	return out, nil
}

// Save reconciles the incoming batch against the inspection's current
// working set (soft-deleted rows included):
//
//   - a matching annotationId is overwritten in place and logged as
//     "deleted" or "edited", with the pre-update state captured;
//   - an unmatched annotationId becomes a new row and is logged as
//     "ai_generated" or "added" depending on its source — even when its
//     deleted flag is set, so a "delete" of an unknown id creates a
//     soft-deleted row rather than short-circuiting;
//   - stored annotations the batch never mentions are left untouched.
//
// Exactly one log row is appended per batch item, in batch order. The
// whole batch commits in a single transaction. The returned slice holds
// every touched annotation whose final deleted flag is false.
func (s *Service) Save(ctx context.Context, inspectionID uint, req *SaveRequest) ([]Response, error) {
	var saved []Response

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inspRepo := storage.NewInspectionRepository(tx)
		annRepo := storage.NewAnnotationRepository(tx)
		logRepo := storage.NewAnnotationLogRepository(tx)

		insp, err := inspRepo.GetByID(ctx, inspectionID)
		if err != nil {
			return err
		}

		now := time.Now().Format(domain.TimestampLayout)
		userID := req.UserID
		if userID == "" {
			userID = domain.DefaultUserID
		}

		rows, err := annRepo.ListAll(ctx, inspectionID)
		if err != nil {
			return err
		}
		existing := make(map[string]*domain.Annotation, len(rows))
		for i := range rows {
			existing[rows[i].AnnotationID] = &rows[i]
		}

		touched := make([]*domain.Annotation, 0, len(req.Annotations))

		for i := range req.Annotations {
			item := &req.Annotations[i]

			var (
				ann        *domain.Annotation
				actionType domain.ActionType
				preState   *string
			)

			if prev, ok := existing[item.AnnotationID]; ok {
				snapshot := serialize(prev)
				preState = &snapshot

				if item.Deleted != nil && *item.Deleted {
					actionType = domain.ActionDeleted
				} else {
					actionType = domain.ActionEdited
				}

				applyItem(prev, item, now)
				delete(existing, item.AnnotationID)
				ann = prev
			} else {
				ann = newAnnotation(inspectionID, item, now, userID)
				if domain.AnnotationSource(item.Source) == domain.SourceAI {
					actionType = domain.ActionAIGenerated
				} else {
					actionType = domain.ActionAdded
				}
			}

			if err := annRepo.Save(ctx, ann); err != nil {
				return err
			}

			postState := serialize(ann)
			entry := &domain.AnnotationLog{
				InspectionID:   insp.ID,
				TransformerID:  insp.TransformerID,
				ImageID:        insp.MaintenanceImage,
				ActionType:     actionType,
				AnnotationData: postState,
				AIPrediction:   preState,
				UserAnnotation: postState,
				UserID:         userID,
				Timestamp:      now,
			}
			if err := logRepo.Append(ctx, entry); err != nil {
				return err
			}

			touched = append(touched, ann)
		}

		if req.AnnotatedImage != nil {
			if err := inspRepo.UpdateAnnotatedImage(ctx, inspectionID, *req.AnnotatedImage); err != nil {
				return err
			}
		}

		saved = make([]Response, 0, len(touched))
		for _, ann := range touched {
			if ann.Deleted {
				continue
			}
			saved = append(saved, mapToResponse(ann))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[info] operation=save_annotations inspection_id=%d count=%d", inspectionID, len(req.Annotations))
	return saved, nil
}

func newAnnotation(inspectionID uint, item *Item, now, userID string) *domain.Annotation {
	return &domain.Annotation{
		InspectionID:   inspectionID,
		AnnotationID:   item.AnnotationID,
		X:              *item.X,
		Y:              *item.Y,
		W:              *item.W,
		H:              *item.H,
		Confidence:     item.Confidence,
		Severity:       item.Severity,
		Classification: item.Classification,
		Comment:        item.Comment,
		Source:         domain.AnnotationSource(item.Source),
		Deleted:        item.Deleted != nil && *item.Deleted,
		UserID:         userID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// applyItem overwrites the mutable fields of an existing annotation.
// Source, UserID and CreatedAt are immutable after creation.
func applyItem(ann *domain.Annotation, item *Item, now string) {
	ann.X = *item.X
	ann.Y = *item.Y
	ann.W = *item.W
	ann.H = *item.H
	ann.Confidence = item.Confidence
	ann.Severity = item.Severity
	ann.Classification = item.Classification
	ann.Comment = item.Comment
	ann.Deleted = item.Deleted != nil && *item.Deleted
	ann.UpdatedAt = now
}

func serialize(ann *domain.Annotation) string {
	resp := mapToResponse(ann)
	data, err := json.Marshal(resp)
	if err != nil {
		log.Printf("[error] operation=serialize_annotation annotation_id=%s error=%v", ann.AnnotationID, err)
		return "{}"
	}
	return string(data)
}

func mapToResponse(ann *domain.Annotation) Response {
	return Response{
		ID:             ann.ID,
		InspectionID:   ann.InspectionID,
		AnnotationID:   ann.AnnotationID,
		X:              ann.X,
		Y:              ann.Y,
		W:              ann.W,
		H:              ann.H,
		Confidence:     ann.Confidence,
		Severity:       ann.Severity,
		Classification: ann.Classification,
		Comment:        ann.Comment,
		Source:         ann.Source,
		Deleted:        ann.Deleted,
		UserID:         ann.UserID,
		CreatedAt:      ann.CreatedAt,
		UpdatedAt:      ann.UpdatedAt,
	}
}
