package annotations

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/thermowatch/go-thermal-backend/internal/domain"
	"github.com/thermowatch/go-thermal-backend/internal/storage"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:test-%s?mode=memory&cache=shared", uuid.NewString())
	db, err := storage.Open(storage.Options{Driver: "sqlite", DSN: dsn})
	require.NoError(t, err)
	return db
}

func seedInspection(t *testing.T, db *gorm.DB) *domain.Inspection {
	t.Helper()
	transformer := &domain.Transformer{Number: "TX-" + uuid.NewString()[:8], Location: "Colombo"}
	require.NoError(t, db.Create(transformer).Error)

	insp := &domain.Inspection{
		TransformerID:    transformer.ID,
		Status:           "Pending",
		MaintenanceImage: "img-ref-1",
	}
	require.NoError(t, db.Create(insp).Error)
	return insp
}

func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }

func item(id, source string) Item {
	return Item{
		AnnotationID: id,
		X:            floatPtr(1),
		Y:            floatPtr(2),
		W:            floatPtr(3),
		H:            floatPtr(4),
		Source:       source,
	}
}

func logsFor(t *testing.T, db *gorm.DB, inspectionID uint) []domain.AnnotationLog {
	t.Helper()
	logs, err := storage.NewAnnotationLogRepository(db).ListByInspection(context.Background(), inspectionID)
	require.NoError(t, err)
	return logs
}

func TestSaveNewAIAnnotation(t *testing.T) {
	db := newTestDB(t)
	insp := seedInspection(t, db)
	svc := NewService(db)

	saved, err := svc.Save(context.Background(), insp.ID, &SaveRequest{
		Annotations: []Item{item("ai_1", "ai")},
	})
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "ai_1", saved[0].AnnotationID)
	assert.Equal(t, domain.SourceAI, saved[0].Source)
	assert.Equal(t, domain.DefaultUserID, saved[0].UserID)
	assert.NotEmpty(t, saved[0].CreatedAt)
	assert.Equal(t, saved[0].CreatedAt, saved[0].UpdatedAt)

	logs := logsFor(t, db, insp.ID)
	require.Len(t, logs, 1)
	assert.Equal(t, domain.ActionAIGenerated, logs[0].ActionType)
	assert.Nil(t, logs[0].AIPrediction)
	assert.Equal(t, "img-ref-1", logs[0].ImageID)
	assert.Equal(t, insp.TransformerID, logs[0].TransformerID)
}

func TestSaveNewUserAnnotationLoggedAsAdded(t *testing.T) {
	db := newTestDB(t)
	insp := seedInspection(t, db)
	svc := NewService(db)

	it := item("user_7", "user")
	it.UserID = "engineer-2"

	saved, err := svc.Save(context.Background(), insp.ID, &SaveRequest{
		Annotations: []Item{it},
		UserID:      "engineer-2",
	})
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "engineer-2", saved[0].UserID)

	logs := logsFor(t, db, insp.ID)
	require.Len(t, logs, 1)
	assert.Equal(t, domain.ActionAdded, logs[0].ActionType)
	assert.Equal(t, "engineer-2", logs[0].UserID)
}

func TestSaveEditCapturesPreState(t *testing.T) {
	db := newTestDB(t)
	insp := seedInspection(t, db)
	svc := NewService(db)
	ctx := context.Background()

	_, err := svc.Save(ctx, insp.ID, &SaveRequest{Annotations: []Item{item("ai_1", "ai")}})
	require.NoError(t, err)

	edited := item("ai_1", "ai")
	edited.X = floatPtr(10)
	edited.Comment = "hotspot moved"

	saved, err := svc.Save(ctx, insp.ID, &SaveRequest{Annotations: []Item{edited}})
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, 10.0, saved[0].X)
	assert.Equal(t, "hotspot moved", saved[0].Comment)

	logs := logsFor(t, db, insp.ID)
	require.Len(t, logs, 2)
	assert.Equal(t, domain.ActionEdited, logs[1].ActionType)
	require.NotNil(t, logs[1].AIPrediction)

	var pre Response
	require.NoError(t, json.Unmarshal([]byte(*logs[1].AIPrediction), &pre))
	assert.Equal(t, 1.0, pre.X)
	assert.Empty(t, pre.Comment)

	var post Response
	require.NoError(t, json.Unmarshal([]byte(logs[1].AnnotationData), &post))
	assert.Equal(t, 10.0, post.X)
}

func TestSaveIdenticalResubmitStillLogsEdited(t *testing.T) {
	db := newTestDB(t)
	insp := seedInspection(t, db)
	svc := NewService(db)
	ctx := context.Background()

	_, err := svc.Save(ctx, insp.ID, &SaveRequest{Annotations: []Item{item("ai_1", "ai")}})
	require.NoError(t, err)

	// No-op edits are not suppressed: every batch item logs.
	for i := 0; i < 2; i++ {
		_, err = svc.Save(ctx, insp.ID, &SaveRequest{Annotations: []Item{item("ai_1", "ai")}})
		require.NoError(t, err)
	}

	logs := logsFor(t, db, insp.ID)
	require.Len(t, logs, 3)
	assert.Equal(t, domain.ActionAIGenerated, logs[0].ActionType)
	assert.Equal(t, domain.ActionEdited, logs[1].ActionType)
	assert.Equal(t, domain.ActionEdited, logs[2].ActionType)
}

func TestSaveDeleteFlagSoftDeletes(t *testing.T) {
	db := newTestDB(t)
	insp := seedInspection(t, db)
	svc := NewService(db)
	ctx := context.Background()

	_, err := svc.Save(ctx, insp.ID, &SaveRequest{Annotations: []Item{item("ai_1", "ai")}})
	require.NoError(t, err)

	deleted := item("ai_1", "ai")
	deleted.Deleted = boolPtr(true)

	saved, err := svc.Save(ctx, insp.ID, &SaveRequest{Annotations: []Item{deleted}})
	require.NoError(t, err)
	assert.Empty(t, saved, "soft-deleted annotations are omitted from the response")

	logs := logsFor(t, db, insp.ID)
	require.Len(t, logs, 2)
	assert.Equal(t, domain.ActionDeleted, logs[1].ActionType)
	assert.NotNil(t, logs[1].AIPrediction)

	// Hidden from the read API but still present in the store.
	visible, err := svc.ListByInspection(ctx, insp.ID)
	require.NoError(t, err)
	assert.Empty(t, visible)

	all, err := storage.NewAnnotationRepository(db).ListAll(ctx, insp.ID)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].Deleted)
}

func TestSaveUnknownIDWithDeleteFlagCreates(t *testing.T) {
	db := newTestDB(t)
	insp := seedInspection(t, db)
	svc := NewService(db)
	ctx := context.Background()

	// A "delete" of an id the store has never seen does not short-circuit:
	// it creates a soft-deleted row, and the log row is classified by
	// source, not as a delete.
	ghost := item("user_ghost", "user")
	ghost.Deleted = boolPtr(true)

	saved, err := svc.Save(ctx, insp.ID, &SaveRequest{Annotations: []Item{ghost}})
	require.NoError(t, err)
	assert.Empty(t, saved)

	logs := logsFor(t, db, insp.ID)
	require.Len(t, logs, 1)
	assert.Equal(t, domain.ActionAdded, logs[0].ActionType)
	assert.Nil(t, logs[0].AIPrediction)

	all, err := storage.NewAnnotationRepository(db).ListAll(ctx, insp.ID)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].Deleted)
}

func TestSaveOneLogPerItemInBatchOrder(t *testing.T) {
	db := newTestDB(t)
	insp := seedInspection(t, db)
	svc := NewService(db)
	ctx := context.Background()

	_, err := svc.Save(ctx, insp.ID, &SaveRequest{Annotations: []Item{item("ai_1", "ai")}})
	require.NoError(t, err)

	edited := item("ai_1", "ai")
	edited.Severity = "high"
	removed := item("ai_1_gone", "ai")
	removed.Deleted = boolPtr(true)

	_, err = svc.Save(ctx, insp.ID, &SaveRequest{
		Annotations: []Item{item("user_2", "user"), edited, item("ai_3", "ai"), removed},
	})
	require.NoError(t, err)

	logs := logsFor(t, db, insp.ID)
	require.Len(t, logs, 5)
	want := []domain.ActionType{
		domain.ActionAIGenerated,
		domain.ActionAdded,
		domain.ActionEdited,
		domain.ActionAIGenerated,
		domain.ActionAIGenerated, // unknown id + delete flag, classified by source
	}
	for i, action := range want {
		assert.Equalf(t, action, logs[i].ActionType, "log %d", i)
	}
}

func TestSaveLeavesUnmentionedAnnotationsUntouched(t *testing.T) {
	db := newTestDB(t)
	insp := seedInspection(t, db)
	svc := NewService(db)
	ctx := context.Background()

	_, err := svc.Save(ctx, insp.ID, &SaveRequest{
		Annotations: []Item{item("ai_1", "ai"), item("ai_2", "ai")},
	})
	require.NoError(t, err)

	// A later batch that only mentions ai_1 must not log or mutate ai_2.
	_, err = svc.Save(ctx, insp.ID, &SaveRequest{Annotations: []Item{item("ai_1", "ai")}})
	require.NoError(t, err)

	logs := logsFor(t, db, insp.ID)
	assert.Len(t, logs, 3)

	visible, err := svc.ListByInspection(ctx, insp.ID)
	require.NoError(t, err)
	assert.Len(t, visible, 2)
}

func TestSaveOverwritesAnnotatedImage(t *testing.T) {
	db := newTestDB(t)
	insp := seedInspection(t, db)
	svc := NewService(db)
	ctx := context.Background()

	image := "data:image/png;base64,QUJD"
	_, err := svc.Save(ctx, insp.ID, &SaveRequest{
		Annotations:    []Item{item("ai_1", "ai")},
		AnnotatedImage: &image,
	})
	require.NoError(t, err)

	stored, err := storage.NewInspectionRepository(db).GetByID(ctx, insp.ID)
	require.NoError(t, err)
	assert.Equal(t, image, stored.AnnotatedImage)

	// Absent snapshot leaves the stored image alone.
	_, err = svc.Save(ctx, insp.ID, &SaveRequest{Annotations: []Item{item("ai_1", "ai")}})
	require.NoError(t, err)

	stored, err = storage.NewInspectionRepository(db).GetByID(ctx, insp.ID)
	require.NoError(t, err)
	assert.Equal(t, image, stored.AnnotatedImage)
}

func TestSaveUnknownInspection(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	_, err := svc.Save(context.Background(), 9999, &SaveRequest{Annotations: []Item{item("ai_1", "ai")}})
	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Inspection", notFound.Resource)
}

func TestListByInspectionUnknownInspection(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	_, err := svc.ListByInspection(context.Background(), 9999)
	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
}
