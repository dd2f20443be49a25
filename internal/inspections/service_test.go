package inspections

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/thermowatch/go-thermal-backend/internal/domain"
	"github.com/thermowatch/go-thermal-backend/internal/storage"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:test-%s?mode=memory&cache=shared", uuid.NewString())
	db, err := storage.Open(storage.Options{Driver: "sqlite", DSN: dsn})
	require.NoError(t, err)
	return NewService(storage.NewInspectionRepository(db), storage.NewTransformerRepository(db)), db
}

func seedTransformer(t *testing.T, db *gorm.DB, number string) *domain.Transformer {
	t.Helper()
	transformer := &domain.Transformer{Number: number, Location: "Colombo"}
	require.NoError(t, db.Create(transformer).Error)
	return transformer
}

func strPtr(s string) *string { return &s }

func TestCreateDefaultsStatusToPending(t *testing.T) {
	svc, db := newTestService(t)
	transformer := seedTransformer(t, db, "TX-100")

	created, err := svc.Create(context.Background(), &CreateRequest{
		TransformerID: transformer.ID,
		Inspector:     "N. Perera",
		Date:          "2026-08-30T10:00:00",
	})
	require.NoError(t, err)

	assert.Equal(t, "Pending", created.Status)
	assert.Equal(t, "TX-100", created.TransformerNumber)
	assert.Equal(t, transformer.ID, created.TransformerID)
}

func TestCreateKeepsExplicitStatus(t *testing.T) {
	svc, db := newTestService(t)
	transformer := seedTransformer(t, db, "TX-101")

	created, err := svc.Create(context.Background(), &CreateRequest{
		TransformerID: transformer.ID,
		Status:        "In Progress",
	})
	require.NoError(t, err)
	assert.Equal(t, "In Progress", created.Status)
}

func TestCreateUnknownTransformer(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), &CreateRequest{TransformerID: 9999})

	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Transformer", notFound.Resource)
}

func TestUpdatePartialKeepsOtherFields(t *testing.T) {
	svc, db := newTestService(t)
	transformer := seedTransformer(t, db, "TX-102")
	created, err := svc.Create(context.Background(), &CreateRequest{
		TransformerID: transformer.ID,
		Inspector:     "N. Perera",
		Notes:         "initial sweep",
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, &UpdateRequest{
		Status: strPtr("Completed"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Completed", updated.Status)
	assert.Equal(t, "N. Perera", updated.Inspector)
	assert.Equal(t, "initial sweep", updated.Notes)
}

func TestUpdateReparentsToAnotherTransformer(t *testing.T) {
	svc, db := newTestService(t)
	first := seedTransformer(t, db, "TX-103")
	second := seedTransformer(t, db, "TX-104")
	created, err := svc.Create(context.Background(), &CreateRequest{TransformerID: first.ID})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, &UpdateRequest{
		TransformerID: &second.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, second.ID, updated.TransformerID)
	assert.Equal(t, "TX-104", updated.TransformerNumber)
}

func TestUpdateReparentToUnknownTransformer(t *testing.T) {
	svc, db := newTestService(t)
	transformer := seedTransformer(t, db, "TX-105")
	created, err := svc.Create(context.Background(), &CreateRequest{TransformerID: transformer.ID})
	require.NoError(t, err)

	unknown := uint(9999)
	_, err = svc.Update(context.Background(), created.ID, &UpdateRequest{TransformerID: &unknown})

	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestListByTransformerNewestFirst(t *testing.T) {
	svc, db := newTestService(t)
	transformer := seedTransformer(t, db, "TX-106")
	other := seedTransformer(t, db, "TX-107")

	for _, date := range []string{"2026-08-01T09:00:00", "2026-08-15T09:00:00", "2026-08-10T09:00:00"} {
		_, err := svc.Create(context.Background(), &CreateRequest{TransformerID: transformer.ID, Date: date})
		require.NoError(t, err)
	}
	_, err := svc.Create(context.Background(), &CreateRequest{TransformerID: other.ID, Date: "2026-08-20T09:00:00"})
	require.NoError(t, err)

	listed, err := svc.ListByTransformer(context.Background(), transformer.ID)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, "2026-08-15T09:00:00", listed[0].Date)
	assert.Equal(t, "2026-08-10T09:00:00", listed[1].Date)
	assert.Equal(t, "2026-08-01T09:00:00", listed[2].Date)
}

func TestDeleteRemovesChildren(t *testing.T) {
	svc, db := newTestService(t)
	transformer := seedTransformer(t, db, "TX-108")
	created, err := svc.Create(context.Background(), &CreateRequest{TransformerID: transformer.ID})
	require.NoError(t, err)

	annotation := &domain.Annotation{
		InspectionID: created.ID,
		AnnotationID: "u_1",
		Source:       domain.SourceUser,
		UserID:       domain.DefaultUserID,
	}
	require.NoError(t, db.Create(annotation).Error)

	require.NoError(t, svc.Delete(context.Background(), created.ID))

	var annotationCount int64
	require.NoError(t, db.Model(&domain.Annotation{}).Where("inspection_id = ?", created.ID).Count(&annotationCount).Error)
	assert.Zero(t, annotationCount)

	_, err = svc.Get(context.Background(), created.ID)
	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestDeleteUnknown(t *testing.T) {
	svc, _ := newTestService(t)
	err := svc.Delete(context.Background(), 9999)

	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
}
