package maintenance

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thermowatch/go-thermal-backend/internal/domain"
)

func TestExportPDF(t *testing.T) {
	svc, db := newServiceWithDB(t)
	ctx := context.Background()
	transformer := seedTransformer(t, db, "Galle")

	created, err := svc.Create(ctx, &CreateRequest{
		TransformerID:     transformer.ID,
		EngineerName:      "N. Perera",
		Status:            string(domain.StatusNeedsMaintenance),
		Readings:          `{"voltage":"33kV","oilTemp":"61C"}`,
		RecommendedAction: "Replace bushing gasket",
		Notes:             "Thermal image shows hotspot near HV bushing",
	})
	require.NoError(t, err)

	data, err := svc.ExportPDF(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "output is a PDF document")
	assert.Greater(t, len(data), 1000)
}

func TestExportPDFWithoutOptionalSections(t *testing.T) {
	svc, db := newServiceWithDB(t)
	ctx := context.Background()
	transformer := seedTransformer(t, db, "")

	created, err := svc.Create(ctx, &CreateRequest{TransformerID: transformer.ID})
	require.NoError(t, err)

	full, err := svc.ExportPDF(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(full, []byte("%PDF")))
}

func TestExportPDFUnknownRecord(t *testing.T) {
	svc, _ := newServiceWithDB(t)

	_, err := svc.ExportPDF(context.Background(), 9999)
	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
}
