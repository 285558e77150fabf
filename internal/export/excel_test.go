package export

import (
	"testing"
	"time"

	"renthub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingsWorkbook(t *testing.T) {
	start := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	views := []*models.BookingView{
		{
			ID:     1,
			Start:  start,
			End:    start.Add(48 * time.Hour),
			Status: models.StatusApproved,
			Booker: models.BookerView{ID: 2},
			Item:   models.ItemSummary{ID: 10, Name: "Drill"},
		},
	}

	f, err := BookingsWorkbook(views)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	require.Equal(t, []string{"Bookings"}, sheets)

	header, err := f.GetCellValue("Bookings", "A1")
	require.NoError(t, err)
	assert.Equal(t, "ID", header)

	name, err := f.GetCellValue("Bookings", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Drill", name)

	status, err := f.GetCellValue("Bookings", "F2")
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, status)
}

func TestBookingsWorkbook_Empty(t *testing.T) {
	f, err := BookingsWorkbook(nil)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Bookings")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
