package bot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barbearia-urbana/barberbot/domain"
)

func TestServiceKeyboard(t *testing.T) {
	markup := serviceKeyboard([]domain.Service{
		{ID: "svc-1", Name: "Corte de Cabelo", Price: 30},
		{ID: "svc-2", Name: "Barba", Price: 20},
	})

	// One row per service plus the cancel row.
	require.Len(t, markup.InlineKeyboard, 3)
	assert.Equal(t, "Corte de Cabelo — R$ 30,00", markup.InlineKeyboard[0][0].Text)
	assert.Equal(t, "svc:svc-1", *markup.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "cancel", *markup.InlineKeyboard[2][0].CallbackData)
}

func TestServiceKeyboardEmptyCatalog(t *testing.T) {
	markup := serviceKeyboard(nil)
	require.Len(t, markup.InlineKeyboard, 2)
	assert.Equal(t, "action:none", *markup.InlineKeyboard[0][0].CallbackData)
}

func TestDateKeyboardStartsToday(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	markup := dateKeyboard(now)

	first := markup.InlineKeyboard[0][0]
	assert.Equal(t, "Hoje 30/08", first.Text)
	assert.Equal(t, "date:2026-08-30", *first.CallbackData)

	// Every offered date is today or later.
	for _, row := range markup.InlineKeyboard {
		for _, button := range row {
			data := *button.CallbackData
			if len(data) > 5 && data[:5] == "date:" {
				assert.GreaterOrEqual(t, data[5:], "2026-08-30")
			}
		}
	}
}

func TestTimeKeyboardMarksUnavailableSlots(t *testing.T) {
	markup := timeKeyboard([]domain.TimeSlot{
		{Time: "09:00", Available: true},
		{Time: "10:00", Available: false},
		{Time: "11:00", Available: true},
	})

	row := markup.InlineKeyboard[0]
	require.Len(t, row, 3)
	assert.Equal(t, "time:09:00", *row[0].CallbackData)
	assert.Equal(t, "✖ 10:00", row[1].Text)
	assert.Equal(t, "slot:na", *row[1].CallbackData, "unavailable slots are shown but inert")
	assert.Equal(t, "time:11:00", *row[2].CallbackData)
}

func TestTimeKeyboardEmptySlots(t *testing.T) {
	markup := timeKeyboard(nil)
	require.Len(t, markup.InlineKeyboard, 3)
	assert.Equal(t, "action:none", *markup.InlineKeyboard[0][0].CallbackData)
}
