package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barbearia-urbana/barberbot/domain"
)

func TestStepDerivation(t *testing.T) {
	s := NewSelection("2026-08-30")
	assert.Equal(t, StepSelectingService, s.Step())

	s = Reduce(s, ServiceSelected{Service: testService})
	assert.Equal(t, StepSelectingTime, s.Step())

	s = Reduce(s, TimeSelected{Slot: domain.TimeSlot{Time: "10:00", Available: true}})
	assert.Equal(t, StepEnteringDetails, s.Step())

	s = Reduce(s, NameEntered{Name: "João"})
	assert.Equal(t, StepEnteringDetails, s.Step())

	s = Reduce(s, PhoneEntered{Phone: "11999990000"})
	assert.Equal(t, StepReadyToSubmit, s.Step())
}

func TestStepFollowsFieldChanges(t *testing.T) {
	s := NewSelection("2026-08-30")
	s = Reduce(s, ServiceSelected{Service: testService})
	s = Reduce(s, TimeSelected{Slot: domain.TimeSlot{Time: "10:00", Available: true}})
	s = Reduce(s, NameEntered{Name: "João"})
	s = Reduce(s, PhoneEntered{Phone: "11999990000"})
	require.Equal(t, StepReadyToSubmit, s.Step())

	// Losing the time (slot vanished) moves the step back, nothing else lost.
	s = Reduce(s, SlotsReplaced{Slots: nil})
	assert.Equal(t, StepSelectingTime, s.Step())
	assert.Equal(t, "João", s.Client.Name)
}

func TestValidateReportsAllMissingFields(t *testing.T) {
	s := Selection{}
	verr := s.Validate()
	require.NotNil(t, verr)
	assert.ElementsMatch(t, []string{"serviço", "data", "horário", "nome", "telefone"}, verr.Missing)
}

func TestValidateWhitespaceOnlyDetailsAreMissing(t *testing.T) {
	s := NewSelection("2026-08-30")
	s = Reduce(s, ServiceSelected{Service: testService})
	s = Reduce(s, TimeSelected{Slot: domain.TimeSlot{Time: "10:00", Available: true}})
	s.Client.Name = "   "
	s.Client.Phone = "\t"

	verr := s.Validate()
	require.NotNil(t, verr)
	assert.ElementsMatch(t, []string{"nome", "telefone"}, verr.Missing)
}

func TestValidateCompleteSelection(t *testing.T) {
	s := NewSelection("2026-08-30")
	s = Reduce(s, ServiceSelected{Service: testService})
	s = Reduce(s, TimeSelected{Slot: domain.TimeSlot{Time: "10:00", Available: true}})
	s = Reduce(s, NameEntered{Name: "João"})
	s = Reduce(s, PhoneEntered{Phone: "11999990000"})

	assert.Nil(t, s.Validate(), "e-mail is optional")
}
