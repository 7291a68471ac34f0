package bot

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/barbearia-urbana/barberbot/wizard"
)

func TestSubmitErrorTextInFlightStaysSilent(t *testing.T) {
	// The earlier tap is still being processed and will report the outcome;
	// a second message would just duplicate it.
	_, send := submitErrorText(wizard.ErrSubmitInFlight)
	assert.False(t, send)
}

func TestSubmitErrorTextValidation(t *testing.T) {
	text, send := submitErrorText(&wizard.ValidationError{Missing: []string{"nome", "telefone"}})
	assert.True(t, send)
	assert.Contains(t, text, "nome")
	assert.Contains(t, text, "telefone")
}

func TestSubmitErrorTextSubmissionFailure(t *testing.T) {
	text, send := submitErrorText(&wizard.SubmissionError{Err: errors.New("backend down")})
	assert.True(t, send)
	assert.Equal(t, textSubmitFailed(), text)
}
