package bot

import (
	"time"

	"github.com/barbearia-urbana/barberbot/wizard"
)

// inputStage routes the next free-text message into the right client detail
// field. This is presentation state only; the wizard's derived step stays
// authoritative for what is unlocked.
type inputStage int

const (
	inputNone inputStage = iota
	inputName
	inputPhone
	inputEmail
)

// chatSession pairs one chat's wizard session with its UI input stage.
type chatSession struct {
	wiz        *wizard.Session
	input      inputStage
	lastActive time.Time
}
