package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskLedgerIntegrity sweeps the ledger and verifies the trial balance.
	TaskLedgerIntegrity = "ledger:integrity"
)

// LedgerIntegrityPayload bounds an integrity sweep. An empty AsOf means the
// sweep runs up to the current day.
type LedgerIntegrityPayload struct {
	AsOf string `json:"as_of,omitempty"`
}

// NewLedgerIntegrityTask constructs the integrity sweep task.
func NewLedgerIntegrityTask(payload LedgerIntegrityPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLedgerIntegrity, data), nil
}
