package queue

import (
	"encoding/json"

	"github.com/friendsofgo/errors"
	"github.com/hibiken/asynq"
)

// TaskTypeSendBroadcast is the asynq task type for dispatching a broadcast.
const TaskTypeSendBroadcast = "broadcast:send"

// SendBroadcastPayload is the serialized payload for a send task. Only the
// broadcast ID travels on the queue; the worker reloads state from Postgres.
type SendBroadcastPayload struct {
	BroadcastID string `json:"broadcast_id"`
	ActorID     string `json:"actor_id"`
	ActorRole   string `json:"actor_role"`
}

// NewSendBroadcastTask builds an asynq task for dispatching a broadcast.
func NewSendBroadcastTask(p SendBroadcastPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling task payload")
	}
	return asynq.NewTask(TaskTypeSendBroadcast, payload), nil
}

// ParseSendBroadcastPayload deserializes the task payload.
func ParseSendBroadcastPayload(data []byte) (*SendBroadcastPayload, error) {
	var p SendBroadcastPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrap(err, "unmarshaling task payload")
	}
	return &p, nil
}
