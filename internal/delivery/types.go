package delivery

import "broadcast-srv/internal/model"

// DeliverInput is the work order for one fan-out run.
type DeliverInput struct {
	BroadcastID string
	Recipients  []model.Recipient
	Channels    []model.Channel
	Title       string
	Content     string
}

// SendRequest is one formatted payload bound for one recipient over one
// channel.
type SendRequest struct {
	BroadcastID string
	Channel     model.Channel
	Recipient   model.Recipient
	Title       string
	Payload     string
}
