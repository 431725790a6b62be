package delivery

import "broadcast-srv/internal/model"

// Stats aggregates delivery outcomes by status and channel. Pure, no I/O.
// total always equals len(outcomes); delivered + failed + pending == total
// under the status partition {DELIVERED, FAILED+BOUNCED, QUEUED}.
func Stats(outcomes []model.DeliveryOutcome) model.DeliveryStats {
	stats := model.DeliveryStats{
		Total:     len(outcomes),
		ByChannel: make(map[model.Channel]model.ChannelStats),
	}

	for _, o := range outcomes {
		ch := stats.ByChannel[o.Channel]
		switch o.Status {
		case model.DeliveryDelivered:
			stats.Delivered++
			ch.Delivered++
		case model.DeliveryFailed, model.DeliveryBounced:
			stats.Failed++
			ch.Failed++
		default:
			stats.Pending++
		}
		stats.ByChannel[o.Channel] = ch
	}

	return stats
}
