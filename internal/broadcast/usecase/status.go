package usecase

import (
	"context"

	"broadcast-srv/internal/broadcast"
	"broadcast-srv/internal/broadcast/repository"
	"broadcast-srv/internal/delivery"
	"broadcast-srv/internal/model"
)

const recentDeliveriesLimit = 20

func (uc *implUseCase) Status(ctx context.Context, sc model.Scope, id string) (broadcast.StatusOutput, error) {
	b, err := uc.repo.Detail(ctx, sc, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return broadcast.StatusOutput{}, broadcast.ErrBroadcastNotFound
		}
		uc.l.Errorf(ctx, "internal.broadcast.usecase.Status.repo.Detail: %v", err)
		return broadcast.StatusOutput{}, err
	}

	recent := uc.recent.Get(id, recentDeliveriesLimit)

	var stats model.DeliveryStats
	if all := uc.recent.Get(id, 0); len(all) > 0 {
		stats = delivery.Stats(all)
	} else {
		// Outcomes did not survive a restart; fall back to the durable
		// aggregate counters. Pending is reported as-is, without clamping,
		// so a counter bug surfaces instead of hiding.
		stats = model.DeliveryStats{
			Total:     b.TotalRecipients,
			Delivered: b.DeliveredCount,
			Failed:    b.FailedCount,
			Pending:   b.TotalRecipients - b.DeliveredCount - b.FailedCount,
			ByChannel: map[model.Channel]model.ChannelStats{},
		}
	}

	return broadcast.StatusOutput{
		Broadcast:        b,
		Stats:            stats,
		RecentDeliveries: recent,
	}, nil
}

func (uc *implUseCase) List(ctx context.Context, sc model.Scope, input broadcast.ListInput) (broadcast.ListOutput, error) {
	broadcasts, pag, err := uc.repo.Get(ctx, sc, repository.GetOptions{
		Filter: repository.Filter{
			Statuses: input.Filter.Statuses,
			Types:    input.Filter.Types,
			SchoolID: input.Filter.SchoolID,
		},
		PaginateQuery: input.PaginateQuery,
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.broadcast.usecase.List.repo.Get: %v", err)
		return broadcast.ListOutput{}, err
	}

	return broadcast.ListOutput{
		Broadcasts: broadcasts,
		Paginator:  pag,
	}, nil
}
