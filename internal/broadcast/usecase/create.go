package usecase

import (
	"context"

	"broadcast-srv/internal/broadcast"
	"broadcast-srv/internal/broadcast/repository"
	"broadcast-srv/internal/model"
	pkgErrors "broadcast-srv/pkg/errors"
)

func (uc *implUseCase) validateCreate(input broadcast.CreateInput) error {
	collector := pkgErrors.NewValidationErrorCollector()

	if !model.IsValidEmergencyType(input.Type) {
		collector.Add(pkgErrors.NewValidationError(1, "type", "unknown emergency type"))
	}
	if input.Title == "" {
		collector.Add(pkgErrors.NewValidationError(2, "title", "title is required"))
	}
	if input.Message == "" {
		collector.Add(pkgErrors.NewValidationError(3, "message", "message is required"))
	}
	if len(input.Audience) == 0 {
		collector.Add(pkgErrors.NewValidationError(4, "audience", "at least one audience group is required"))
	}
	for _, a := range input.Audience {
		if !model.IsValidAudience(a) {
			collector.Add(pkgErrors.NewValidationError(5, "audience", "unknown audience value"))
			break
		}
	}
	for _, c := range input.Channels {
		if !model.IsValidChannel(c) {
			collector.Add(pkgErrors.NewValidationError(6, "channels", "unknown delivery channel"))
			break
		}
	}
	if input.Priority != nil && !model.IsValidPriority(*input.Priority) {
		collector.Add(pkgErrors.NewValidationError(7, "priority", "unknown priority"))
	}

	if collector.HasError() {
		return collector
	}
	return nil
}

func (uc *implUseCase) Create(ctx context.Context, sc model.Scope, input broadcast.CreateInput) (model.EmergencyBroadcast, error) {
	if err := uc.validateCreate(input); err != nil {
		return model.EmergencyBroadcast{}, err
	}

	now := uc.clock()

	priority := broadcast.DeterminePriority(input.Type)
	if input.Priority != nil {
		priority = *input.Priority
	}

	channels := input.Channels
	if len(channels) == 0 {
		channels = broadcast.DefaultChannels(priority)
	}

	expiresAt := broadcast.DefaultExpiration(priority, now)
	if input.ExpiresAt != nil {
		expiresAt = *input.ExpiresAt
	}

	if ok, warnings := broadcast.ValidateChannels(priority, channels); !ok {
		for _, w := range warnings {
			uc.l.Warnf(ctx, "internal.broadcast.usecase.Create: %s", w)
		}
	}

	b := model.EmergencyBroadcast{
		Type:     input.Type,
		Priority: priority,
		Title:    input.Title,
		Message:  input.Message,

		Audience:   input.Audience,
		SchoolID:   input.SchoolID,
		GradeLevel: input.GradeLevel,
		ClassID:    input.ClassID,
		GroupIDs:   input.GroupIDs,

		Channels:               channels,
		RequiresAcknowledgment: input.RequiresAcknowledgment,
		ExpiresAt:              expiresAt,
		SentBy:                 input.SentBy,
		Status:                 model.BroadcastDraft,
	}
	if b.SentBy == "" {
		b.SentBy = sc.ActorID
	}

	created, err := uc.repo.Create(ctx, sc, repository.CreateOptions{Broadcast: b})
	if err != nil {
		uc.l.Errorf(ctx, "internal.broadcast.usecase.Create.repo.Create: %v", err)
		return model.EmergencyBroadcast{}, err
	}

	uc.audit.Record(ctx, sc, "broadcast.create", created.ID,
		string(created.Type)+" broadcast drafted")

	return created, nil
}

func (uc *implUseCase) Update(ctx context.Context, sc model.Scope, id string, input broadcast.UpdateInput) (model.EmergencyBroadcast, error) {
	existing, err := uc.repo.Detail(ctx, sc, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return model.EmergencyBroadcast{}, broadcast.ErrBroadcastNotFound
		}
		uc.l.Errorf(ctx, "internal.broadcast.usecase.Update.repo.Detail: %v", err)
		return model.EmergencyBroadcast{}, err
	}

	// Content edits only make sense before dispatch.
	if existing.Status != model.BroadcastDraft {
		return model.EmergencyBroadcast{}, broadcast.ErrInvalidTransition
	}

	for _, c := range input.Channels {
		if !model.IsValidChannel(c) {
			return model.EmergencyBroadcast{},
				pkgErrors.NewValidationError(6, "channels", "unknown delivery channel")
		}
	}

	updated, err := uc.repo.Update(ctx, sc, repository.UpdateOptions{
		ID:        id,
		Title:     input.Title,
		Message:   input.Message,
		Channels:  input.Channels,
		ExpiresAt: input.ExpiresAt,
	})
	if err != nil {
		if err == repository.ErrNotFound {
			return model.EmergencyBroadcast{}, broadcast.ErrBroadcastNotFound
		}
		uc.l.Errorf(ctx, "internal.broadcast.usecase.Update.repo.Update: %v", err)
		return model.EmergencyBroadcast{}, err
	}

	uc.audit.Record(ctx, sc, "broadcast.update", updated.ID, "broadcast draft updated")

	return updated, nil
}
