package usecase

import (
	"context"

	"broadcast-srv/internal/model"
	"broadcast-srv/internal/recipient"
	"broadcast-srv/internal/recipient/repository"

	"github.com/friendsofgo/errors"
)

type listFunc func(ctx context.Context, sc model.Scope, opts repository.ListOptions) ([]model.Recipient, error)

// Resolve flattens the broadcast's audience values into a deduplicated
// recipient list. Directory errors are returned to the caller: the
// orchestrator treats them as fatal for the send.
func (r *implResolver) Resolve(ctx context.Context, sc model.Scope, b model.EmergencyBroadcast) ([]model.Recipient, error) {
	seen := make(map[string]struct{})
	var out []model.Recipient

	collect := func(list listFunc, opts repository.ListOptions) error {
		opts.Limit = batchSize
		for {
			page, err := list(ctx, sc, opts)
			if err != nil {
				return err
			}
			for _, rec := range page {
				if _, dup := seen[rec.ID]; dup {
					continue
				}
				seen[rec.ID] = struct{}{}
				out = append(out, rec)
			}
			if len(page) < batchSize {
				return nil
			}
			opts.Offset += batchSize
		}
	}

	base := repository.ListOptions{}
	if b.SchoolID != nil {
		base.SchoolID = *b.SchoolID
	}

	for _, audience := range b.Audience {
		opts := base
		var err error

		switch audience {
		case model.AudienceAllStudents:
			err = collect(r.repo.ListStudents, opts)
		case model.AudienceAllParents:
			err = collect(r.repo.ListGuardians, opts)
		case model.AudienceAllStaff:
			err = collect(r.repo.ListStaff, opts)
		case model.AudienceSpecificGrade:
			opts.GradeLevel = b.GradeLevel
			err = collect(r.repo.ListGuardians, opts)
		case model.AudienceSpecificClass:
			if b.ClassID != nil {
				opts.ClassID = *b.ClassID
			}
			err = collect(r.repo.ListGuardians, opts)
		case model.AudienceSpecificGroups:
			opts.GroupIDs = b.GroupIDs
			if err = collect(r.repo.ListGuardians, opts); err == nil {
				err = collect(r.repo.ListStaff, opts)
			}
		case model.AudienceEmergencyContacts:
			opts.EmergencyOnly = true
			err = collect(r.repo.ListGuardians, opts)
		default:
			r.l.Warnf(ctx, "internal.recipient.usecase.Resolve: unknown audience %q on broadcast %s", audience, b.ID)
			continue
		}

		if err != nil {
			r.l.Errorf(ctx, "internal.recipient.usecase.Resolve.%s: %v", audience, err)
			return nil, errors.Wrap(recipient.ErrDirectoryUnavailable, err.Error())
		}
	}

	return out, nil
}
