package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"broadcast-srv/internal/broadcast/repository"
	"broadcast-srv/internal/model"
	"broadcast-srv/pkg/paginator"
	postgresPkg "broadcast-srv/pkg/postgre"

	"github.com/friendsofgo/errors"
	"github.com/lib/pq"
)

func (r *implRepository) scanBroadcast(row interface {
	Scan(dest ...interface{}) error
}) (model.EmergencyBroadcast, error) {
	var (
		b            model.EmergencyBroadcast
		audience     []string
		groupIDs     []string
		channels     []string
		schoolID     sql.NullString
		gradeLevel   sql.NullInt64
		classID      sql.NullString
		cancelReason sql.NullString
		sentAt       sql.NullTime
	)

	err := row.Scan(
		&b.ID, &b.Type, &b.Priority, &b.Title, &b.Message,
		pq.Array(&audience), &schoolID, &gradeLevel, &classID, pq.Array(&groupIDs),
		pq.Array(&channels), &b.RequiresAcknowledgment, &b.ExpiresAt, &b.SentBy, &b.Status,
		&b.TotalRecipients, &b.DeliveredCount, &b.FailedCount, &b.AcknowledgedCount,
		&cancelReason, &sentAt, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return model.EmergencyBroadcast{}, err
	}

	b.Audience = stringsToAudience(audience)
	b.GroupIDs = groupIDs
	b.Channels = stringsToChannels(channels)
	if schoolID.Valid {
		b.SchoolID = &schoolID.String
	}
	if gradeLevel.Valid {
		g := int(gradeLevel.Int64)
		b.GradeLevel = &g
	}
	if classID.Valid {
		b.ClassID = &classID.String
	}
	if cancelReason.Valid {
		b.CancelReason = &cancelReason.String
	}
	if sentAt.Valid {
		b.SentAt = &sentAt.Time
	}

	return b, nil
}

func (r *implRepository) Create(ctx context.Context, sc model.Scope, opts repository.CreateOptions) (model.EmergencyBroadcast, error) {
	b := opts.Broadcast
	if b.ID == "" {
		b.ID = postgresPkg.NewUUID()
	} else if err := postgresPkg.IsUUID(b.ID); err != nil {
		r.l.Errorf(ctx, "internal.broadcast.repository.postgres.Create.IsUUID: %v", err)
		return model.EmergencyBroadcast{}, err
	}

	now := r.clock()
	b.CreatedAt = now
	b.UpdatedAt = now

	query := `INSERT INTO emergency_broadcasts (` + broadcastColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23)`

	_, err := r.db.ExecContext(ctx, query,
		b.ID, b.Type, b.Priority, b.Title, b.Message,
		pq.Array(audienceToStrings(b.Audience)), b.SchoolID, b.GradeLevel, b.ClassID, pq.Array(b.GroupIDs),
		pq.Array(channelsToStrings(b.Channels)), b.RequiresAcknowledgment, b.ExpiresAt, b.SentBy, b.Status,
		b.TotalRecipients, b.DeliveredCount, b.FailedCount, b.AcknowledgedCount,
		b.CancelReason, b.SentAt, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		r.l.Errorf(ctx, "internal.broadcast.repository.postgres.Create.Insert: %v", err)
		return model.EmergencyBroadcast{}, errors.Wrap(err, "inserting broadcast")
	}

	return b, nil
}

func (r *implRepository) Detail(ctx context.Context, sc model.Scope, id string) (model.EmergencyBroadcast, error) {
	query := `SELECT ` + broadcastColumns + ` FROM emergency_broadcasts WHERE id = $1`

	b, err := r.scanBroadcast(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return model.EmergencyBroadcast{}, repository.ErrNotFound
		}
		r.l.Errorf(ctx, "internal.broadcast.repository.postgres.Detail.Scan: %v", err)
		return model.EmergencyBroadcast{}, errors.Wrap(err, "selecting broadcast")
	}

	return b, nil
}

func (r *implRepository) Get(ctx context.Context, sc model.Scope, opts repository.GetOptions) ([]model.EmergencyBroadcast, paginator.Paginator, error) {
	opts.PaginateQuery.Adjust()

	where, args := buildFilterWhere(opts.Filter, 1)

	var total int64
	countQuery := `SELECT COUNT(*) FROM emergency_broadcasts` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		r.l.Errorf(ctx, "internal.broadcast.repository.postgres.Get.Count: %v", err)
		return nil, paginator.Paginator{}, errors.Wrap(err, "counting broadcasts")
	}

	n := len(args)
	pageQuery := fmt.Sprintf(`SELECT `+broadcastColumns+` FROM emergency_broadcasts`+where+
		` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, n+1, n+2)
	args = append(args, opts.PaginateQuery.Limit, opts.PaginateQuery.Offset())

	rows, err := r.db.QueryContext(ctx, pageQuery, args...)
	if err != nil {
		r.l.Errorf(ctx, "internal.broadcast.repository.postgres.Get.Query: %v", err)
		return nil, paginator.Paginator{}, errors.Wrap(err, "listing broadcasts")
	}
	defer rows.Close()

	var res []model.EmergencyBroadcast
	for rows.Next() {
		b, err := r.scanBroadcast(rows)
		if err != nil {
			r.l.Errorf(ctx, "internal.broadcast.repository.postgres.Get.Scan: %v", err)
			return nil, paginator.Paginator{}, errors.Wrap(err, "scanning broadcast")
		}
		res = append(res, b)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "internal.broadcast.repository.postgres.Get.Rows: %v", err)
		return nil, paginator.Paginator{}, errors.Wrap(err, "iterating broadcasts")
	}

	return res, paginator.Paginator{
		Total:       total,
		Count:       int64(len(res)),
		PerPage:     opts.PaginateQuery.Limit,
		CurrentPage: opts.PaginateQuery.Page,
	}, nil
}

func (r *implRepository) Update(ctx context.Context, sc model.Scope, opts repository.UpdateOptions) (model.EmergencyBroadcast, error) {
	if err := postgresPkg.IsUUID(opts.ID); err != nil {
		r.l.Errorf(ctx, "internal.broadcast.repository.postgres.Update.IsUUID: %v", err)
		return model.EmergencyBroadcast{}, err
	}

	sets := []string{"updated_at = $1"}
	args := []interface{}{r.clock()}
	n := 2

	if opts.Title != nil {
		sets = append(sets, fmt.Sprintf("title = $%d", n))
		args = append(args, *opts.Title)
		n++
	}
	if opts.Message != nil {
		sets = append(sets, fmt.Sprintf("message = $%d", n))
		args = append(args, *opts.Message)
		n++
	}
	if len(opts.Channels) > 0 {
		sets = append(sets, fmt.Sprintf("channels = $%d", n))
		args = append(args, pq.Array(channelsToStrings(opts.Channels)))
		n++
	}
	if opts.ExpiresAt != nil {
		sets = append(sets, fmt.Sprintf("expires_at = $%d", n))
		args = append(args, *opts.ExpiresAt)
		n++
	}

	// Updates are only legal before the send starts.
	query := fmt.Sprintf(`UPDATE emergency_broadcasts SET %s WHERE id = $%d AND status = $%d`,
		strings.Join(sets, ", "), n, n+1)
	args = append(args, opts.ID, model.BroadcastDraft)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "internal.broadcast.repository.postgres.Update.Exec: %v", err)
		return model.EmergencyBroadcast{}, errors.Wrap(err, "updating broadcast")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		r.l.Errorf(ctx, "internal.broadcast.repository.postgres.Update.RowsAffected: %v", err)
		return model.EmergencyBroadcast{}, err
	}
	if affected == 0 {
		return model.EmergencyBroadcast{}, r.resolveNoRows(ctx, opts.ID)
	}

	return r.Detail(ctx, sc, opts.ID)
}

func (r *implRepository) UpdateStatus(ctx context.Context, sc model.Scope, opts repository.UpdateStatusOptions) error {
	sets := []string{"status = $1", "updated_at = $2"}
	args := []interface{}{opts.To, r.clock()}
	n := 3

	if opts.TotalRecipients != nil {
		sets = append(sets, fmt.Sprintf("total_recipients = $%d", n))
		args = append(args, *opts.TotalRecipients)
		n++
	}
	if opts.DeliveredCount != nil {
		sets = append(sets, fmt.Sprintf("delivered_count = $%d", n))
		args = append(args, *opts.DeliveredCount)
		n++
	}
	if opts.FailedCount != nil {
		sets = append(sets, fmt.Sprintf("failed_count = $%d", n))
		args = append(args, *opts.FailedCount)
		n++
	}
	if opts.CancelReason != nil {
		sets = append(sets, fmt.Sprintf("cancel_reason = $%d", n))
		args = append(args, *opts.CancelReason)
		n++
	}
	if opts.SentAt != nil {
		sets = append(sets, fmt.Sprintf("sent_at = $%d", n))
		args = append(args, *opts.SentAt)
		n++
	}

	query := fmt.Sprintf(`UPDATE emergency_broadcasts SET %s WHERE id = $%d AND status = ANY($%d)`,
		strings.Join(sets, ", "), n, n+1)
	args = append(args, opts.ID, pq.Array(statusesToStrings(opts.From)))

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "internal.broadcast.repository.postgres.UpdateStatus.Exec: %v", err)
		return errors.Wrap(err, "updating broadcast status")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		r.l.Errorf(ctx, "internal.broadcast.repository.postgres.UpdateStatus.RowsAffected: %v", err)
		return err
	}
	if affected == 0 {
		return r.resolveNoRows(ctx, opts.ID)
	}

	return nil
}

func (r *implRepository) IncrementAcknowledged(ctx context.Context, sc model.Scope, id string) error {
	query := `UPDATE emergency_broadcasts
		SET acknowledged_count = acknowledged_count + 1, updated_at = $1
		WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, r.clock(), id)
	if err != nil {
		r.l.Errorf(ctx, "internal.broadcast.repository.postgres.IncrementAcknowledged.Exec: %v", err)
		return errors.Wrap(err, "incrementing acknowledged count")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *implRepository) ListStale(ctx context.Context, status model.BroadcastStatus, olderThan time.Time, limit int) ([]model.EmergencyBroadcast, error) {
	query := `SELECT ` + broadcastColumns + ` FROM emergency_broadcasts
		WHERE status = $1 AND updated_at < $2
		ORDER BY updated_at ASC LIMIT $3`

	rows, err := r.db.QueryContext(ctx, query, status, olderThan, limit)
	if err != nil {
		r.l.Errorf(ctx, "internal.broadcast.repository.postgres.ListStale.Query: %v", err)
		return nil, errors.Wrap(err, "listing stale broadcasts")
	}
	defer rows.Close()

	var res []model.EmergencyBroadcast
	for rows.Next() {
		b, err := r.scanBroadcast(rows)
		if err != nil {
			r.l.Errorf(ctx, "internal.broadcast.repository.postgres.ListStale.Scan: %v", err)
			return nil, errors.Wrap(err, "scanning stale broadcast")
		}
		res = append(res, b)
	}

	return res, rows.Err()
}

// resolveNoRows distinguishes a missing broadcast from a status-guard miss.
func (r *implRepository) resolveNoRows(ctx context.Context, id string) error {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM emergency_broadcasts WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		r.l.Errorf(ctx, "internal.broadcast.repository.postgres.resolveNoRows: %v", err)
		return errors.Wrap(err, "checking broadcast existence")
	}
	if !exists {
		return repository.ErrNotFound
	}
	return repository.ErrStatusConflict
}
