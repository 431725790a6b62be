package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"broadcast-srv/internal/model"
	"broadcast-srv/internal/recipient/repository"

	"github.com/friendsofgo/errors"
	"github.com/lib/pq"
)

const defaultPageLimit = 500

func (r *implRepository) ListStudents(ctx context.Context, sc model.Scope, opts repository.ListOptions) ([]model.Recipient, error) {
	conds := []string{"s.active"}
	var args []interface{}
	n := 1

	if opts.SchoolID != "" {
		conds = append(conds, fmt.Sprintf("s.school_id = $%d", n))
		args = append(args, opts.SchoolID)
		n++
	}
	if opts.GradeLevel != nil {
		conds = append(conds, fmt.Sprintf("s.grade_level = $%d", n))
		args = append(args, *opts.GradeLevel)
		n++
	}
	if opts.ClassID != "" {
		conds = append(conds, fmt.Sprintf("s.class_id = $%d", n))
		args = append(args, opts.ClassID)
		n++
	}
	if len(opts.GroupIDs) > 0 {
		conds = append(conds, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM group_members gm WHERE gm.member_id = s.id AND gm.group_id = ANY($%d))", n))
		args = append(args, pq.Array(opts.GroupIDs))
		n++
	}

	query := fmt.Sprintf(`SELECT s.id, s.full_name, s.phone, s.email FROM students s
		WHERE %s ORDER BY s.id LIMIT $%d OFFSET $%d`, strings.Join(conds, " AND "), n, n+1)
	args = append(args, pageLimit(opts.Limit), opts.Offset)

	recipients, err := r.queryRecipients(ctx, query, args, model.RecipientStudent)
	if err != nil {
		r.l.Errorf(ctx, "internal.recipient.repository.postgres.ListStudents: %v", err)
		return nil, errors.Wrap(err, "listing students")
	}
	return recipients, nil
}

func (r *implRepository) ListGuardians(ctx context.Context, sc model.Scope, opts repository.ListOptions) ([]model.Recipient, error) {
	conds := []string{"s.active"}
	var args []interface{}
	n := 1

	if opts.SchoolID != "" {
		conds = append(conds, fmt.Sprintf("s.school_id = $%d", n))
		args = append(args, opts.SchoolID)
		n++
	}
	if opts.GradeLevel != nil {
		conds = append(conds, fmt.Sprintf("s.grade_level = $%d", n))
		args = append(args, *opts.GradeLevel)
		n++
	}
	if opts.ClassID != "" {
		conds = append(conds, fmt.Sprintf("s.class_id = $%d", n))
		args = append(args, opts.ClassID)
		n++
	}
	if opts.EmergencyOnly {
		conds = append(conds, "g.is_emergency_contact")
	}
	if len(opts.GroupIDs) > 0 {
		conds = append(conds, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM group_members gm WHERE gm.member_id = g.id AND gm.group_id = ANY($%d))", n))
		args = append(args, pq.Array(opts.GroupIDs))
		n++
	}

	query := fmt.Sprintf(`SELECT DISTINCT g.id, g.full_name, g.phone, g.email
		FROM guardians g
		JOIN student_guardians sg ON sg.guardian_id = g.id
		JOIN students s ON s.id = sg.student_id
		WHERE %s ORDER BY g.id LIMIT $%d OFFSET $%d`, strings.Join(conds, " AND "), n, n+1)
	args = append(args, pageLimit(opts.Limit), opts.Offset)

	recipients, err := r.queryRecipients(ctx, query, args, model.RecipientParent)
	if err != nil {
		r.l.Errorf(ctx, "internal.recipient.repository.postgres.ListGuardians: %v", err)
		return nil, errors.Wrap(err, "listing guardians")
	}
	return recipients, nil
}

func (r *implRepository) ListStaff(ctx context.Context, sc model.Scope, opts repository.ListOptions) ([]model.Recipient, error) {
	conds := []string{"st.active"}
	var args []interface{}
	n := 1

	if opts.SchoolID != "" {
		conds = append(conds, fmt.Sprintf("st.school_id = $%d", n))
		args = append(args, opts.SchoolID)
		n++
	}
	if len(opts.GroupIDs) > 0 {
		conds = append(conds, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM group_members gm WHERE gm.member_id = st.id AND gm.group_id = ANY($%d))", n))
		args = append(args, pq.Array(opts.GroupIDs))
		n++
	}

	query := fmt.Sprintf(`SELECT st.id, st.full_name, st.phone, st.email FROM staff st
		WHERE %s ORDER BY st.id LIMIT $%d OFFSET $%d`, strings.Join(conds, " AND "), n, n+1)
	args = append(args, pageLimit(opts.Limit), opts.Offset)

	recipients, err := r.queryRecipients(ctx, query, args, model.RecipientStaff)
	if err != nil {
		r.l.Errorf(ctx, "internal.recipient.repository.postgres.ListStaff: %v", err)
		return nil, errors.Wrap(err, "listing staff")
	}
	return recipients, nil
}

func (r *implRepository) queryRecipients(ctx context.Context, query string, args []interface{}, typ model.RecipientType) ([]model.Recipient, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []model.Recipient
	for rows.Next() {
		var (
			rec   model.Recipient
			phone sql.NullString
			email sql.NullString
		)
		if err := rows.Scan(&rec.ID, &rec.Name, &phone, &email); err != nil {
			return nil, err
		}
		rec.Type = typ
		rec.Phone = phone.String
		rec.Email = email.String
		res = append(res, rec)
	}

	return res, rows.Err()
}

func pageLimit(limit int) int {
	if limit <= 0 {
		return defaultPageLimit
	}
	return limit
}
