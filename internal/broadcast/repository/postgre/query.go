package postgres

import (
	"fmt"
	"strings"

	"broadcast-srv/internal/broadcast/repository"
	"broadcast-srv/internal/model"

	"github.com/lib/pq"
)

const broadcastColumns = `id, type, priority, title, message, audience, school_id, grade_level,
	class_id, group_ids, channels, requires_acknowledgment, expires_at, sent_by, status,
	total_recipients, delivered_count, failed_count, acknowledged_count, cancel_reason,
	sent_at, created_at, updated_at`

// buildFilterWhere renders the WHERE clause for a broadcast filter. The
// returned arg slice continues numbering from startArg.
func buildFilterWhere(f repository.Filter, startArg int) (string, []interface{}) {
	var conds []string
	var args []interface{}
	n := startArg

	if len(f.Statuses) > 0 {
		conds = append(conds, fmt.Sprintf("status = ANY($%d)", n))
		args = append(args, pq.Array(statusesToStrings(f.Statuses)))
		n++
	}
	if len(f.Types) > 0 {
		conds = append(conds, fmt.Sprintf("type = ANY($%d)", n))
		args = append(args, pq.Array(typesToStrings(f.Types)))
		n++
	}
	if f.SchoolID != "" {
		conds = append(conds, fmt.Sprintf("school_id = $%d", n))
		args = append(args, f.SchoolID)
		n++
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func statusesToStrings(in []model.BroadcastStatus) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = string(s)
	}
	return out
}

func typesToStrings(in []model.EmergencyType) []string {
	out := make([]string, len(in))
	for i, t := range in {
		out[i] = string(t)
	}
	return out
}

func audienceToStrings(in []model.Audience) []string {
	out := make([]string, len(in))
	for i, a := range in {
		out[i] = string(a)
	}
	return out
}

func channelsToStrings(in []model.Channel) []string {
	out := make([]string, len(in))
	for i, c := range in {
		out[i] = string(c)
	}
	return out
}

func stringsToAudience(in []string) []model.Audience {
	out := make([]model.Audience, len(in))
	for i, s := range in {
		out[i] = model.Audience(s)
	}
	return out
}

func stringsToChannels(in []string) []model.Channel {
	out := make([]model.Channel, len(in))
	for i, s := range in {
		out[i] = model.Channel(s)
	}
	return out
}
