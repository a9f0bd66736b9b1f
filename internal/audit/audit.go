package audit

import (
	"context"

	"github.com/yatube/yatube/pkg/log"
)

// Audit actions.
const (
	ActionPostCreate    = "post.create"
	ActionPostEdit      = "post.edit"
	ActionPostDelete    = "post.delete"
	ActionCommentCreate = "comment.create"
	ActionFollowCreate  = "follow.create"
	ActionFollowDelete  = "follow.delete"
	ActionGroupCreate   = "group.create"
	ActionGroupUpdate   = "group.update"
	ActionGroupDelete   = "group.delete"
)

// Field constants for audit entries.
const (
	FieldAction = "action"
	FieldTarget = "target"
)

// Log emits a structured audit log entry via the context logger.
func Log(ctx context.Context, action, userID, target string) {
	l := log.Ctx(ctx)
	l.Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str(FieldAction, action).
		Str(log.FieldUserID, userID).
		Str(FieldTarget, target).
		Msg(action)
}
