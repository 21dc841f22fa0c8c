package services

// Action is a privileged scoreboard operation category. Listing the board is
// public and never passes through the policy.
type Action int

const (
	// ActionManageScores covers add/remove player, adjust, set and clear.
	ActionManageScores Action = iota
	// ActionAddAdmin grants another member management rights.
	ActionAddAdmin
	// ActionRemoveAdmin revokes another member's management rights.
	ActionRemoveAdmin
)

// Policy holds the globally configured authorization knobs. Super-admins may
// do everything in every guild; the two flags decide whether guild admins may
// grow or shrink their own ranks.
type Policy struct {
	SuperAdmins          []int64
	AllowSelfPropagation bool
	AllowSelfElimination bool
}

// IsSuperAdmin reports whether actorID is globally configured as a super-admin.
func (p Policy) IsSuperAdmin(actorID int64) bool {
	for _, id := range p.SuperAdmins {
		if id == actorID {
			return true
		}
	}
	return false
}

// Allows evaluates whether actorID may perform action in a guild whose admin
// list membership is adminIDs. A nil adminIDs (no list created yet) grants
// nothing. The decision is pure and must be re-evaluated on every command;
// admin lists change between calls.
func (p Policy) Allows(actorID int64, action Action, adminIDs []int64) bool {
	if p.IsSuperAdmin(actorID) {
		return true
	}

	isGuildAdmin := false
	for _, id := range adminIDs {
		if id == actorID {
			isGuildAdmin = true
			break
		}
	}

	switch action {
	case ActionManageScores:
		return isGuildAdmin
	case ActionAddAdmin:
		return p.AllowSelfPropagation && isGuildAdmin
	case ActionRemoveAdmin:
		return p.AllowSelfElimination && isGuildAdmin
	default:
		return false
	}
}
