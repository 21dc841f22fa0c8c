package entities

import "errors"

// Expected business outcomes. Handlers check these with errors.Is and turn
// them into user-facing messages; anything else is treated as a storage fault.
var (
	ErrPlayerNotFound      = errors.New("player not found on scoreboard")
	ErrPlayerExists        = errors.New("player already on scoreboard")
	ErrAdminAlreadyPresent = errors.New("admin already present")
	ErrAdminNotPresent     = errors.New("admin not present")
)
