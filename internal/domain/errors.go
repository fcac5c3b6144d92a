package domain

import "errors"

var (
	ErrNoPuns            = errors.New("no puns available")
	ErrNicknameNotFound  = errors.New("nickname not found")
	ErrNoNicknames       = errors.New("no nicknames configured")
	ErrNoActivities      = errors.New("no activities configured")
	ErrCooldown          = errors.New("command on cooldown")
	ErrMissingPermission = errors.New("bot lacks required permission")
	ErrGuildOwner        = errors.New("guild owner cannot be renamed")
	ErrRoleHierarchy     = errors.New("member outranks the bot")
)
