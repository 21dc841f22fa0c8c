package common

import (
	"regexp"
	"strconv"
	"strings"
)

// mentionPattern matches a full Discord user mention token, with or without
// the legacy nickname bang.
var mentionPattern = regexp.MustCompile(`^<@!?(\d+)>$`)

// MentionTarget is one whitespace-separated token from a free-text targets
// option. Valid is false when the token is not a recognizable user mention.
type MentionTarget struct {
	Raw    string
	UserID int64
	Valid  bool
}

// ParseMentionTargets splits input on whitespace and extracts the mentioned
// user ID from each token, preserving order. Tokens that are not mentions are
// kept with Valid=false so callers can report them individually.
func ParseMentionTargets(input string) []MentionTarget {
	targets := []MentionTarget{}

	for _, token := range strings.Fields(input) {
		match := mentionPattern.FindStringSubmatch(token)
		if match == nil {
			targets = append(targets, MentionTarget{Raw: token})
			continue
		}

		userID, err := strconv.ParseInt(match[1], 10, 64)
		if err != nil {
			targets = append(targets, MentionTarget{Raw: token})
			continue
		}

		targets = append(targets, MentionTarget{Raw: token, UserID: userID, Valid: true})
	}

	return targets
}
