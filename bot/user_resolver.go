package bot

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// cachedName is one resolved display name with its expiry
type cachedName struct {
	name   string
	expiry time.Time
}

// UserResolver resolves member display names by user ID, caching results per
// guild to avoid hammering the Discord API on batch commands.
type UserResolver struct {
	session *discordgo.Session

	mutex    sync.RWMutex
	cache    map[int64]map[int64]cachedName // guildID -> userID -> name
	cacheTTL time.Duration
}

// NewUserResolver creates a new user resolver
func NewUserResolver(session *discordgo.Session) *UserResolver {
	return &UserResolver{
		session:  session,
		cache:    make(map[int64]map[int64]cachedName),
		cacheTTL: 5 * time.Minute,
	}
}

// DisplayName returns the member's server nickname, falling back to the
// global display name and then the username.
func (r *UserResolver) DisplayName(ctx context.Context, guildID, userID int64) (string, error) {
	if name, ok := r.lookup(guildID, userID); ok {
		return name, nil
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	name, err := r.fetchDisplayName(guildID, userID)
	if err != nil {
		return "", err
	}

	r.store(guildID, userID, name)
	return name, nil
}

// lookup returns an unexpired cache entry
func (r *UserResolver) lookup(guildID, userID int64) (string, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	guildCache, ok := r.cache[guildID]
	if !ok {
		return "", false
	}

	entry, ok := guildCache[userID]
	if !ok || time.Now().After(entry.expiry) {
		return "", false
	}

	return entry.name, true
}

func (r *UserResolver) store(guildID, userID int64, name string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.cache[guildID] == nil {
		r.cache[guildID] = make(map[int64]cachedName)
	}
	r.cache[guildID][userID] = cachedName{
		name:   name,
		expiry: time.Now().Add(r.cacheTTL),
	}
}

// fetchDisplayName fetches the member from the Discord API and picks the
// highest-priority name available
func (r *UserResolver) fetchDisplayName(guildID, userID int64) (string, error) {
	guildIDStr := strconv.FormatInt(guildID, 10)
	userIDStr := strconv.FormatInt(userID, 10)

	member, err := r.session.GuildMember(guildIDStr, userIDStr)
	if err == nil && member != nil {
		if member.Nick != "" {
			return member.Nick, nil
		}
		if member.User != nil {
			if member.User.GlobalName != "" {
				return member.User.GlobalName, nil
			}
			if member.User.Username != "" {
				return member.User.Username, nil
			}
		}
	}

	// Member lookup can fail for users no longer in the guild; fall back to
	// the bare user object.
	user, userErr := r.session.User(userIDStr)
	if userErr == nil && user != nil {
		if user.GlobalName != "" {
			return user.GlobalName, nil
		}
		return user.Username, nil
	}

	log.Warnf("Failed to resolve display name for user %d in guild %d: %v", userID, guildID, err)
	return "", fmt.Errorf("failed to resolve display name for user %d: %w", userID, userErr)
}

// InvalidateGuild drops cached names for one guild
func (r *UserResolver) InvalidateGuild(guildID int64) {
	r.mutex.Lock()
	delete(r.cache, guildID)
	r.mutex.Unlock()
}
