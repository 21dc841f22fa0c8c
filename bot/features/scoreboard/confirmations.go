package scoreboard

import (
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
)

// clearConfirmTimeout is how long a clear prompt waits before resolving to a
// cancelled outcome. The timeout is the only cancelable wait in the bot.
const clearConfirmTimeout = 30 * time.Second

// pendingClear is one outstanding clear confirmation prompt
type pendingClear struct {
	guildID     int64
	group       string
	actorID     int64
	interaction *discordgo.Interaction
	timer       *time.Timer
}

// clearRegistry tracks outstanding clear prompts by nonce
type clearRegistry struct {
	mu      sync.Mutex
	pending map[string]*pendingClear
	counter uint64
}

func newClearRegistry() *clearRegistry {
	return &clearRegistry{
		pending: make(map[string]*pendingClear),
	}
}

// nonce returns a process-unique token for button custom IDs
func (r *clearRegistry) nonce() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.counter++
	return fmt.Sprintf("%d-%d", time.Now().UnixNano(), r.counter)
}

func (r *clearRegistry) add(nonce string, p *pendingClear) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending[nonce] = p
}

// peek returns the pending prompt without consuming it
func (r *clearRegistry) peek(nonce string) (*pendingClear, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.pending[nonce]
	return p, ok
}

// pop removes and returns the pending prompt, stopping its timeout. Exactly
// one of the button handlers and the timeout wins the race.
func (r *clearRegistry) pop(nonce string) (*pendingClear, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.pending[nonce]
	if !ok {
		return nil, false
	}

	delete(r.pending, nonce)
	if p.timer != nil {
		p.timer.Stop()
	}
	return p, true
}
