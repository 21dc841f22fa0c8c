package admins

import (
	"scoreboard/domain/interfaces"
	"scoreboard/domain/services"

	"github.com/bwmarrin/discordgo"
)

// Feature handles per-guild scoreboard admin list management
type Feature struct {
	session    *discordgo.Session
	uowFactory interfaces.UnitOfWorkFactory
	policy     services.Policy
}

// NewFeature creates a new admins feature instance
func NewFeature(session *discordgo.Session, uowFactory interfaces.UnitOfWorkFactory, policy services.Policy) *Feature {
	return &Feature{
		session:    session,
		uowFactory: uowFactory,
		policy:     policy,
	}
}

// HandleCommand routes scoreadmins subcommands to appropriate handlers
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return
	}

	switch options[0].Name {
	case "add":
		f.handleAdd(s, i)
	case "remove":
		f.handleRemove(s, i)
	case "list":
		f.handleList(s, i)
	}
}
