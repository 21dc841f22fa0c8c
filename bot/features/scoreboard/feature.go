package scoreboard

import (
	"strings"

	"scoreboard/bot/common"
	"scoreboard/domain/interfaces"
	"scoreboard/domain/services"

	"github.com/bwmarrin/discordgo"
)

// ClearComponentPrefix is the custom ID prefix for clear-confirmation buttons
const ClearComponentPrefix = "scoreboard_clear_"

// Feature handles all score record commands
type Feature struct {
	session      *discordgo.Session
	uowFactory   interfaces.UnitOfWorkFactory
	policy       services.Policy
	resolver     common.DisplayNameResolver
	pendingClear *clearRegistry
}

// NewFeature creates a new scoreboard feature instance
func NewFeature(session *discordgo.Session, uowFactory interfaces.UnitOfWorkFactory, policy services.Policy, resolver common.DisplayNameResolver) *Feature {
	return &Feature{
		session:      session,
		uowFactory:   uowFactory,
		policy:       policy,
		resolver:     resolver,
		pendingClear: newClearRegistry(),
	}
}

// HandleCommand routes scoreboard subcommands to appropriate handlers
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return
	}

	switch options[0].Name {
	case "add-player":
		f.handleAddPlayer(s, i)
	case "remove-player":
		f.handleRemovePlayer(s, i)
	case "adjust":
		f.handleAdjust(s, i)
	case "set":
		f.handleSet(s, i)
	case "score":
		f.handleScore(s, i)
	case "list":
		f.handleList(s, i)
	case "clear":
		f.handleClear(s, i)
	}
}

// HandleInteraction routes clear-confirmation button presses
func (f *Feature) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}

	customID := i.MessageComponentData().CustomID
	switch {
	case strings.HasPrefix(customID, ClearComponentPrefix+"confirm_"):
		f.handleClearConfirm(s, i, strings.TrimPrefix(customID, ClearComponentPrefix+"confirm_"))
	case strings.HasPrefix(customID, ClearComponentPrefix+"cancel_"):
		f.handleClearCancel(s, i, strings.TrimPrefix(customID, ClearComponentPrefix+"cancel_"))
	}
}
