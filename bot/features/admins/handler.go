package admins

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"scoreboard/bot/common"
	"scoreboard/domain/entities"
	"scoreboard/domain/services"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// interactionActor parses the invoking member's guild and user IDs
func interactionActor(i *discordgo.InteractionCreate) (guildID, actorID int64, err error) {
	guildID, err = strconv.ParseInt(i.GuildID, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to parse guild ID %q: %w", i.GuildID, err)
	}
	if i.Member == nil || i.Member.User == nil {
		return 0, 0, fmt.Errorf("interaction has no guild member")
	}
	actorID, err = common.ParseUserID(i.Member.User.ID)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to parse user ID %q: %w", i.Member.User.ID, err)
	}
	return guildID, actorID, nil
}

// handleAdd handles the /scoreadmins add command
func (f *Feature) handleAdd(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, actorID, err := interactionActor(i)
	if err != nil {
		log.Errorf("Failed to parse interaction actor: %v", err)
		common.RespondWithError(s, i, "Failed to process command")
		return
	}

	playerID, err := common.ParseUserID(i.ApplicationCommandData().Options[0].Options[0].UserValue(s).ID)
	if err != nil {
		log.Errorf("Failed to parse player ID: %v", err)
		common.RespondWithError(s, i, "Invalid user selected")
		return
	}

	ctx := context.Background()

	uow := f.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		log.Errorf("Error beginning transaction: %v", err)
		common.RespondWithError(s, i, "Failed to update admins")
		return
	}
	defer uow.Rollback()

	adminService := services.NewAdminService(uow.AdminListRepository())

	// The same list drives the decision and the mutation
	adminIDs, err := adminService.GetAdmins(ctx)
	if err != nil {
		log.Errorf("Failed to load admin list for guild %d: %v", guildID, err)
		common.RespondWithError(s, i, "Failed to update admins")
		return
	}

	if !f.policy.Allows(actorID, services.ActionAddAdmin, adminIDs) {
		common.RespondWithError(s, i, "You are not allowed to add scoreboard admins")
		return
	}

	err = adminService.AddAdmin(ctx, playerID)
	if errors.Is(err, entities.ErrAdminAlreadyPresent) {
		respondEphemeral(s, i, fmt.Sprintf("%s is already a scoreboard admin", common.GetUserMention(playerID)))
		return
	}
	if err != nil {
		log.Errorf("Failed to add admin %d in guild %d: %v", playerID, guildID, err)
		common.RespondWithError(s, i, "Failed to update admins")
		return
	}

	if err := uow.Commit(); err != nil {
		log.Errorf("Error committing transaction: %v", err)
		common.RespondWithError(s, i, "Failed to update admins")
		return
	}

	respond(s, i, fmt.Sprintf("✅ %s is now a scoreboard admin", common.GetUserMention(playerID)))
}

// handleRemove handles the /scoreadmins remove command
func (f *Feature) handleRemove(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, actorID, err := interactionActor(i)
	if err != nil {
		log.Errorf("Failed to parse interaction actor: %v", err)
		common.RespondWithError(s, i, "Failed to process command")
		return
	}

	playerID, err := common.ParseUserID(i.ApplicationCommandData().Options[0].Options[0].UserValue(s).ID)
	if err != nil {
		log.Errorf("Failed to parse player ID: %v", err)
		common.RespondWithError(s, i, "Invalid user selected")
		return
	}

	ctx := context.Background()

	uow := f.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		log.Errorf("Error beginning transaction: %v", err)
		common.RespondWithError(s, i, "Failed to update admins")
		return
	}
	defer uow.Rollback()

	adminService := services.NewAdminService(uow.AdminListRepository())

	adminIDs, err := adminService.GetAdmins(ctx)
	if err != nil {
		log.Errorf("Failed to load admin list for guild %d: %v", guildID, err)
		common.RespondWithError(s, i, "Failed to update admins")
		return
	}

	if !f.policy.Allows(actorID, services.ActionRemoveAdmin, adminIDs) {
		common.RespondWithError(s, i, "You are not allowed to remove scoreboard admins")
		return
	}

	err = adminService.RemoveAdmin(ctx, playerID)
	if errors.Is(err, entities.ErrAdminNotPresent) {
		respondEphemeral(s, i, fmt.Sprintf("%s is not a scoreboard admin", common.GetUserMention(playerID)))
		return
	}
	if err != nil {
		log.Errorf("Failed to remove admin %d in guild %d: %v", playerID, guildID, err)
		common.RespondWithError(s, i, "Failed to update admins")
		return
	}

	if err := uow.Commit(); err != nil {
		log.Errorf("Error committing transaction: %v", err)
		common.RespondWithError(s, i, "Failed to update admins")
		return
	}

	respond(s, i, fmt.Sprintf("🗑️ %s is no longer a scoreboard admin", common.GetUserMention(playerID)))
}

// handleList handles the /scoreadmins list command. Public by design.
func (f *Feature) handleList(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, err := strconv.ParseInt(i.GuildID, 10, 64)
	if err != nil {
		log.Errorf("Failed to parse guild ID: %v", err)
		common.RespondWithError(s, i, "Failed to process command")
		return
	}

	ctx := context.Background()

	uow := f.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		log.Errorf("Error beginning transaction: %v", err)
		common.RespondWithError(s, i, "Failed to list admins")
		return
	}
	defer uow.Rollback()

	adminService := services.NewAdminService(uow.AdminListRepository())

	adminIDs, err := adminService.GetAdmins(ctx)
	if err != nil {
		log.Errorf("Failed to load admin list for guild %d: %v", guildID, err)
		common.RespondWithError(s, i, "Failed to list admins")
		return
	}

	if err := uow.Commit(); err != nil {
		log.Errorf("Error committing transaction: %v", err)
		common.RespondWithError(s, i, "Failed to list admins")
		return
	}

	if len(adminIDs) == 0 {
		respondEphemeral(s, i, "No scoreboard admins configured for this server")
		return
	}

	mentions := make([]string, 0, len(adminIDs))
	for _, id := range adminIDs {
		mentions = append(mentions, common.GetUserMention(id))
	}

	respond(s, i, fmt.Sprintf("Scoreboard admins: %s", strings.Join(mentions, ", ")))
}

func respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
		},
	})
	if err != nil {
		log.Errorf("Failed to respond to interaction: %v", err)
	}
}

func respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Errorf("Failed to respond to interaction: %v", err)
	}
}
