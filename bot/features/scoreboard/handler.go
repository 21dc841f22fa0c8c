package scoreboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"scoreboard/bot/common"
	"scoreboard/domain/entities"
	"scoreboard/domain/interfaces"
	"scoreboard/domain/services"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// optionMap indexes a subcommand's options by name
func optionMap(options []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		m[opt.Name] = opt
	}
	return m
}

// groupOption returns the group option value, defaulting to the default group
func groupOption(opts map[string]*discordgo.ApplicationCommandInteractionDataOption) string {
	if opt, ok := opts["group"]; ok {
		if group := strings.TrimSpace(opt.StringValue()); group != "" {
			return group
		}
	}
	return entities.DefaultGroup
}

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

// authorize evaluates the policy against the guild's current admin list. The
// list is re-read on every command; membership changes between calls.
func (f *Feature) authorize(ctx context.Context, uow interfaces.UnitOfWork, actorID int64, action services.Action) (bool, error) {
	adminService := services.NewAdminService(uow.AdminListRepository())
	adminIDs, err := adminService.GetAdmins(ctx)
	if err != nil {
		return false, err
	}
	return f.policy.Allows(actorID, action, adminIDs), nil
}

// handleAddPlayer handles the /scoreboard add-player command
func (f *Feature) handleAddPlayer(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, actorID, err := interactionActor(i)
	if err != nil {
		log.Errorf("Failed to parse interaction actor: %v", err)
		common.RespondWithError(s, i, "Failed to process command")
		return
	}

	opts := optionMap(i.ApplicationCommandData().Options[0].Options)
	group := groupOption(opts)

	user := opts["user"].UserValue(s)
	playerID, err := common.ParseUserID(user.ID)
	if err != nil {
		log.Errorf("Failed to parse player ID: %v", err)
		common.RespondWithError(s, i, "Invalid user selected")
		return
	}

	var score float64
	if opt, ok := opts["score"]; ok {
		score = opt.FloatValue()
	}

	ctx := context.Background()

	// Capture the display name at creation; it is not synced afterwards
	playerName, err := f.resolver.DisplayName(ctx, guildID, playerID)
	if err != nil {
		log.Warnf("Falling back to username for player %d: %v", playerID, err)
		playerName = user.Username
	}

	uow := f.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		log.Errorf("Error beginning transaction: %v", err)
		common.RespondWithError(s, i, "Failed to add player")
		return
	}
	defer uow.Rollback()

	allowed, err := f.authorize(ctx, uow, actorID, services.ActionManageScores)
	if err != nil {
		log.Errorf("Failed to check authorization: %v", err)
		common.RespondWithError(s, i, "Failed to add player")
		return
	}
	if !allowed {
		common.RespondWithError(s, i, "You are not allowed to manage this scoreboard")
		return
	}

	scoreboardService := services.NewScoreboardService(uow.ScoreRepository())

	record, err := scoreboardService.AddPlayer(ctx, group, playerID, playerName, score)
	if errors.Is(err, entities.ErrPlayerExists) {
		respondEphemeral(s, i, fmt.Sprintf("**%s** is already on the board with **%s** points",
			record.PlayerName, common.FormatScore(record.Score)))
		return
	}
	if err != nil {
		log.Errorf("Failed to add player %d in guild %d: %v", playerID, guildID, err)
		common.RespondWithError(s, i, "Failed to add player")
		return
	}

	if err := uow.Commit(); err != nil {
		log.Errorf("Error committing transaction: %v", err)
		common.RespondWithError(s, i, "Failed to add player")
		return
	}

	respond(s, i, fmt.Sprintf("✅ Added **%s** (`%d`) with score **%s**",
		record.PlayerName, record.PlayerID, common.FormatScore(record.Score)))
}

// handleRemovePlayer handles the /scoreboard remove-player command
func (f *Feature) handleRemovePlayer(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, actorID, err := interactionActor(i)
	if err != nil {
		log.Errorf("Failed to parse interaction actor: %v", err)
		common.RespondWithError(s, i, "Failed to process command")
		return
	}

	opts := optionMap(i.ApplicationCommandData().Options[0].Options)
	group := groupOption(opts)

	playerID, err := common.ParseUserID(opts["user"].UserValue(s).ID)
	if err != nil {
		log.Errorf("Failed to parse player ID: %v", err)
		common.RespondWithError(s, i, "Invalid user selected")
		return
	}

	ctx := context.Background()

	uow := f.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		log.Errorf("Error beginning transaction: %v", err)
		common.RespondWithError(s, i, "Failed to remove player")
		return
	}
	defer uow.Rollback()

	allowed, err := f.authorize(ctx, uow, actorID, services.ActionManageScores)
	if err != nil {
		log.Errorf("Failed to check authorization: %v", err)
		common.RespondWithError(s, i, "Failed to remove player")
		return
	}
	if !allowed {
		common.RespondWithError(s, i, "You are not allowed to manage this scoreboard")
		return
	}

	scoreboardService := services.NewScoreboardService(uow.ScoreRepository())

	record, err := scoreboardService.RemovePlayer(ctx, group, playerID)
	if errors.Is(err, entities.ErrPlayerNotFound) {
		respondEphemeral(s, i, fmt.Sprintf("%s is not on the board", common.GetUserMention(playerID)))
		return
	}
	if err != nil {
		log.Errorf("Failed to remove player %d in guild %d: %v", playerID, guildID, err)
		common.RespondWithError(s, i, "Failed to remove player")
		return
	}

	if err := uow.Commit(); err != nil {
		log.Errorf("Error committing transaction: %v", err)
		common.RespondWithError(s, i, "Failed to remove player")
		return
	}

	respond(s, i, fmt.Sprintf("🗑️ Removed **%s** (final score **%s**)",
		record.PlayerName, common.FormatScore(record.Score)))
}

// handleAdjust handles the /scoreboard adjust command. Targets come from a
// free-text option holding one or more mentions; each target gets its own
// outcome line and one failure never aborts the batch.
func (f *Feature) handleAdjust(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, actorID, err := interactionActor(i)
	if err != nil {
		log.Errorf("Failed to parse interaction actor: %v", err)
		common.RespondWithError(s, i, "Failed to process command")
		return
	}

	opts := optionMap(i.ApplicationCommandData().Options[0].Options)
	group := groupOption(opts)
	delta := opts["amount"].FloatValue()

	targets := common.ParseMentionTargets(opts["players"].StringValue())
	if len(targets) == 0 {
		common.HandleError(s, i, common.NewUserError("No players mentioned",
			"adjust invoked without any mention tokens"), false)
		return
	}

	ctx := context.Background()

	uow := f.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		log.Errorf("Error beginning transaction: %v", err)
		common.RespondWithError(s, i, "Failed to adjust scores")
		return
	}
	defer uow.Rollback()

	allowed, err := f.authorize(ctx, uow, actorID, services.ActionManageScores)
	if err != nil {
		log.Errorf("Failed to check authorization: %v", err)
		common.RespondWithError(s, i, "Failed to adjust scores")
		return
	}
	if !allowed {
		common.RespondWithError(s, i, "You are not allowed to manage this scoreboard")
		return
	}

	scoreboardService := services.NewScoreboardService(uow.ScoreRepository())

	lines := make([]string, 0, len(targets))
	for _, target := range targets {
		if !target.Valid {
			lines = append(lines, fmt.Sprintf("`%s`: no player mentioned", target.Raw))
			continue
		}

		newScore, err := scoreboardService.Adjust(ctx, group, target.UserID, delta)
		switch {
		case errors.Is(err, entities.ErrPlayerNotFound):
			lines = append(lines, fmt.Sprintf("%s: not on the board", common.GetUserMention(target.UserID)))
		case err != nil:
			log.Errorf("Failed to adjust score for player %d in guild %d: %v", target.UserID, guildID, err)
			lines = append(lines, fmt.Sprintf("%s: failed", common.GetUserMention(target.UserID)))
		default:
			lines = append(lines, fmt.Sprintf("%s: %s → **%s**",
				common.GetUserMention(target.UserID), common.FormatSignedScore(delta), common.FormatScore(newScore)))
		}
	}

	if err := uow.Commit(); err != nil {
		log.Errorf("Error committing transaction: %v", err)
		common.RespondWithError(s, i, "Failed to adjust scores")
		return
	}

	respond(s, i, strings.Join(lines, "\n"))
}

// handleSet handles the /scoreboard set command, batched like adjust
func (f *Feature) handleSet(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, actorID, err := interactionActor(i)
	if err != nil {
		log.Errorf("Failed to parse interaction actor: %v", err)
		common.RespondWithError(s, i, "Failed to process command")
		return
	}

	opts := optionMap(i.ApplicationCommandData().Options[0].Options)
	group := groupOption(opts)
	value := opts["value"].FloatValue()

	targets := common.ParseMentionTargets(opts["players"].StringValue())
	if len(targets) == 0 {
		common.HandleError(s, i, common.NewUserError("No players mentioned",
			"set invoked without any mention tokens"), false)
		return
	}

	ctx := context.Background()

	uow := f.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		log.Errorf("Error beginning transaction: %v", err)
		common.RespondWithError(s, i, "Failed to set scores")
		return
	}
	defer uow.Rollback()

	allowed, err := f.authorize(ctx, uow, actorID, services.ActionManageScores)
	if err != nil {
		log.Errorf("Failed to check authorization: %v", err)
		common.RespondWithError(s, i, "Failed to set scores")
		return
	}
	if !allowed {
		common.RespondWithError(s, i, "You are not allowed to manage this scoreboard")
		return
	}

	scoreboardService := services.NewScoreboardService(uow.ScoreRepository())

	lines := make([]string, 0, len(targets))
	for _, target := range targets {
		if !target.Valid {
			lines = append(lines, fmt.Sprintf("`%s`: no player mentioned", target.Raw))
			continue
		}

		oldScore, err := scoreboardService.SetScore(ctx, group, target.UserID, value)
		switch {
		case errors.Is(err, entities.ErrPlayerNotFound):
			lines = append(lines, fmt.Sprintf("%s: not on the board", common.GetUserMention(target.UserID)))
		case err != nil:
			log.Errorf("Failed to set score for player %d in guild %d: %v", target.UserID, guildID, err)
			lines = append(lines, fmt.Sprintf("%s: failed", common.GetUserMention(target.UserID)))
		default:
			lines = append(lines, fmt.Sprintf("%s: %s → **%s**",
				common.GetUserMention(target.UserID), common.FormatScore(oldScore), common.FormatScore(value)))
		}
	}

	if err := uow.Commit(); err != nil {
		log.Errorf("Error committing transaction: %v", err)
		common.RespondWithError(s, i, "Failed to set scores")
		return
	}

	respond(s, i, strings.Join(lines, "\n"))
}

// handleScore handles the /scoreboard score command. Public by design.
func (f *Feature) handleScore(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, err := strconv.ParseInt(i.GuildID, 10, 64)
	if err != nil {
		log.Errorf("Failed to parse guild ID: %v", err)
		common.RespondWithError(s, i, "Failed to process command")
		return
	}

	opts := optionMap(i.ApplicationCommandData().Options[0].Options)
	group := groupOption(opts)

	playerID, err := common.ParseUserID(opts["user"].UserValue(s).ID)
	if err != nil {
		log.Errorf("Failed to parse player ID: %v", err)
		common.RespondWithError(s, i, "Invalid user selected")
		return
	}

	ctx := context.Background()

	uow := f.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		log.Errorf("Error beginning transaction: %v", err)
		common.RespondWithError(s, i, "Failed to look up score")
		return
	}
	defer uow.Rollback()

	scoreboardService := services.NewScoreboardService(uow.ScoreRepository())

	record, err := scoreboardService.Get(ctx, group, playerID)
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err,
			fmt.Sprintf("failed to get score for player %d in guild %d", playerID, guildID)), false)
		return
	}

	if err := uow.Commit(); err != nil {
		log.Errorf("Error committing transaction: %v", err)
		common.RespondWithError(s, i, "Failed to look up score")
		return
	}

	if record == nil {
		respondEphemeral(s, i, fmt.Sprintf("%s is not on the board", common.GetUserMention(playerID)))
		return
	}

	respond(s, i, fmt.Sprintf("**%s** has **%s** points",
		record.PlayerName, common.FormatScore(record.Score)))
}

// handleList handles the /scoreboard list command. Public by design.
func (f *Feature) handleList(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, err := strconv.ParseInt(i.GuildID, 10, 64)
	if err != nil {
		log.Errorf("Failed to parse guild ID: %v", err)
		common.RespondWithError(s, i, "Failed to process command")
		return
	}

	opts := optionMap(i.ApplicationCommandData().Options[0].Options)
	group := groupOption(opts)

	page := 1
	if opt, ok := opts["page"]; ok {
		page = int(opt.IntValue())
		if page < 1 {
			page = 1
		}
	}

	ascending := false
	if opt, ok := opts["ascending"]; ok {
		ascending = opt.BoolValue()
	}

	ctx := context.Background()

	uow := f.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		log.Errorf("Error beginning transaction: %v", err)
		common.RespondWithError(s, i, "Failed to list the board")
		return
	}
	defer uow.Rollback()

	scoreboardService := services.NewScoreboardService(uow.ScoreRepository())

	offset := (page - 1) * common.PageSize
	records, err := scoreboardService.ListSorted(ctx, group, common.PageSize, offset, ascending)
	if err != nil {
		log.Errorf("Failed to list board for guild %d group %q: %v", guildID, group, err)
		common.RespondWithError(s, i, "Failed to list the board")
		return
	}

	if err := uow.Commit(); err != nil {
		log.Errorf("Error committing transaction: %v", err)
		common.RespondWithError(s, i, "Failed to list the board")
		return
	}

	embed, imageData := buildLeaderboardEmbed(group, page, ascending, records)

	data := &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{embed},
	}
	if imageData != nil {
		data.Files = []*discordgo.File{{
			Name:        "leaderboard.png",
			ContentType: "image/png",
			Reader:      bytes.NewReader(imageData),
		}}
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		log.Errorf("Failed to respond to interaction: %v", err)
	}
}

// handleClear handles the /scoreboard clear command by posting a
// Confirm/Cancel prompt. The destructive work happens in handleClearConfirm.
func (f *Feature) handleClear(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, actorID, err := interactionActor(i)
	if err != nil {
		log.Errorf("Failed to parse interaction actor: %v", err)
		common.RespondWithError(s, i, "Failed to process command")
		return
	}

	opts := optionMap(i.ApplicationCommandData().Options[0].Options)
	group := groupOption(opts)

	ctx := context.Background()

	uow := f.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		log.Errorf("Error beginning transaction: %v", err)
		common.RespondWithError(s, i, "Failed to clear the board")
		return
	}
	defer uow.Rollback()

	allowed, err := f.authorize(ctx, uow, actorID, services.ActionManageScores)
	if err != nil {
		log.Errorf("Failed to check authorization: %v", err)
		common.RespondWithError(s, i, "Failed to clear the board")
		return
	}
	if !allowed {
		common.RespondWithError(s, i, "You are not allowed to manage this scoreboard")
		return
	}

	nonce := f.pendingClear.nonce()
	pending := &pendingClear{
		guildID:     guildID,
		group:       group,
		actorID:     actorID,
		interaction: i.Interaction,
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    fmt.Sprintf("⚠️ Clear the **%s** board? This removes every player and cannot be undone.", group),
			Components: buildClearConfirmButtons(nonce),
		},
	})
	if err != nil {
		log.Errorf("Failed to respond to interaction: %v", err)
		return
	}

	// Arm the timeout only after the prompt is actually up
	pending.timer = time.AfterFunc(clearConfirmTimeout, func() {
		if expired, ok := f.pendingClear.pop(nonce); ok {
			f.expireClearPrompt(expired)
		}
	})
	f.pendingClear.add(nonce, pending)
}

// expireClearPrompt resolves a timed-out prompt to a cancelled outcome
func (f *Feature) expireClearPrompt(p *pendingClear) {
	content := "⏱️ Clear confirmation timed out — nothing was removed"
	components := []discordgo.MessageComponent{}

	_, err := f.session.InteractionResponseEdit(p.interaction, &discordgo.WebhookEdit{
		Content:    &content,
		Components: &components,
	})
	if err != nil {
		log.Errorf("Failed to edit expired clear prompt for guild %d: %v", p.guildID, err)
	}
}

// handleClearConfirm executes a confirmed clear
func (f *Feature) handleClearConfirm(s *discordgo.Session, i *discordgo.InteractionCreate, nonce string) {
	_, actorID, err := interactionActor(i)
	if err != nil {
		log.Errorf("Failed to parse interaction actor: %v", err)
		common.RespondWithError(s, i, "Failed to process confirmation")
		return
	}

	pending, ok := f.pendingClear.peek(nonce)
	if !ok {
		respondEphemeral(s, i, "This confirmation has expired")
		return
	}
	if pending.actorID != actorID {
		respondEphemeral(s, i, "Only the member who requested the clear can respond")
		return
	}

	pending, ok = f.pendingClear.pop(nonce)
	if !ok {
		respondEphemeral(s, i, "This confirmation has expired")
		return
	}

	ctx := context.Background()

	uow := f.uowFactory.CreateForGuild(pending.guildID)
	if err := uow.Begin(ctx); err != nil {
		log.Errorf("Error beginning transaction: %v", err)
		common.RespondWithError(s, i, "Failed to clear the board")
		return
	}
	defer uow.Rollback()

	// Re-check: the admin list may have changed while the prompt was up
	allowed, err := f.authorize(ctx, uow, actorID, services.ActionManageScores)
	if err != nil {
		log.Errorf("Failed to check authorization: %v", err)
		common.RespondWithError(s, i, "Failed to clear the board")
		return
	}
	if !allowed {
		common.RespondWithError(s, i, "You are not allowed to manage this scoreboard")
		return
	}

	scoreboardService := services.NewScoreboardService(uow.ScoreRepository())

	count, err := scoreboardService.Clear(ctx, pending.group)
	if err != nil {
		log.Errorf("Failed to clear group %q in guild %d: %v", pending.group, pending.guildID, err)
		common.RespondWithError(s, i, "Failed to clear the board")
		return
	}

	if err := uow.Commit(); err != nil {
		log.Errorf("Error committing transaction: %v", err)
		common.RespondWithError(s, i, "Failed to clear the board")
		return
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    fmt.Sprintf("🧹 Cleared the **%s** board — removed **%d** player(s)", pending.group, count),
			Components: []discordgo.MessageComponent{},
		},
	})
	if err != nil {
		log.Errorf("Failed to update clear prompt: %v", err)
	}
}

// handleClearCancel resolves a prompt to a cancelled outcome
func (f *Feature) handleClearCancel(s *discordgo.Session, i *discordgo.InteractionCreate, nonce string) {
	_, actorID, err := interactionActor(i)
	if err != nil {
		log.Errorf("Failed to parse interaction actor: %v", err)
		common.RespondWithError(s, i, "Failed to process confirmation")
		return
	}

	pending, ok := f.pendingClear.peek(nonce)
	if !ok {
		respondEphemeral(s, i, "This confirmation has expired")
		return
	}
	if pending.actorID != actorID {
		respondEphemeral(s, i, "Only the member who requested the clear can respond")
		return
	}

	if _, ok := f.pendingClear.pop(nonce); !ok {
		respondEphemeral(s, i, "This confirmation has expired")
		return
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    "Clear cancelled — nothing was removed",
			Components: []discordgo.MessageComponent{},
		},
	})
	if err != nil {
		log.Errorf("Failed to update clear prompt: %v", err)
	}
}
