package scoreboard

import (
	"github.com/bwmarrin/discordgo"
)

// buildClearConfirmButtons creates the Confirm/Cancel row for a clear prompt
func buildClearConfirmButtons(nonce string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Confirm",
					Style:    discordgo.DangerButton,
					CustomID: ClearComponentPrefix + "confirm_" + nonce,
				},
				discordgo.Button{
					Label:    "Cancel",
					Style:    discordgo.SecondaryButton,
					CustomID: ClearComponentPrefix + "cancel_" + nonce,
				},
			},
		},
	}
}
