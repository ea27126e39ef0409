package handler

import (
	"fmt"
	"log/slog"

	"agendabot/src-server/utils"

	"github.com/bwmarrin/discordgo"
)

// Sugerencia forwards a suggestion to the configured owner as a DM.
func Sugerencia(as *utils.AppState) {
	id := "sugerencia"
	as.AddAppCmdHandler(id, sugerenciaHandler(as))
	as.AddAppCmdInfo(id, &discordgo.ApplicationCommand{
		Name:        id,
		Description: "Mandar una sugerencia o algo para recordar.",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "texto",
				Description: "La sugerencia",
				Required:    true,
			},
		},
	})
}

func sugerenciaHandler(as *utils.AppState) func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
		opts := optionMap(i)

		owner := as.Schedule.Owner
		if owner == "" {
			slog.Warn("sugerenciaHandler: no owner configured, dropping suggestion")
		} else {
			from := "alguien"
			if i.Member != nil && i.Member.User != nil {
				from = i.Member.User.Username
			} else if i.User != nil {
				from = i.User.Username
			}
			channel, err := s.UserChannelCreate(owner)
			if err != nil {
				return fmt.Errorf("sugerenciaHandler: can't open DM with owner: %w", err)
			}
			if _, err := s.ChannelMessageSend(
				channel.ID,
				fmt.Sprintf("Sugerencia de %s: %s", from, opts["texto"].StringValue()),
			); err != nil {
				return fmt.Errorf("sugerenciaHandler: can't forward suggestion: %w", err)
			}
		}

		if err := utils.InteractRespReply(s, i, "Gracias! Ahí lo molesto a nacho."); err != nil {
			slog.Warn("sugerenciaHandler: can't respond", "error", err)
		}
		return nil
	}
}
