package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"agendabot/src-server/event"
	"agendabot/src-server/utils"

	"github.com/bwmarrin/discordgo"
)

// Agendar creates a one-off calendar entry from a date text and a title.
func Agendar(as *utils.AppState) {
	id := "agendar"
	as.AddAppCmdHandler(id, agendarHandler(as))
	as.AddAppCmdInfo(id, &discordgo.ApplicationCommand{
		Name:        id,
		Description: "Agendar un evento para una fecha.",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "fecha",
				Description: "La fecha del evento, ej. 15/03/2025",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "titulo",
				Description: "El título del evento (mínimo 5 letras)",
				Required:    true,
			},
		},
	})
}

func agendarHandler(as *utils.AppState) func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
		opts := optionMap(i)

		newEvent, err := as.Factory.OneOff(opts["fecha"].StringValue(), opts["titulo"].StringValue())
		if err != nil {
			var validationErr *event.ValidationError
			if errors.As(err, &validationErr) {
				// the validation message is the reply text
				if err := utils.InteractRespReply(s, i, validationErr.Error()); err != nil {
					slog.Warn("agendarHandler: can't respond", "error", err)
				}
				return nil
			}
			return fmt.Errorf("agendarHandler: %w", err)
		}

		// a failed flush is already logged by the store and deliberately not
		// surfaced; the entry lives on in memory either way
		id, _ := as.EventStore.Append(context.Background(), newEvent)

		msg := fmt.Sprintf("Agendado! En caso de error usá /editarevento id:%d", id)
		if err := utils.InteractRespReply(s, i, msg); err != nil {
			slog.Warn("agendarHandler: can't respond", "error", err)
		}
		return nil
	}
}
