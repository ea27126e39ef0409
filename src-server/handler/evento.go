package handler

import (
	"errors"
	"log/slog"

	"agendabot/src-server/event"
	"agendabot/src-server/utils"

	"github.com/bwmarrin/discordgo"
)

// Evento describes a single stored entry by its id, without date context.
func Evento(as *utils.AppState) {
	id := "evento"
	as.AddAppCmdHandler(id, eventoHandler(as))
	as.AddAppCmdInfo(id, &discordgo.ApplicationCommand{
		Name:        id,
		Description: "Mostrar un evento agendado.",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "id",
				Description: "El id del evento",
				Required:    true,
			},
		},
	})
}

func eventoHandler(as *utils.AppState) func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
		opts := optionMap(i)

		stored, err := as.EventStore.Get(int(opts["id"].IntValue()))
		if err != nil {
			var notFoundErr *event.NotFoundError
			if errors.As(err, &notFoundErr) {
				if err := utils.InteractRespReply(s, i, notFoundErr.Error()); err != nil {
					slog.Warn("eventoHandler: can't respond", "error", err)
				}
				return nil
			}
			return err
		}

		// nil date: describe the event on its own
		text, err := as.Formats.Render(stored, nil, as.RenderCtx)
		if err != nil {
			slog.Error("eventoHandler: can't render event", "id", stored.ID, "error", err)
			if err := utils.InteractRespHiddenReply(s, i, genericFailure); err != nil {
				slog.Warn("eventoHandler: can't respond", "error", err)
			}
			return nil
		}

		if err := utils.InteractRespReply(s, i, text); err != nil {
			slog.Warn("eventoHandler: can't respond", "error", err)
		}
		return nil
	}
}
