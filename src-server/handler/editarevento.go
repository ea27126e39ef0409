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

// EditarEvento overwrites a stored entry with a freshly validated
// replacement; the id never changes. Edits validate exactly like creation.
func EditarEvento(as *utils.AppState) {
	id := "editarevento"
	as.AddAppCmdHandler(id, editarEventoHandler(as))
	as.AddAppCmdInfo(id, &discordgo.ApplicationCommand{
		Name:        id,
		Description: "Corregir un evento agendado.",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "id",
				Description: "El id del evento",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "fecha",
				Description: "La nueva fecha, ej. 16/03/2025",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "titulo",
				Description: "El nuevo título (mínimo 5 letras)",
				Required:    true,
			},
		},
	})
}

func editarEventoHandler(as *utils.AppState) func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
		opts := optionMap(i)
		id := int(opts["id"].IntValue())

		replacement, err := as.Factory.OneOff(opts["fecha"].StringValue(), opts["titulo"].StringValue())
		if err != nil {
			var validationErr *event.ValidationError
			if errors.As(err, &validationErr) {
				if err := utils.InteractRespReply(s, i, validationErr.Error()); err != nil {
					slog.Warn("editarEventoHandler: can't respond", "error", err)
				}
				return nil
			}
			return fmt.Errorf("editarEventoHandler: %w", err)
		}

		if err := as.EventStore.Update(context.Background(), id, replacement.AsPatch()); err != nil {
			var notFoundErr *event.NotFoundError
			if errors.As(err, &notFoundErr) {
				if err := utils.InteractRespReply(s, i, notFoundErr.Error()); err != nil {
					slog.Warn("editarEventoHandler: can't respond", "error", err)
				}
				return nil
			}
			// flush failure: logged by the store, not surfaced
			var persistenceErr *event.PersistenceError
			if !errors.As(err, &persistenceErr) {
				return fmt.Errorf("editarEventoHandler: %w", err)
			}
		}

		msg := fmt.Sprintf("Modificado! Si te equivocaste de vuelta usá /editarevento id:%d", id)
		if err := utils.InteractRespReply(s, i, msg); err != nil {
			slog.Warn("editarEventoHandler: can't respond", "error", err)
		}
		return nil
	}
}
