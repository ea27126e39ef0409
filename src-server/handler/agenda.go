package handler

import (
	"fmt"
	"log/slog"

	"agendabot/src-server/utils"

	"github.com/bwmarrin/discordgo"
)

// Agenda answers "what's on" for today or another date: weekly classes plus
// the one-off entries people agendared through chat.
func Agenda(as *utils.AppState) {
	id := "agenda"
	as.AddAppCmdHandler(id, agendaHandler(as))
	as.AddAppCmdInfo(id, &discordgo.ApplicationCommand{
		Name:        id,
		Description: "Todo lo que hay para hacer hoy o en otra fecha.",
		Options:     dateOptions(),
	})
}

func agendaHandler(as *utils.AppState) func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
		target, isToday, err := targetDate(as, i)
		if err != nil {
			if err := utils.InteractRespHiddenReply(s, i, "No entendí esa fecha."); err != nil {
				slog.Warn("agendaHandler: can't respond", "error", err)
			}
			return nil
		}

		text, err := as.DescribeDate(as.AllEvents(), target)
		if err != nil {
			slog.Error("agendaHandler: can't render events", "error", err)
			if err := utils.InteractRespHiddenReply(s, i, genericFailure); err != nil {
				slog.Warn("agendaHandler: can't respond", "error", err)
			}
			return nil
		}
		if text == "" {
			if isToday {
				text = "Hoy no hay nada para hacer, que aburrido :("
			} else {
				text = fmt.Sprintf("El %s no hay nada para hacer, que aburrido :(", target.Format("02/01"))
			}
		}

		if err := utils.InteractRespReply(s, i, text); err != nil {
			slog.Warn("agendaHandler: can't respond", "error", err)
		}
		return nil
	}
}
