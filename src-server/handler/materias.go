package handler

import (
	"fmt"
	"log/slog"

	"agendabot/src-server/utils"

	"github.com/bwmarrin/discordgo"
)

// Materias answers "what classes do I have" for today or another date, using
// only the weekly schedule.
func Materias(as *utils.AppState) {
	id := "materias"
	as.AddAppCmdHandler(id, materiasHandler(as))
	as.AddAppCmdInfo(id, &discordgo.ApplicationCommand{
		Name:        id,
		Description: "Qué materias se cursan hoy o en otra fecha.",
		Options:     dateOptions(),
	})
}

func materiasHandler(as *utils.AppState) func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
		target, isToday, err := targetDate(as, i)
		if err != nil {
			if err := utils.InteractRespHiddenReply(s, i, "No entendí esa fecha."); err != nil {
				slog.Warn("materiasHandler: can't respond", "error", err)
			}
			return nil
		}

		text, err := as.DescribeDate(as.Schedule.Events, target)
		if err != nil {
			slog.Error("materiasHandler: can't render events", "error", err)
			if err := utils.InteractRespHiddenReply(s, i, genericFailure); err != nil {
				slog.Warn("materiasHandler: can't respond", "error", err)
			}
			return nil
		}
		if text == "" {
			if isToday {
				text = "Hoy no cursás nada. ¡Descansá!"
			} else {
				text = fmt.Sprintf("El %s no cursás nada. ¡Descansá!", target.Format("02/01"))
			}
		}

		if err := utils.InteractRespReply(s, i, text); err != nil {
			slog.Warn("materiasHandler: can't respond", "error", err)
		}
		return nil
	}
}
