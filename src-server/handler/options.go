package handler

import (
	"fmt"
	"time"

	"agendabot/src-server/event"
	"agendabot/src-server/utils"

	"github.com/bwmarrin/discordgo"
)

// genericFailure is what users see when something internal broke.
const genericFailure = "Algo salió mal, probá de nuevo en un rato."

func optionMap(i *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	options := i.ApplicationCommandData().Options
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		m[opt.Name] = opt
	}
	return m
}

// targetDate works out which calendar day a query command is about: today by
// default, today+N with the "dias" offset, or a natural-language "fecha"
// ("tomorrow", "next friday"). isToday drives the wording of the empty-day
// reply.
func targetDate(as *utils.AppState, i *discordgo.InteractionCreate) (target time.Time, isToday bool, err error) {
	opts := optionMap(i)
	now := as.Today()

	if opt, ok := opts["fecha"]; ok {
		parsed, err := as.When.Parse(opt.StringValue(), now)
		if err != nil || parsed == nil {
			return time.Time{}, false, fmt.Errorf("targetDate: can't parse %q", opt.StringValue())
		}
		target := parsed.Time.In(as.Config.GetLocation())
		return target, sameDate(target, now), nil
	}
	if opt, ok := opts["dias"]; ok {
		offset := int(opt.IntValue())
		return now.AddDate(0, 0, offset), offset == 0, nil
	}
	return now, true, nil
}

func sameDate(a, b time.Time) bool {
	return event.CanonicalDateText(a) == event.CanonicalDateText(b)
}

// dateOptions are the shared "dias"/"fecha" options of the query commands.
func dateOptions() []*discordgo.ApplicationCommandOption {
	return []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "dias",
			Description: "Cuántos días hacia adelante (o atrás, con negativos)",
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "fecha",
			Description: "Una fecha en lenguaje natural (en inglés), ej. tomorrow",
		},
	}
}
