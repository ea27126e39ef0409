package scheduler

import (
	"fmt"
	"log/slog"
	"time"

	"agendabot/src-server/event"
	"agendabot/src-server/utils"

	"github.com/robfig/cron/v3"
)

// DailyReminder broadcasts the day's agenda to the configured channels once
// per day at the configured local time. Days with nothing on are silently
// skipped. The cron job stops when the app shuts down.
func DailyReminder(as *utils.AppState) error {
	reminder := as.Schedule.Reminder
	if reminder.Time == "" || len(reminder.Channels) == 0 {
		slog.Info("daily reminder not configured, skipping")
		return nil
	}

	at, err := time.Parse("15:04", reminder.Time)
	if err != nil {
		return fmt.Errorf("DailyReminder: invalid reminder time %q: %w", reminder.Time, err)
	}

	c := cron.New(cron.WithLocation(as.Config.GetLocation()))
	spec := fmt.Sprintf("%d %d * * *", at.Minute(), at.Hour())
	if _, err := c.AddFunc(spec, func() { broadcast(as) }); err != nil {
		return fmt.Errorf("DailyReminder: %w", err)
	}
	c.Start()
	slog.Info("daily reminder scheduled", "time", reminder.Time, "channels", len(reminder.Channels))

	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		<-*gracefulShutdownCh
		<-c.Stop().Done()
		slog.Debug("daily reminder stopped")
	}()
	return nil
}

func broadcast(as *utils.AppState) {
	today := as.Today()

	text, err := as.DescribeDate(as.AllEvents(), today)
	if err != nil {
		slog.Error("broadcast: can't render today's events", "error", err)
		return
	}
	if text == "" {
		// nothing on today, nothing to say
		return
	}

	header := fmt.Sprintf(
		"Agenda del %s %s",
		utils.TitleCase(as.Schedule.WeekdayLabels[event.WeekdayOf(today)]),
		event.CanonicalDateText(today),
	)
	text = header + "\n" + text

	for _, channelID := range as.Schedule.Reminder.Channels {
		startTimer := time.Now()
		if _, err := as.DgSession.ChannelMessageSend(channelID, text); err != nil {
			slog.Error("broadcast: can't send reminder", "channel", channelID, "error", err)
			continue
		}
		as.MetricChans.DiscordSendMessage <- float64(time.Since(startTimer).Microseconds())
	}
}
