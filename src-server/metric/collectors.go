package metric

import (
	"log/slog"
	"time"

	"agendabot/src-server/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func storeFlush(as *utils.AppState, clearTickerInterval *time.Duration) {
	storeFlush := promauto.NewGauge(prometheus.GaugeOpts{
		Name: "agendabot_store_flush_microsec",
		Help: "The latency of an event store flush in microseconds",
	})
	good := true
	if err := prometheus.Register(storeFlush); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			slog.Error("can't register agendabot_store_flush_microsec metric", "error", err)
			good = false
		}
	}
	if good {
		slog.Debug("agendabot_store_flush_microsec metric registered")
		storeFlush.Set(0)
	}
	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		clearTicker := time.NewTicker(*clearTickerInterval)
		defer clearTicker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				if !prometheus.Unregister(storeFlush) {
					slog.Warn("agendabot_store_flush_microsec metric not registered")
				}
				return
			case latency := <-as.MetricChans.StoreFlush:
				storeFlush.Set(latency)
				clearTicker.Reset(*clearTickerInterval)
			case <-clearTicker.C:
				storeFlush.Set(0)
			}
		}
	}()
}

func discordSendMessage(as *utils.AppState, clearTickerInterval *time.Duration) {
	discordSendMessage := promauto.NewGauge(prometheus.GaugeOpts{
		Name: "agendabot_discord_send_message_microsec",
		Help: "The latency of a discord message send in microseconds",
	})
	good := true
	if err := prometheus.Register(discordSendMessage); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			slog.Error("can't register agendabot_discord_send_message_microsec metric", "error", err)
			good = false
		}
	}
	if good {
		slog.Debug("agendabot_discord_send_message_microsec metric registered")
		discordSendMessage.Set(0)
	}
	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		clearTicker := time.NewTicker(*clearTickerInterval)
		defer clearTicker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				if !prometheus.Unregister(discordSendMessage) {
					slog.Warn("agendabot_discord_send_message_microsec metric not registered")
				}
				return
			case latency := <-as.MetricChans.DiscordSendMessage:
				discordSendMessage.Set(latency)
				clearTicker.Reset(*clearTickerInterval)
			case <-clearTicker.C:
				discordSendMessage.Set(0)
			}
		}
	}()
}

func commandsHandled(as *utils.AppState) {
	commandsHandled := promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agendabot_commands_handled_total",
		Help: "The number of slash commands handled, per command",
	}, []string{"command"})
	if err := prometheus.Register(commandsHandled); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			slog.Error("can't register agendabot_commands_handled_total metric", "error", err)
		}
	} else {
		slog.Debug("agendabot_commands_handled_total metric registered")
	}
	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		for {
			select {
			case <-*gracefulShutdownCh:
				if !prometheus.Unregister(commandsHandled) {
					slog.Warn("agendabot_commands_handled_total metric not registered")
				}
				return
			case command := <-as.MetricChans.CommandHandled:
				commandsHandled.WithLabelValues(command).Inc()
			}
		}
	}()
}
