package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agendabot/src-server/handler"
	"agendabot/src-server/metric"
	"agendabot/src-server/scheduler"
	"agendabot/src-server/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func init() {
	if err := godotenv.Load(); err != nil {
		slog.Info(err.Error())
	}
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.RFC1123Z,
		}),
	))
}

func main() {
	// AppState carries the config, the event store, the weekly schedule, the
	// formatter registry and the slash command info/handler maps.
	as := utils.NewAppState()

	// injecting the slash commands into AppState
	handler.Materias(as)
	handler.Agenda(as)
	handler.Agendar(as)
	handler.Evento(as)
	handler.EditarEvento(as)
	handler.Sugerencia(as)
	handler.Ping(as)

	// tell discordgo how to handle interactions from Discord
	as.DgSession.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		if i.Type != discordgo.InteractionApplicationCommand {
			slog.Error("unknown interaction type", "type", i.Type)
			return
		}
		cmdData := i.ApplicationCommandData()

		requestID := uuid.NewString()
		username := func(i *discordgo.InteractionCreate) string {
			switch {
			case i.Member != nil && i.Member.User != nil:
				return i.Member.User.Username
			case i.User != nil:
				return i.User.Username
			default:
				return "unknown"
			}
		}(i)
		slog.Info("command received",
			"request_id", requestID,
			"command", cmdData.Name,
			"username", username,
			"channel_id", i.ChannelID)

		// unauthorized commands are logged and dropped, no reply
		if !as.IsAuthorized(i) {
			slog.Warn("unauthorized command dropped",
				"request_id", requestID,
				"command", cmdData.Name,
				"username", username)
			return
		}

		cmdHandler, ok := as.GetAppCmdHandler(cmdData.Name)
		if !ok {
			slog.Error("no handler for command", "request_id", requestID, "command", cmdData.Name)
			return
		}
		if err := cmdHandler(s, i); err != nil {
			slog.Error("handler error", "request_id", requestID, "command", cmdData.Name, "error", err)
			return
		}
		as.MetricChans.CommandHandled <- cmdData.Name
	})

	go metric.Init(as)

	// open a connection to Discord
	if err := as.DgSession.Open(); err != nil {
		slog.Error("error opening connection", "error", err)
		os.Exit(1)
	}
	defer as.DgSession.Close()

	// tell Discord what commands we have
	if _, err := as.DgSession.ApplicationCommandBulkOverwrite(
		as.Config.GetDiscordClientId(),
		as.Config.GetDiscordGuildID(),
		func() []*discordgo.ApplicationCommand {
			var cmds []*discordgo.ApplicationCommand
			as.IterateAppCmdInfo(func(k string, v *discordgo.ApplicationCommand) {
				cmds = append(cmds, v)
			})
			return cmds
		}()); err != nil {
		slog.Error("can't create slash commands", "error", err.Error())
	}
	as.NukeAppCmdInfo()

	// daily reminder broadcast
	if err := scheduler.DailyReminder(as); err != nil {
		slog.Error("can't schedule daily reminder", "error", err)
		os.Exit(1)
	}

	// http server for the metrics endpoint
	go func() {
		muxer := http.NewServeMux()
		muxer.Handle("GET /metrics", promhttp.Handler())
		if err := http.ListenAndServe(":"+as.Config.GetPort(), muxer); err != nil {
			slog.Error("cannot start HTTP server", "error", err)
			as.AppCloseSignalChan <- syscall.SIGTERM
		}
	}()

	slog.Info("app is now running, press Ctrl+C to exit",
		"materias", len(as.Schedule.Events),
		"eventos", as.EventStore.Len())

	signal.Notify(as.AppCloseSignalChan, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-as.AppCloseSignalChan
	as.GracefulShutdown()

	slog.Info("Gracefully shutting down...")
}
