package utils

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"sync"
	"time"

	"agendabot/src-server/event"
	"agendabot/src-server/format"
	"agendabot/src-server/schedule"
	"agendabot/src-server/store"

	"github.com/bwmarrin/discordgo"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

type AppState struct {
	Config    *Config
	RawDB     *sql.DB
	BunDB     *bun.DB
	DgSession *discordgo.Session
	When      *when.Parser

	// EventStore holds the chat-created one-off entries.
	EventStore *store.Store
	// Schedule holds the config-defined weekly classes.
	Schedule *schedule.Schedule
	Factory  *event.Factory
	Formats  *format.Registry
	// RenderCtx is the shared read-only context every renderer receives.
	RenderCtx format.Context

	MetricChans        *Metric
	AppCloseSignalChan chan os.Signal

	// will be sent to Discord
	appCmdInfo map[string]*discordgo.ApplicationCommand
	// handling commands from the Discord WSAPI
	appCmdHandler map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate) error

	startedAt time.Time

	shutdownMutex sync.Mutex
	shutdownChans []*chan struct{}
}

func NewAppState() *AppState {
	as := &AppState{
		appCmdInfo:         make(map[string]*discordgo.ApplicationCommand),
		appCmdHandler:      make(map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate) error),
		MetricChans:        NewMetric(),
		AppCloseSignalChan: make(chan os.Signal, 1),
		startedAt:          time.Now(),
	}

	// date parser for the optional natural "fecha" option
	as.When = when.New(nil)
	as.When.Add(en.All...)
	as.When.Add(common.All...)

	// env
	as.Config = NewConfig()

	// weekly class schedule + domain config
	var err error
	as.Schedule, err = schedule.Load(as.Config.GetSchedulePath())
	if err != nil {
		slog.Error("cannot load schedule file", "error", err)
		os.Exit(1)
	}

	// database
	as.RawDB, err = sql.Open(sqliteshim.ShimName, as.Config.GetDatabasePath()+"?mode=rwc")
	if err != nil {
		slog.Error("cannot open sqlite database", "error", err)
		os.Exit(1)
	}
	as.RawDB.SetMaxIdleConns(8)
	as.BunDB = bun.NewDB(as.RawDB, sqlitedialect.New())

	if err := store.CreateSchema(as.BunDB); err != nil {
		slog.Error("cannot create database schema", "error", err)
		os.Exit(1)
	}
	as.EventStore = store.New(as.BunDB)
	as.EventStore.FlushLatency = as.MetricChans.StoreFlush
	if err := as.EventStore.Load(context.Background()); err != nil {
		// a store that doesn't parse back is corrupt; no partial recovery
		slog.Error("cannot load event store", "error", err)
		os.Exit(1)
	}

	as.Factory = &event.Factory{Formats: as.Schedule.DateFormats}
	as.Formats = format.NewDefaultRegistry()
	as.RenderCtx = format.Context{
		WeekdayLabels: as.Schedule.WeekdayLabels,
		Rooms:         as.Schedule.Rooms,
		Location:      as.Config.GetLocation(),
	}

	// discord session
	as.DgSession, err = discordgo.New("Bot " + as.Config.GetDiscordAppToken())
	if err != nil {
		slog.Error("cannot create discord session", "error", err)
		os.Exit(1)
	}

	return as
}

func (as *AppState) AddAppCmdInfo(id string, info *discordgo.ApplicationCommand) {
	as.appCmdInfo[id] = info
}

func (as *AppState) AddAppCmdHandler(id string, handler func(s *discordgo.Session, i *discordgo.InteractionCreate) error) {
	as.appCmdHandler[id] = handler
}

func (as *AppState) GetAppCmdHandler(id string) (func(s *discordgo.Session, i *discordgo.InteractionCreate) error, bool) {
	handler, ok := as.appCmdHandler[id]
	return handler, ok
}

func (as *AppState) IterateAppCmdInfo(fn func(k string, v *discordgo.ApplicationCommand)) {
	for k, v := range as.appCmdInfo {
		fn(k, v)
	}
}

// NukeAppCmdInfo drops the command info map once it has been sent to Discord.
func (as *AppState) NukeAppCmdInfo() {
	as.appCmdInfo = make(map[string]*discordgo.ApplicationCommand)
}

func (as *AppState) GetUptime() time.Duration {
	return time.Since(as.startedAt)
}

// Today returns the current time in the configured location.
func (as *AppState) Today() time.Time {
	return time.Now().In(as.Config.GetLocation())
}

// IsAuthorized checks the interaction's user and channel against the
// configured allow-list. An empty list allows everyone.
func (as *AppState) IsAuthorized(i *discordgo.InteractionCreate) bool {
	if len(as.Schedule.Authorized) == 0 {
		return true
	}
	candidates := []string{i.ChannelID}
	if i.Member != nil && i.Member.User != nil {
		candidates = append(candidates, i.Member.User.ID, i.Member.User.Username)
	}
	if i.User != nil {
		candidates = append(candidates, i.User.ID, i.User.Username)
	}
	for _, id := range as.Schedule.Authorized {
		for _, candidate := range candidates {
			if id == candidate {
				return true
			}
		}
	}
	return false
}

// CreateGracefulShutdownChan hands out a channel that closes when the app is
// shutting down; metric exporters and the reminder cron listen on it.
func (as *AppState) CreateGracefulShutdownChan() *chan struct{} {
	as.shutdownMutex.Lock()
	defer as.shutdownMutex.Unlock()
	ch := make(chan struct{})
	as.shutdownChans = append(as.shutdownChans, &ch)
	return &ch
}

func (as *AppState) GracefulShutdown() {
	as.shutdownMutex.Lock()
	defer as.shutdownMutex.Unlock()
	for _, ch := range as.shutdownChans {
		close(*ch)
	}
	as.shutdownChans = nil
}
