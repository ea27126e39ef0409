package metric

import (
	"time"

	"agendabot/src-server/utils"
)

// Init registers the Prometheus collectors and starts the goroutines feeding
// them from the AppState metric channels. Call once, after NewAppState.
func Init(as *utils.AppState) {
	clearTickerInterval := 5 * time.Minute

	storeFlush(as, &clearTickerInterval)
	discordSendMessage(as, &clearTickerInterval)
	commandsHandled(as)
}
