package utils

type Metric struct {
	StoreFlush         chan float64
	DiscordSendMessage chan float64
	CommandHandled     chan string
}

func NewMetric() *Metric {
	return &Metric{
		StoreFlush:         make(chan float64),
		DiscordSendMessage: make(chan float64),
		CommandHandled:     make(chan string),
	}
}
