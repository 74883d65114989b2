package notifier

// Sender delivers one alert or report message to a destination channel.
// Delivery failures are the sender's caller's problem only to the extent of
// logging; they never propagate into the evaluation flow.
type Sender interface {
	Send(text string) error
	Name() string
}
