package interfaces

// EventPublisher pushes business events (account freezes) to an external
// broker. Publish failures are logged by the caller, never fatal to a run.
type EventPublisher interface {
	Publish(topic string, event any) error
}
