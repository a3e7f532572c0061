package service

// Типы событий, отправляемых в живую ленту администратора.
const (
	EventContactCreated = "contact.created"
	EventMediaUploaded  = "media.uploaded"
	EventMediaDeleted   = "media.deleted"
)

// EventPublisher доставляет события подключённым администраторам.
type EventPublisher interface {
	Publish(eventType string, data interface{})
}

type noopPublisher struct{}

func (noopPublisher) Publish(string, interface{}) {}

func publisherOrNoop(p EventPublisher) EventPublisher {
	if p == nil {
		return noopPublisher{}
	}
	return p
}
