package event

import (
	"encoding/json"
	"log"

	"github.com/streadway/amqp"
)

// Domain event routing keys.
const (
	UserRegistered      = "user.registered"
	CourseCreated       = "course.created"
	CourseUpdated       = "course.updated"
	CourseDeleted       = "course.deleted"
	DiagnosticSubmitted = "diagnostic.submitted"
	EnrollmentCreated   = "enrollment.created"
	LessonCompleted     = "lesson.completed"
	CourseCompleted     = "course.completed"
	BadgeIssued         = "badge.issued"
)

type Publisher interface {
	Publish(eventType string, payload interface{}) error
	Close()
}

type EventPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	enabled  bool
}

// NewEventPublisher connects to RabbitMQ and declares the topic exchange.
// With an empty URL or exchange the publisher runs disabled and every
// Publish is a no-op, so callers never need a nil check.
func NewEventPublisher(amqpURL, exchange string) (*EventPublisher, error) {
	if amqpURL == "" || exchange == "" {
		log.Println("RabbitMQ not configured, domain events will not be published")
		return &EventPublisher{enabled: false}, nil
	}

	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	if err := ch.ExchangeDeclare(
		exchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		conn.Close()
		return nil, err
	}
	return &EventPublisher{conn: conn, channel: ch, exchange: exchange, enabled: true}, nil
}

// Publish sends the event with its type as the routing key.
func (p *EventPublisher) Publish(eventType string, payload interface{}) error {
	if !p.enabled {
		return nil
	}

	event := map[string]interface{}{
		"type":    eventType,
		"payload": payload,
	}
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	log.Printf("[EVENT] %s", eventType)

	return p.channel.Publish(
		p.exchange,
		eventType, // routing key
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

func (p *EventPublisher) Close() {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}
