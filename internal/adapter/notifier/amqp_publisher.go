package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/srgjo27/seatlock/internal/core/domain"
)

const ConfirmedQueue = "reservation.confirmed"

type ReservationConfirmedEvent struct {
	ReservationID uuid.UUID     `json:"reservation_id"`
	UserID        string        `json:"user_id"`
	EventID       uuid.UUID     `json:"event_id"`
	Seats         []domain.Seat `json:"seats"`
	ConfirmedAt   time.Time     `json:"confirmed_at"`
}

// AMQPPublisher sends a message to the reservation.confirmed queue for
// every confirmed reservation. It dials per message, so a broker outage
// only costs the messages sent while it is down.
type AMQPPublisher struct {
	url    string
	logger *slog.Logger
	now    func() time.Time
}

func NewAMQPPublisher(url string, logger *slog.Logger) *AMQPPublisher {
	return &AMQPPublisher{
		url:    url,
		logger: logger.With("component", "amqp-publisher"),
		now:    time.Now,
	}
}

func (p *AMQPPublisher) message(res domain.Reservation) (amqp.Publishing, error) {
	body, err := json.Marshal(ReservationConfirmedEvent{
		ReservationID: res.ID,
		UserID:        res.UserID,
		EventID:       res.EventID,
		Seats:         res.Seats,
		ConfirmedAt:   p.now().UTC(),
	})
	if err != nil {
		return amqp.Publishing{}, err
	}

	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    p.now().UTC(),
		MessageId:    res.ID.String(),
		Body:         body,
	}, nil
}

func (p *AMQPPublisher) Confirmed(ctx context.Context, res domain.Reservation) error {
	pub, err := p.message(res)
	if err != nil {
		return fmt.Errorf("marshal confirmed event: %w", err)
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.logger.Warn("dial failed", "error", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.logger.Warn("channel open failed", "error", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(ConfirmedQueue, true, false, false, false, nil); err != nil {
		p.logger.Warn("queue declare failed", "error", err)
		return err
	}

	if err := ch.PublishWithContext(ctx, "", ConfirmedQueue, false, false, pub); err != nil {
		p.logger.Warn("publish failed", "reservation_id", res.ID, "error", err)
		return err
	}

	return nil
}
