package notifications

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PartnerAssignment/internal/domain"
)

const (
	DefaultQueueSize      = 1024
	DefaultDeliverTimeout = 5 * time.Second
)

// Dispatcher асинхронно доставляет уведомления во все sink
// Notify никогда не блокирует вызывающего: при заполненной очереди сообщение отбрасывается
type Dispatcher struct {
	queue          chan Message
	sinks          []Sink
	deliverTimeout time.Duration
	metrics        Metrics
	logger         Logger

	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup
	now     func() time.Time
}

// NewDispatcher создает диспетчер с очередью заданного размера
func NewDispatcher(queueSize int, deliverTimeout time.Duration, metrics Metrics, logger Logger, sinks ...Sink) *Dispatcher {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	if deliverTimeout <= 0 {
		deliverTimeout = DefaultDeliverTimeout
	}
	return &Dispatcher{
		queue:          make(chan Message, queueSize),
		sinks:          sinks,
		deliverTimeout: deliverTimeout,
		metrics:        metrics,
		logger:         logger,
		now:            time.Now,
	}
}

// Start запускает обработчик очереди
func (d *Dispatcher) Start() {
	d.wg.Add(1)
	go d.run()

	d.logger.Info("Dispatcher: started with %d sink(s), queue size %d", len(d.sinks), cap(d.queue))
}

// Stop закрывает очередь и ждёт доставки оставшихся сообщений
// Если ctx истекает раньше, возвращает ошибку контекста
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return nil
	}
	d.stopped = true
	close(d.queue)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.logger.Info("Dispatcher: stopped")
		return nil
	case <-ctx.Done():
		d.logger.Warn("Dispatcher: stop timed out with %d message(s) pending", len(d.queue))
		return ctx.Err()
	}
}

// Notify ставит уведомление в очередь
func (d *Dispatcher) Notify(_ context.Context, userID int64, kind domain.NotificationKind, bookingID int64, payload map[string]string) error {
	msg := Message{
		ID:        uuid.NewString(),
		UserID:    userID,
		Kind:      kind,
		BookingID: bookingID,
		Payload:   copyPayload(payload),
		CreatedAt: d.now(),
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		return ErrStopped
	}

	select {
	case d.queue <- msg:
		return nil
	default:
		d.metrics.ObserveNotification(queueSinkName, resultDropped)
		d.logger.Warn("Notify: queue is full, dropped %s for user=%d booking=%d", kind, userID, bookingID)
		return ErrQueueFull
	}
}

func (d *Dispatcher) run() {
	defer d.wg.Done()

	for msg := range d.queue {
		d.deliver(msg)
	}
}

func (d *Dispatcher) deliver(msg Message) {
	for _, sink := range d.sinks {
		ctx, cancel := context.WithTimeout(context.Background(), d.deliverTimeout)
		err := sink.Deliver(ctx, msg)
		cancel()

		if err != nil {
			d.metrics.ObserveNotification(sink.Name(), resultFailed)
			d.logger.Error("Dispatcher: sink=%s failed to deliver %s id=%s to user=%d: %v",
				sink.Name(), msg.Kind, msg.ID, msg.UserID, err)
			continue
		}
		d.metrics.ObserveNotification(sink.Name(), resultDelivered)
	}
}

func copyPayload(payload map[string]string) map[string]string {
	copied := make(map[string]string, len(payload))
	for k, v := range payload {
		copied[k] = v
	}
	return copied
}
