package notify

import (
	"context"
	"log"
	"time"

	"app/internal/domain/model"
)

// Sink は確定注文の外部送信先（チャット通知、スプレッドシート転記など）。
type Sink interface {
	Name() string
	Send(ctx context.Context, order model.Order) error
}

// Dispatcher は保存成功後の注文をバックグラウンドで各Sinkへ送る。
// 送信の失敗や遅延が注文処理へ波及しないよう、キューで切り離す。
// 失敗は警告ログのみでリトライしない。
type Dispatcher struct {
	sinks   []Sink
	timeout time.Duration
	queue   chan model.Order
	done    chan struct{}
}

func NewDispatcher(timeout time.Duration, sinks ...Sink) *Dispatcher {
	d := &Dispatcher{
		sinks:   sinks,
		timeout: timeout,
		queue:   make(chan model.Order, 64),
		done:    make(chan struct{}),
	}
	go d.run()
	return d
}

// Enqueue は通知を予約する。キューが一杯でも呼び出し側は待たせない。
func (d *Dispatcher) Enqueue(order model.Order) {
	select {
	case d.queue <- order:
	default:
		log.Printf("[notify] queue full, dropping notification for %s", order.UserName)
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for order := range d.queue {
		for _, s := range d.sinks {
			ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
			if err := s.Send(ctx, order); err != nil {
				log.Printf("[notify] %s failed: %v", s.Name(), err)
			}
			cancel()
		}
	}
}

// Close はキューを閉じ、残りを送り切ってから戻る。
func (d *Dispatcher) Close() {
	close(d.queue)
	<-d.done
}
