// Package core owns the shared decode state and the service loop that feeds
// it from UI requests.
//
// A Coordinator is built once per program by app.NewRuntime and handed
// to every consumer; there is no package-level instance.
package core

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Rorical/ezframe/internal/engine"
	"github.com/Rorical/ezframe/internal/eventbus"
	"github.com/Rorical/ezframe/internal/models"
)

// Publisher receives a core event after every state transition.
type Publisher interface {
	Publish(event eventbus.CoreEvent)
}

type Option func(*Coordinator)

func WithPolicy(p Policy) Option {
	return func(c *Coordinator) { c.policy = p }
}

func WithPublisher(p Publisher) Option {
	return func(c *Coordinator) { c.publisher = p }
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Coordinator) { c.logger = l }
}

// Coordinator runs decode attempts against a Decoder and records their
// outcome in a DecodeState shared by every consumer.
type Coordinator struct {
	decoder   engine.Decoder
	state     *DecodeState
	policy    Policy
	publisher Publisher
	pubMu     sync.Mutex
	logger    zerolog.Logger
	ctx       context.Context
	cancel    context.CancelFunc
}

func NewCoordinator(decoder engine.Decoder, opts ...Option) *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Coordinator{
		decoder: decoder,
		state:   NewDecodeState(),
		policy:  LastCompleted,
		logger:  zerolog.Nop(),
		ctx:     ctx,
		cancel:  cancel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type attempt struct {
	id    string
	seq   uint64
	frame string
}

// Run decodes frame and blocks until the outcome has been recorded. It never
// fails: engine errors become the state's Error.
func (c *Coordinator) Run(ctx context.Context, frame string) {
	c.complete(ctx, c.start(frame))
}

// Submit starts an attempt and returns immediately. The attempt is issued
// before Submit returns, so two Submits are issued in call order.
func (c *Coordinator) Submit(frame string) {
	a := c.start(frame)
	go c.complete(c.ctx, a)
}

func (c *Coordinator) start(frame string) attempt {
	a := attempt{id: uuid.NewString(), frame: frame}
	a.seq = c.state.begin(frame, a.id)
	c.logger.Debug().Str("attempt", a.id).Uint64("seq", a.seq).Str("frame", frame).Msg("decode started")
	c.publish()
	return a
}

func (c *Coordinator) complete(ctx context.Context, a attempt) {
	value, err := c.invoke(ctx, a.frame)

	var applied bool
	if err != nil {
		msg := err.Error()
		if msg == "" {
			msg = "decode failed"
		}
		applied = c.state.finishWithError(a.seq, a.frame, a.id, msg, c.policy)
	} else {
		applied = c.state.finishWithResult(a.seq, a.frame, a.id, value, c.policy)
	}

	switch {
	case !applied:
		c.logger.Debug().Str("attempt", a.id).Uint64("seq", a.seq).Msg("discarding superseded decode outcome")
	case err != nil:
		c.logger.Info().Str("attempt", a.id).Str("frame", a.frame).Err(err).Msg("decode failed")
	default:
		c.logger.Debug().Str("attempt", a.id).Msg("decode succeeded")
	}
	c.publish()
}

// invoke calls the decoder, turning a panic into an error.
func (c *Coordinator) invoke(ctx context.Context, frame string) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("decoder panic: %v", r)
		}
	}()
	return c.decoder.Decode(ctx, frame)
}

// publish sends the state as it is now. The snapshot is taken under pubMu so
// subscribers see versions in increasing order.
func (c *Coordinator) publish() {
	if c.publisher == nil {
		return
	}
	c.pubMu.Lock()
	defer c.pubMu.Unlock()
	c.publisher.Publish(eventbus.DecodeStateEvent{State: c.state.Snapshot()})
}

func (c *Coordinator) Snapshot() models.DecodeSnapshot {
	return c.state.Snapshot()
}

// Result returns the last decoded value, ok is false unless the state is Succeeded.
func (c *Coordinator) Result() (any, bool) {
	s := c.state.Snapshot()
	return s.Result, s.HasResult()
}

// Error returns the last failure message, empty unless the state is Failed.
func (c *Coordinator) Error() string {
	return c.state.Snapshot().Error
}

func (c *Coordinator) Policy() Policy {
	return c.policy
}

// Wait blocks until every issued attempt has resolved.
func (c *Coordinator) Wait() {
	c.state.Wait()
}

// Stop cancels attempts started with Submit.
func (c *Coordinator) Stop() {
	c.cancel()
}
