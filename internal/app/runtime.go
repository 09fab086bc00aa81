package app

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Rorical/ezframe/internal/config"
	"github.com/Rorical/ezframe/internal/core"
	"github.com/Rorical/ezframe/internal/engine"
	"github.com/Rorical/ezframe/internal/eventbus"
	"github.com/Rorical/ezframe/internal/frames"
	"github.com/Rorical/ezframe/internal/models"
	"github.com/Rorical/ezframe/internal/prefs"
	"github.com/Rorical/ezframe/internal/storage"
	"github.com/Rorical/ezframe/internal/watch"
)

// Runtime is the core object graph: one preference store, one frame list and
// one coordinator shared by every surface of the process.
type Runtime struct {
	Config      config.Config
	Logger      zerolog.Logger
	Storage     storage.Store
	Prefs       *prefs.Store
	Frames      *frames.List
	Engine      *engine.Command
	EventBus    *eventbus.EventBus
	Coordinator *core.Coordinator
	Service     *core.DecodeService
	Watcher     *watch.SpecWatcher
}

// NewRuntime opens storage and wires the core components. Nothing runs until
// Start.
func NewRuntime(cfg config.Config, logger zerolog.Logger) (*Runtime, error) {
	policy, err := core.ParsePolicy(cfg.Decode.Policy)
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(cfg.Storage.Driver, cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open preference storage: %w", err)
	}

	ps, err := prefs.Load(store, logger)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}

	cmd := &engine.Command{
		Path:    cfg.Decode.Command,
		Args:    cfg.Decode.Args,
		Timeout: cfg.Decode.Timeout,
		SpecPath: func() string {
			path, _ := ps.SpecFilePath()
			return path
		},
	}

	eb := eventbus.NewEventBus()
	eb.SetErrorCallback(func(e eventbus.EventBusError) {
		logger.Warn().Err(e.Err).Str("operation", e.Operation).Msg("event bus error")
	})

	coordinator := core.NewCoordinator(cmd,
		core.WithPolicy(policy),
		core.WithPublisher(eb),
		core.WithLogger(logger),
	)
	fl := frames.NewList()

	rt := &Runtime{
		Config:      cfg,
		Logger:      logger,
		Storage:     store,
		Prefs:       ps,
		Frames:      fl,
		Engine:      cmd,
		EventBus:    eb,
		Coordinator: coordinator,
		Service:     core.NewDecodeService(coordinator, fl, ps, eb, logger),
	}
	return rt, nil
}

// Start runs the decode service and watches the configured spec file.
// Subscribe surfaces before calling Start to receive the initial state.
func (rt *Runtime) Start() error {
	watcher, err := watch.New(func(path string) {
		if err := rt.EventBus.SendToCore(eventbus.SpecChangedEvent{Path: path}); err != nil {
			rt.Logger.Warn().Err(err).Str("spec", path).Msg("failed to queue spec change")
		}
	}, rt.Logger)
	if err != nil {
		return err
	}
	if err := watcher.Start(); err != nil {
		_ = watcher.Close()
		return err
	}
	rt.Watcher = watcher

	if path, ok := rt.Prefs.SpecFilePath(); ok {
		if err := watcher.Watch(path); err != nil {
			rt.Logger.Warn().Err(err).Str("spec", path).Msg("cannot watch spec file")
		}
	}
	rt.Prefs.OnChange(func(p models.Preferences) {
		if err := watcher.Watch(p.SpecFilePath); err != nil {
			rt.Logger.Warn().Err(err).Str("spec", p.SpecFilePath).Msg("cannot watch spec file")
		}
	})

	rt.Service.Start()
	return nil
}

// Close stops the service, waits for in-flight decodes and releases storage.
func (rt *Runtime) Close() error {
	var errs []error
	if rt.Watcher != nil {
		errs = append(errs, rt.Watcher.Close())
	}
	rt.Service.Stop()
	rt.Coordinator.Wait()
	rt.EventBus.Close()
	errs = append(errs, rt.Storage.Close())
	return errors.Join(errs...)
}
