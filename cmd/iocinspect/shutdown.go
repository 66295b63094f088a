package main

import (
	"context"

	"github.com/kbukum/ioc/logger"
)

type shutdownStep struct {
	name string
	fn   func(context.Context) error
}

// shutdownList stops started parts in reverse order. A failing step is
// logged and the rest still run.
type shutdownList struct {
	steps []shutdownStep
	// ran records the names of executed steps in order.
	ran []string
}

func (l *shutdownList) add(name string, fn func(context.Context) error) {
	l.steps = append(l.steps, shutdownStep{name: name, fn: fn})
}

func (l *shutdownList) run(log *logger.Logger) {
	if len(l.steps) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), gracefulTimeout)
	defer cancel()

	for i := len(l.steps) - 1; i >= 0; i-- {
		step := l.steps[i]
		l.ran = append(l.ran, step.name)
		if err := step.fn(ctx); err != nil {
			log.Error("Shutdown step failed", logger.Fields(
				"step", step.name,
				logger.FieldError, err.Error(),
			))
		}
	}
	l.steps = nil
	log.Info("Stopped")
}
