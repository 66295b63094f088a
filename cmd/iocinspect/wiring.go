package main

import (
	"context"
	"fmt"
	"time"

	"github.com/kbukum/ioc/di"
)

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// Greeter builds a greeting.
type Greeter interface {
	Greet(name string) string
}

// Auditor records greetings. Nothing binds it, so the audited greeter
// constructor stays blocked and the cheaper one is selected.
type Auditor interface {
	Record(msg string)
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

type greeter struct {
	clock   Clock
	auditor Auditor
}

func newGreeter(clock Clock) *greeter {
	return &greeter{clock: clock}
}

func newAuditedGreeter(clock Clock, auditor Auditor) *greeter {
	return &greeter{clock: clock, auditor: auditor}
}

func (g *greeter) Greet(name string) string {
	msg := fmt.Sprintf("hello %s, it is %s", name, g.clock.Now().Format(time.Kitchen))
	if g.auditor != nil {
		g.auditor.Record(msg)
	}
	return msg
}

// wire installs the demo bindings.
func wire(ctx context.Context, c di.Container) error {
	if err := di.RegisterValue[Clock](c, systemClock{}); err != nil {
		return err
	}
	return di.RegisterType[Greeter](ctx, c, di.Implement[*greeter](
		di.Ctor2(newAuditedGreeter).Named("newAuditedGreeter"),
		di.Ctor1(newGreeter).Named("newGreeter"),
	), di.Scoped)
}
