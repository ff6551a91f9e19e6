package garage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ARTM2000/acorn"
)

// ErrUnknownScenario is returned by Run for a name Scenarios does not list.
var ErrUnknownScenario = errors.New("unknown scenario")

// Scenario is one way of wiring a Car.
type Scenario struct {
	Name        string
	Description string

	register func(b *acorn.Builder, out io.Writer)
}

var scenarios = []Scenario{
	{
		Name:        "single-type",
		Description: "EmailLog as Log and as itself, Engine, Car",
		register: func(b *acorn.Builder, _ io.Writer) {
			b.RegisterType(NewEmailLog).As(acorn.Type[Log]()).AsSelf()
			b.RegisterType(NewEngine)
			b.RegisterType(NewCar, NewCarWithLog)
		},
	},
	{
		Name:        "same-type",
		Description: "EmailLog then ConsoleLog as Log, keeping EmailLog as the default",
		register: func(b *acorn.Builder, _ io.Writer) {
			b.RegisterType(NewEmailLog).As(acorn.Type[Log]())
			b.RegisterType(NewConsoleLog).As(acorn.Type[Log]()).PreserveExistingDefaults()
			b.RegisterType(NewEngine)
			b.RegisterType(NewCar, NewCarWithLog)
		},
	},
	{
		Name:        "multi-interface",
		Description: "ConsoleLog as Log and Report, EmailLog preserving the defaults",
		register: func(b *acorn.Builder, _ io.Writer) {
			b.RegisterType(NewConsoleLog).As(acorn.Type[Log](), acorn.Type[Report]()).SingleInstance()
			b.RegisterType(NewEmailLog).As(acorn.Type[Log]()).PreserveExistingDefaults()
			b.RegisterType(NewEngine)
			b.RegisterType(NewCar, NewCarWithLog)
		},
	},
	{
		Name:        "constructor",
		Description: "ConsoleLog as Log, Car pinned to NewCar(*Engine)",
		register: func(b *acorn.Builder, _ io.Writer) {
			b.RegisterType(NewConsoleLog).As(acorn.Type[Log]())
			b.RegisterType(NewEngine)
			b.RegisterType(NewCar, NewCarWithLog).UsingConstructor(acorn.Type[*Engine]())
		},
	},
	{
		Name:        "instance",
		Description: "a pre-built ConsoleLog as Log, Car pinned to NewCar(*Engine)",
		register: func(b *acorn.Builder, out io.Writer) {
			b.RegisterInstance(NewConsoleLog(out)).As(acorn.Type[Log]())
			b.RegisterType(NewEngine)
			b.RegisterType(NewCar, NewCarWithLog).UsingConstructor(acorn.Type[*Engine]())
		},
	},
}

// Scenarios lists every scenario in a stable order.
func Scenarios() []Scenario {
	return append([]Scenario(nil), scenarios...)
}

// Module registers the scenario's components. Components that print use out.
func (s Scenario) Module(out io.Writer) acorn.Module {
	return acorn.ModuleFunc(func(b *acorn.Builder) error {
		b.RegisterInstance(out).As(acorn.Type[io.Writer]())
		s.register(b, out)
		return nil
	})
}

// Run builds a container for the named scenario, resolves a Car and drives it.
func Run(ctx context.Context, name string, out io.Writer, opts ...acorn.Option) error {
	for _, s := range scenarios {
		if s.Name == name {
			return s.Run(ctx, out, opts...)
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownScenario, name)
}

// Run builds a container for s, resolves a Car and drives it.
func (s Scenario) Run(ctx context.Context, out io.Writer, opts ...acorn.Option) error {
	b := acorn.NewBuilder(opts...)
	b.RegisterModule(s.Module(out))

	c, err := b.Build()
	if err != nil {
		return fmt.Errorf("scenario %s: %w", s.Name, err)
	}

	return Drive(ctx, c)
}

// Drive resolves a Car from c, drives it, and shuts c down. When c also
// exposes a Report, the trip is reported.
func Drive(ctx context.Context, c acorn.Container) (err error) {
	defer func() {
		err = errors.Join(err, c.Shutdown(ctx))
	}()

	car, err := acorn.Resolve[*Car](c)
	if err != nil {
		return err
	}
	car.Go()

	if c.IsRegistered(acorn.Type[Report]()) {
		report, err := acorn.Resolve[Report](c)
		if err != nil {
			return err
		}
		report.Report(fmt.Sprintf("Trip finished with engine %s", car.Engine().ID()))
	}
	return nil
}
