package garage

import (
	"fmt"

	"github.com/google/uuid"
)

// Engine drives a Car and logs every command it receives.
type Engine struct {
	id  uuid.UUID
	log Log
}

// NewEngine creates an Engine with a fresh identity.
func NewEngine(log Log) *Engine {
	return &Engine{id: uuid.New(), log: log}
}

// ID identifies the engine.
func (e *Engine) ID() uuid.UUID { return e.id }

// Ahead runs the engine forward with the given power.
func (e *Engine) Ahead(power int) {
	e.log.Write(fmt.Sprintf("Engine [%s] ahead %d", e.id, power))
}

// Car moves forward using its Engine.
type Car struct {
	engine *Engine
	log    Log
}

// NewCar creates a Car that reports to an EmailLog.
func NewCar(engine *Engine) *Car {
	return &Car{engine: engine, log: NewEmailLog(stdout)}
}

// NewCarWithLog creates a Car that reports to log.
func NewCarWithLog(engine *Engine, log Log) *Car {
	return &Car{engine: engine, log: log}
}

// Engine returns the engine driving the car.
func (c *Car) Engine() *Engine { return c.engine }

// Log returns where the car reports its trips.
func (c *Car) Log() Log { return c.log }

// Go drives the car forward.
func (c *Car) Go() {
	c.engine.Ahead(100)
	c.log.Write("Car going forward...")
}
