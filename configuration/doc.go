// Package configuration registers acorn components from a YAML file.
//
// A component file names implementation and service types through a
// [Catalog] populated by the application:
//
//	components:
//	  - type: consoleLog
//	    services: [log, report]
//	    lifetime: single-instance
//	  - type: car
//	    constructor: [engine]
//
//	cat := configuration.NewCatalog().
//		AddType("consoleLog", NewConsoleLog).
//		AddType("car", NewCar, NewCarWithLog).
//		AddService("log", acorn.Type[Log]()).
//		AddService("report", acorn.Type[Report]()).
//		AddService("engine", acorn.Type[*Engine]())
//
//	f, err := configuration.Load("components.yaml")
//	...
//	b.RegisterModule(f.Module(cat))
//
// Files may reference environment variables as ${VAR}. Values come from the
// process environment, then from a .env file in the component file's
// directory.
package configuration
