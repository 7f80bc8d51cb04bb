// Package ports defines the interfaces the application services depend
// on. Implementations live in internal/infrastructure; services never
// import infrastructure directly, so the resolution logic can be tested
// against in-memory fakes.
package ports
