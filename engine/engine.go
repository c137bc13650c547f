// Package engine provides translation engine invokers and engine discovery.
package engine

import "github.com/ZaguanLabs/gotrans"

// Invoker is an alias to the main package interface for convenience.
type Invoker = gotrans.EngineInvoker

// ID is an alias to the main package type.
type ID = gotrans.EngineID
