/*
Package ports defines the interfaces between the command engine and its
surroundings.

# Key Interfaces

  - Parser: turns a command line into a syntax tree (default: pkg/parser).
  - Executor: the engine as seen by transport adapters.
  - SessionStore: persists per-caller sessions (memory, file, Redis).
  - DistributedLocker: serializes a caller's commands across replicas.
  - AliasLoader: supplies alias definitions (config file, Loam library).
*/
package ports
