// Package domain contains the core race model for Hippodrome.
//
// The domain is transport- and persistence-agnostic: it does not depend on YAML parsing,
// the terminal, or the filesystem. Infra/adapters map into/from these types.
// Result types carry JSON tags because the same shape is printed, stored and queried.
package domain
