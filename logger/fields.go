package logger

import (
	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across coref.
// Use these constants instead of raw strings to ensure consistency.
const (
	FieldComponent = "component"
	FieldError     = "error"
	FieldPath      = "path"

	FieldDurationMS = "duration_ms"
	FieldCount      = "count"

	// Coreference-specific
	FieldDocID     = "doc_id"
	FieldAlgorithm = "algorithm"
	FieldPass      = "pass"
	FieldMentions  = "mentions"
	FieldEntities  = "entities"
	FieldMerges    = "merges"
	FieldDatums    = "datums"
	FieldFeature   = "feature"
	FieldWeight    = "weight"
	FieldModelID   = "model_id"
)

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	type Sieve struct {
//	    log *zap.SugaredLogger
//	}
//
//	func New() *Sieve {
//	    return &Sieve{log: logger.ComponentLogger("sieve")}
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// ChildLogger creates a child logger with additional context.
//
//	docLogger := logger.ChildLogger(base, logger.FieldDocID, d.ID)
func ChildLogger(parent *zap.SugaredLogger, keysAndValues ...interface{}) *zap.SugaredLogger {
	return parent.With(keysAndValues...)
}
