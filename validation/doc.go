// Package validation validates configuration and launch input.
//
// Struct tag validation uses go-playground/validator and reports fields by
// their configuration key:
//
//	type Config struct {
//	    ChunkSize int `mapstructure:"chunk_size" validate:"gte=0"`
//	}
//	err := validation.Validate(&cfg)
//
// Programmatic validation collects errors:
//
//	err := validation.New().
//	    Required("path", spec.Path).
//	    NoNUL("path", spec.Path).
//	    Err()
//
// Both return *errors.AppError with code INVALID_INPUT and the failing
// fields under Details["fields"].
package validation
