package validator

// Validator validates a struct against its field tags. Failures come back
// as a V10ValidationError carrying per-field messages, which the HTTP
// layer folds into the error envelope.
type Validator interface {
	Validate(data any) error
}
