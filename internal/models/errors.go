package models

// ValidationReason classifies why a request body failed validation so that
// callers can branch on the kind of failure instead of matching message text.
type ValidationReason int

const (
	// ReasonMalformedBody means the request body was absent or not a JSON object.
	ReasonMalformedBody ValidationReason = iota
	// ReasonInvalidPrice means the price was present but neither numeric,
	// a numeric string, nor the empty string.
	ReasonInvalidPrice
	// ReasonMissingField means a required field was absent from the body.
	ReasonMissingField
	// ReasonMissingID means an update was attempted on a product that has
	// never been persisted.
	ReasonMissingID
)

// ValidationError is the single error kind produced by product validation.
type ValidationError struct {
	Reason  ValidationReason
	Field   string // set when Reason is ReasonMissingField
	message string
}

func (e *ValidationError) Error() string {
	return e.message
}

// ErrMalformedBody reports an absent or non-object request body.
func ErrMalformedBody() *ValidationError {
	return &ValidationError{
		Reason:  ReasonMalformedBody,
		message: "Invalid product: body of request contained bad or no data",
	}
}

// ErrInvalidPrice reports a price that is neither a number, a numeric
// string, nor the empty string.
func ErrInvalidPrice() *ValidationError {
	return &ValidationError{
		Reason:  ReasonInvalidPrice,
		message: "Invalid Price Input",
	}
}

// ErrMissingField reports a required field absent from the request body.
func ErrMissingField(field string) *ValidationError {
	return &ValidationError{
		Reason:  ReasonMissingField,
		Field:   field,
		message: "Invalid product : missing " + field,
	}
}

// ErrMissingID reports an update attempted before the product was persisted.
func ErrMissingID() *ValidationError {
	return &ValidationError{
		Reason:  ReasonMissingID,
		message: "Update called with empty ID field",
	}
}
