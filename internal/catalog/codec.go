package catalog

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrCorruptDocument matches every DecodeError.
var ErrCorruptDocument = errors.New("corrupt catalog document")

const (
	ReasonMalformed = "malformed"
	ReasonShape     = "shape"
)

type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode document (%s): %v", e.Reason, e.Err)
}

func (e *DecodeError) Unwrap() []error { return []error{ErrCorruptDocument, e.Err} }

// wireDocument distinguishes an absent or null array from an empty one.
type wireDocument struct {
	Users    *[]User    `json:"users" validate:"required"`
	Products *[]Product `json:"products" validate:"required"`
}

var shape = validator.New(validator.WithRequiredStructEnabled())

// DecodeDocument parses raw slot contents. Only two things are checked: the
// bytes are a JSON object whose fields decode into the model, and both users
// and products are present. Field values are taken as they are.
func DecodeDocument(raw []byte) (Document, error) {
	var w wireDocument
	if err := json.Unmarshal(raw, &w); err != nil {
		return Document{}, &DecodeError{Reason: ReasonMalformed, Err: err}
	}
	if err := shape.Struct(w); err != nil {
		return Document{}, &DecodeError{Reason: ReasonShape, Err: shapeError(err)}
	}
	return Document{Users: *w.Users, Products: *w.Products}, nil
}

// EncodeDocument is deterministic: the same document always yields the same
// bytes.
func EncodeDocument(d Document) ([]byte, error) {
	if d.Users == nil {
		d.Users = []User{}
	}
	if d.Products == nil {
		d.Products = []Product{}
	}
	return json.Marshal(d)
}

func shapeError(err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return err
	}
	fields := make([]string, 0, len(ve))
	for _, fe := range ve {
		fields = append(fields, fe.Field())
	}
	return fmt.Errorf("missing %v", fields)
}
