// Package protocol implements the newline-delimited JSON wire format spoken
// with the game server: field names, the inbound line decoder and the
// outbound encoder.
package protocol

import "errors"

// Field names.
const (
	FieldOp            = "op"
	FieldKey           = "key"
	FieldError         = "error"
	FieldInit          = "init"
	FieldID            = "id"
	FieldSequence      = "seq"
	FieldSequenceAlias = "sequence"
	FieldX             = "x"
	FieldY             = "y"
	FieldZ             = "z"
	FieldNumX          = "num_x"
	FieldDenomX        = "denom_x"
	FieldNumY          = "num_y"
	FieldDenomY        = "denom_y"
	FieldWidth         = "width"
	FieldHeight        = "height"
	FieldWhoami        = "whoami"
	FieldGames         = "games"
	FieldLives         = "lives"
	FieldScore         = "score"
)

// Operations carried in FieldOp.
const (
	OpPut         = "put"
	OpMove        = "move"
	OpDelete      = "delete"
	OpStats       = "stats"
	OpHighlight   = "highlight"
	OpUnhighlight = "unhighlight"
	OpBye         = "bye"
	OpPress       = "press"
	OpRelease     = "release"
)

// Fatal decode errors. Every one of them ends the session.
var (
	ErrBadJSON      = errors.New("protocol: bad JSON")
	ErrMissingField = errors.New("protocol: expected JSON key")
	ErrFieldType    = errors.New("protocol: mismatched JSON value type")
	ErrUnknownOp    = errors.New("protocol: unknown command")
	ErrServerError  = errors.New("protocol: server failure")
)
