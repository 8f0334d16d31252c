package depot

import (
	"fmt"

	"github.com/rotisserie/eris"
)

// Error categories. Every error type below matches exactly one
// of them under errors.Is.
var (
	ErrInvalidArgument = eris.New("invalid argument")
	ErrState           = eris.New("invalid state")
	ErrUnsupported     = eris.New("unsupported operation")
)

type IndexOutOfRangeError struct {
	Index, Length int
}

func (e IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("index %d out of range [0, %d)", e.Index, e.Length)
}

func (e IndexOutOfRangeError) Is(target error) bool {
	return target == ErrInvalidArgument
}

type EntityOutOfRangeError struct {
	Entity, Capacity int
}

func (e EntityOutOfRangeError) Error() string {
	return fmt.Sprintf("entity %d out of range [0, %d)", e.Entity, e.Capacity)
}

func (e EntityOutOfRangeError) Is(target error) bool {
	return target == ErrInvalidArgument
}

type EntityNotFoundError struct {
	Entity int
}

func (e EntityNotFoundError) Error() string {
	return fmt.Sprintf("entity %d is not in the set", e.Entity)
}

func (e EntityNotFoundError) Is(target error) bool {
	return target == ErrInvalidArgument
}

type ComponentExistsError struct {
	Entity int
	Kind   Kind
}

func (e ComponentExistsError) Error() string {
	return fmt.Sprintf("component already exists on entity %d: %s", e.Entity, e.Kind)
}

func (e ComponentExistsError) Is(target error) bool {
	return target == ErrInvalidArgument
}

type ComponentNotFoundError struct {
	Entity int
	Kind   Kind
}

func (e ComponentNotFoundError) Error() string {
	return fmt.Sprintf("component does not exist on entity %d: %s", e.Entity, e.Kind)
}

func (e ComponentNotFoundError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// RecordSizeError reports a value list or destination slice whose length does
// not match the record width
type RecordSizeError struct {
	Got, Want int
}

func (e RecordSizeError) Error() string {
	return fmt.Sprintf("record has %d values, want %d", e.Got, e.Want)
}

func (e RecordSizeError) Is(target error) bool {
	return target == ErrInvalidArgument
}

type TrimError struct {
	Slots, Capacity int
}

func (e TrimError) Error() string {
	return fmt.Sprintf("cannot trim %d slots from a capacity of %d", e.Slots, e.Capacity)
}

func (e TrimError) Is(target error) bool {
	return target == ErrInvalidArgument
}

type InvalidConfigError struct {
	Reason string
}

func (e InvalidConfigError) Error() string {
	return "invalid config: " + e.Reason
}

func (e InvalidConfigError) Is(target error) bool {
	return target == ErrInvalidArgument
}

type CapacityReachedError struct {
	Kind     Kind
	Capacity int
}

func (e CapacityReachedError) Error() string {
	return fmt.Sprintf("%s manager is at capacity (%d)", e.Kind, e.Capacity)
}

func (e CapacityReachedError) Is(target error) bool {
	return target == ErrState
}

type MaxCapacityError struct {
	Records int
}

func (e MaxCapacityError) Error() string {
	return fmt.Sprintf("field storage already at maximum capacity (%d records)", e.Records)
}

func (e MaxCapacityError) Is(target error) bool {
	return target == ErrState
}

type LockedManagerError struct {
	Kind Kind
}

func (e LockedManagerError) Error() string {
	return fmt.Sprintf("%s manager is currently locked", e.Kind)
}

func (e LockedManagerError) Is(target error) bool {
	return target == ErrState
}

type DefaultUnsupportedError struct {
	Kind Kind
}

func (e DefaultUnsupportedError) Error() string {
	return fmt.Sprintf("%s has no default value, add it with explicit data", e.Kind)
}

func (e DefaultUnsupportedError) Is(target error) bool {
	return target == ErrUnsupported
}
