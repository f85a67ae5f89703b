package domain

import "fmt"

// Error taxonomy exposed by the services. Handlers map these to HTTP codes;
// raw storage errors never cross the service boundary.

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func Validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

func NotFoundf(format string, args ...any) *NotFoundError {
	return &NotFoundError{Msg: fmt.Sprintf(format, args...)}
}

// TerminalStateError rejects an illegal status transition, either because the
// order already reached a terminal status or because the requested edge does
// not exist in the transition graph.
type TerminalStateError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *TerminalStateError) Error() string {
	return fmt.Sprintf("illegal status transition %s -> %s", e.From, e.To)
}

type DuplicateFeedbackError struct {
	OrderID uint64
}

func (e *DuplicateFeedbackError) Error() string {
	return fmt.Sprintf("feedback already submitted for order %d", e.OrderID)
}

// TransactionError wraps a storage failure during an atomic commit. The
// caller sees a contact-support message, not the underlying driver error.
type TransactionError struct {
	Op  string
	Err error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("transaction failed during %s: %v", e.Op, e.Err)
}

func (e *TransactionError) Unwrap() error { return e.Err }
