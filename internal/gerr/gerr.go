// Package gerr defines the sentinel error kinds shared by the coord,
// board and tree packages. Callers compare against these
// with errors.Is; call sites wrap them with fmt.Errorf("...: %w", ...)
// to attach context.
package gerr

import "errors"

var (
	// ErrParse means a textual coordinate or protocol field could not be parsed.
	ErrParse = errors.New("parse error")

	// ErrInvalidCoord means a coordinate was out of board range.
	ErrInvalidCoord = errors.New("invalid coordinate")

	// ErrCoordNotEmpty means an add targeted an already-occupied cell.
	ErrCoordNotEmpty = errors.New("coordinate not empty")

	// ErrRecIsEmpty means undo was called with no moves to undo.
	ErrRecIsEmpty = errors.New("record is empty")

	// ErrRecIsFull means add was called with no capacity remaining.
	ErrRecIsFull = errors.New("record is full")

	// ErrRecIsFinished means add was called after a five was already scored.
	ErrRecIsFinished = errors.New("record is finished")

	// ErrItemNotExist means back_to or find_next targeted a coordinate not present.
	ErrItemNotExist = errors.New("item does not exist")

	// ErrTransformFailed means a checked transform produced a dirty board.
	ErrTransformFailed = errors.New("transform failed")

	// ErrCursorAtEnd means tree navigation ran past a leaf or the root.
	ErrCursorAtEnd = errors.New("cursor at end")
)
