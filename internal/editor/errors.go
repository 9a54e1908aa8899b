package editor

import "errors"

var (
	// ErrInvalidFile is returned by Import when the data is not a valid document.
	ErrInvalidFile      = errors.New("invalid file")
	ErrLastSlide        = errors.New("cannot delete the last slide")
	ErrSlideNotFound    = errors.New("slide not found")
	ErrElementNotFound  = errors.New("element not found")
	ErrIndexOutOfRange  = errors.New("slide index out of range")
	ErrUnknownSlideType = errors.New("unknown slide type")
	ErrNotStage         = errors.New("slide does not hold elements")
	ErrInvalidTiming    = errors.New("element timing window ends before it starts")
)
