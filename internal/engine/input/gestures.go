package input

import (
	"errors"
	"fmt"

	"github.com/Faultbox/terra/internal/logger"
)

// ErrNoTouchDevice is returned by gesture operations when no touch device exists.
var ErrNoTouchDevice = errors.New("no touch devices")

// RecordGesture starts recording a dollar gesture. The result arrives as an
// EventGestureRecorded event.
func (in *Input) RecordGesture() bool {
	if in.platform.NumTouchDevices() == 0 {
		logger.Error("can not record gesture: no touch devices")
		return false
	}
	return in.platform.RecordGesture()
}

// SaveGestures writes every recorded gesture to path and returns how many were saved.
func (in *Input) SaveGestures(path string) (int, error) {
	n, err := in.platform.SaveAllGestures(path)
	if err != nil {
		return 0, fmt.Errorf("saving gestures: %w", err)
	}
	return n, nil
}

// SaveGesture writes one recorded gesture to path.
func (in *Input) SaveGesture(path string, id int64) error {
	if err := in.platform.SaveGesture(id, path); err != nil {
		return fmt.Errorf("saving gesture: %w", err)
	}
	return nil
}

// LoadGestures reads gestures from path and returns how many were loaded.
func (in *Input) LoadGestures(path string) (int, error) {
	if in.platform.NumTouchDevices() == 0 {
		logger.Error("can not load gestures: no touch devices")
		return 0, ErrNoTouchDevice
	}
	n, err := in.platform.LoadGestures(path)
	if err != nil {
		return 0, fmt.Errorf("loading gestures: %w", err)
	}
	return n, nil
}
