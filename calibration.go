package ar

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// Calibration holds the platform tuning parameters applied to raw
// backend data. The vertical offset in particular originated as a
// seated eye-height baseline on the first supported platform; its
// correct value varies per backend and device, so it is configuration
// rather than a constant.
type Calibration struct {
	// EyeHeightOffset is added to the Y component of every raw backend
	// pose before it enters tracker space, in meters. Compensates for
	// backends that report poses relative to the device rather than the
	// floor.
	EyeHeightOffset float64 `yaml:"eye_height_offset"`

	// StaleFrameBudget is the number of update turns an anchor may go
	// unconfirmed before it is marked stale.
	StaleFrameBudget uint64 `yaml:"stale_frame_budget"`
}

// DefaultCalibration returns the baseline tuning.
func DefaultCalibration() Calibration {
	return Calibration{
		EyeHeightOffset:  1.1, // seated eye height, meters
		StaleFrameBudget: 60,  // one second at 60fps
	}
}

// LoadCalibration reads calibration overrides from a YAML file. Fields
// absent from the file keep their defaults.
func LoadCalibration(path string) (Calibration, error) {
	c := DefaultCalibration()
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("ar: read calibration: %w", err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("ar: parse calibration %s: %w", path, err)
	}
	return c, nil
}

// CalibrationWatcher reloads a calibration file whenever it changes on
// disk, for live tuning during bring-up on a new device.
type CalibrationWatcher struct {
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// WatchCalibration watches path and invokes fn with the freshly loaded
// calibration after each write. Parse failures are logged and skipped;
// the previous calibration stays in effect. Call Close to stop
// watching.
//
// The directory is watched rather than the file itself so that
// atomic-rename editors (and most config deploy tools) still trigger
// reloads.
func WatchCalibration(path string, fn func(Calibration)) (*CalibrationWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("ar: watch calibration: %w", err)
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, fmt.Errorf("ar: watch calibration: %w", err)
	}

	cw := &CalibrationWatcher{watcher: w, done: make(chan struct{})}
	target := filepath.Clean(path)

	go func() {
		defer close(cw.done)
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				c, err := LoadCalibration(target)
				if err != nil {
					Logger().Warn("ar: calibration reload failed", "path", target, "error", err)
					continue
				}
				Logger().Info("ar: calibration reloaded", "path", target)
				fn(c)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				Logger().Warn("ar: calibration watcher error", "error", err)
			}
		}
	}()

	return cw, nil
}

// Close stops the watcher and waits for its goroutine to exit.
func (cw *CalibrationWatcher) Close() error {
	err := cw.watcher.Close()
	<-cw.done
	return err
}
