package app

import (
	"errors"
	"image"
	"log"
	"time"

	"github.com/ayusman/gridshot/internal/capture"
	"github.com/ayusman/gridshot/internal/detector"
	"github.com/ayusman/gridshot/internal/gesture"
)

// EnableGesture opens the camera and starts the capture loop. It returns
// false when no detector is available or the camera cannot be opened.
func (a *App) EnableGesture() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		return true
	}
	if a.closed {
		return false
	}
	if a.detector == nil {
		log.Println("Gesture control unavailable: no hand detector")
		return false
	}
	if err := a.camera.Open(); err != nil {
		log.Printf("Gesture control unavailable: %v", err)
		return false
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	a.stopCh = stop
	a.doneCh = done

	go a.runPipeline(a.camera, a.detector, stop, done)

	log.Println("Gesture control enabled")
	return true
}

// DisableGesture stops the capture loop and waits for it to release the camera.
func (a *App) DisableGesture() {
	a.mu.Lock()
	stop, done := a.stopCh, a.doneCh
	a.stopCh = nil
	a.doneCh = nil
	a.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-done

	log.Println("Gesture control disabled")
}

// ToggleGesture flips gesture control and reports whether it is now active.
func (a *App) ToggleGesture() bool {
	if a.GestureActive() {
		a.DisableGesture()
		return false
	}
	return a.EnableGesture()
}

// RequestGestureToggle runs ToggleGesture on its own goroutine and returns
// at once. GestureActive reports the outcome. Requests made while a toggle
// is still running are dropped.
func (a *App) RequestGestureToggle() {
	if !a.toggling.CompareAndSwap(false, true) {
		return
	}

	a.mu.RLock()
	closed := a.closed
	if !closed {
		a.toggles.Add(1)
	}
	a.mu.RUnlock()
	if closed {
		a.toggling.Store(false)
		return
	}

	go func() {
		defer a.toggles.Done()
		defer a.toggling.Store(false)
		a.ToggleGesture()
	}()
}

// GestureToggling reports whether a RequestGestureToggle is still running.
func (a *App) GestureToggling() bool {
	return a.toggling.Load()
}

// GestureActive reports whether the capture loop is running.
func (a *App) GestureActive() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.stopCh != nil
}

// runPipeline reads frames until stop is closed or the camera goes away.
// Each frame is mirrored and blurred, searched for a hand, run through
// the gesture controller and annotated for the preview stream.
// The loop owns the camera while it runs and closes it on exit.
func (a *App) runPipeline(cam capture.Camera, det detector.Detector, stop, done chan struct{}) {
	defer close(done)
	defer a.pipelineExited(stop)
	defer cam.Close()

	controller := gesture.NewController(a.config.Gesture)

	fps := cam.FPS()
	if fps <= 0 {
		fps = capture.DefaultFPS
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	failing := false

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			frame, err := cam.ReadFrame()
			if err != nil {
				if errors.Is(err, capture.ErrCameraNotOpen) {
					log.Println("Camera closed, stopping gesture control")
					return
				}
				if !failing {
					log.Printf("Error reading frame: %v", err)
					failing = true
				}
				continue
			}
			failing = false

			a.preprocess.Apply(frame)

			hands, err := det.Detect(frame)
			if err != nil {
				log.Printf("Error detecting hands: %v", err)
				hands = nil
			}

			res := controller.Process(detector.Primary(hands), frame.Cols(), frame.Rows(), a.now())
			a.intents.Post(res)
			if res.Shot != nil {
				log.Printf("Gesture shot at %.1f degrees", res.Shot.Angle)
			}

			capture.DrawOverlay(frame, overlayFor(res, a.config.Gesture.DeadZone))
			jpeg, err := capture.EncodeJPEG(frame)
			frame.Close()
			if err != nil {
				log.Printf("Error encoding frame: %v", err)
				continue
			}
			a.setFrame(jpeg)
		}
	}
}

// pipelineExited clears the loop's state. When the loop stopped on its own
// the handles are released here; DisableGesture has already cleared them otherwise.
func (a *App) pipelineExited(stop chan struct{}) {
	a.intents.Reset()
	a.setFrame(nil)

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stopCh == stop {
		a.stopCh = nil
		a.doneCh = nil
	}
}

func overlayFor(res gesture.Result, deadZone float64) capture.Overlay {
	return capture.Overlay{
		Tracked:     res.Tracked,
		Aiming:      res.Reading.AimPose,
		Shot:        res.Shot != nil,
		Wrist:       toImagePoint(res.Reading.Wrist),
		Thumb:       toImagePoint(res.Reading.Thumb),
		Index:       toImagePoint(res.Reading.Index),
		AimAngle:    res.Reading.AimAngle,
		FingerAngle: res.Reading.FingerAngle,
		DeadZone:    int(deadZone),
	}
}

func toImagePoint(p gesture.Point) image.Point {
	return image.Point{X: int(p.X), Y: int(p.Y)}
}
