package capture

import (
	"image"
	"sync"

	"gocv.io/x/gocv"
)

// DefaultBlurSize is the Gaussian kernel applied before hand detection.
const DefaultBlurSize = 5

// Preprocessor prepares raw camera frames for hand detection.
//
// Frames are mirrored horizontally so that moving the hand to the right
// moves it right on screen, then blurred to suppress sensor noise that
// makes landmarks jitter between frames.
type Preprocessor struct {
	mirror   bool
	blurSize int
	scratch  gocv.Mat
	mu       sync.Mutex
}

// NewPreprocessor creates a Preprocessor. Even blur sizes are rounded up to
// the next odd value; sizes of 1 or less disable blurring.
func NewPreprocessor(mirror bool, blurSize int) *Preprocessor {
	if blurSize > 1 && blurSize%2 == 0 {
		blurSize++
	}
	return &Preprocessor{
		mirror:   mirror,
		blurSize: blurSize,
		scratch:  gocv.NewMat(),
	}
}

// Apply mirrors and blurs frame in place.
func (p *Preprocessor) Apply(frame *gocv.Mat) {
	if frame == nil || frame.Empty() {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.mirror {
		gocv.Flip(*frame, &p.scratch, 1)
		p.scratch.CopyTo(frame)
	}

	if p.blurSize > 1 {
		gocv.GaussianBlur(*frame, &p.scratch, image.Point{X: p.blurSize, Y: p.blurSize}, 0, 0, gocv.BorderDefault)
		p.scratch.CopyTo(frame)
	}
}

// Close releases the scratch buffer.
func (p *Preprocessor) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.scratch.Empty() {
		p.scratch.Close()
		p.scratch = gocv.NewMat()
	}
}

// EncodeJPEG encodes frame as JPEG and returns a Go-owned copy of the bytes.
func EncodeJPEG(frame *gocv.Mat) ([]byte, error) {
	if frame == nil || frame.Empty() {
		return nil, ErrEmptyFrame
	}

	buf, err := gocv.IMEncode(".jpg", *frame)
	if err != nil {
		return nil, err
	}
	defer buf.Close()

	src := buf.GetBytes()
	out := make([]byte, len(src))
	copy(out, src)
	return out, nil
}
