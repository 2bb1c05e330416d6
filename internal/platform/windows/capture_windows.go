package windows

import (
	"image"

	"github.com/go-vgo/robotgo"
)

func captureScreen() (image.Image, error) {
	return robotgo.CaptureImg()
}
