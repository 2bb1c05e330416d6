//go:build !windows

package windows

import (
	"errors"
	"image"
)

func captureScreen() (image.Image, error) {
	return nil, errors.New("screen capture requires windows")
}
