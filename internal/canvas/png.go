package canvas

import (
	"fmt"
	"image/png"
	"io"
	"os"
)

func (cv *Canvas) WritePNG(w io.Writer) error {
	if err := png.Encode(w, cv.img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// SavePNG writes the current frame to path.
func (cv *Canvas) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := cv.WritePNG(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
