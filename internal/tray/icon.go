package tray

import (
	"bytes"
	"encoding/binary"
	"image/png"
	"runtime"

	"github.com/gogpu/gg"
)

const iconSize = 32

// iconPNG draws the tray icon: a dark tile with an orange frame and a
// white dot, the same shapes the overlay demo draws.
func iconPNG(paused bool) ([]byte, error) {
	dc := gg.NewContext(iconSize, iconSize)
	defer dc.Close()

	dc.ClearWithColor(gg.RGBA{R: 0.1, G: 0.1, B: 0.12, A: 1})

	dc.SetRGBA(1, 0.2, 0, 1)
	if paused {
		dc.SetRGBA(0.5, 0.5, 0.5, 1)
	}
	dc.SetLineWidth(3)
	dc.DrawRectangle(5, 5, iconSize-10, iconSize-10)
	if err := dc.Stroke(); err != nil {
		return nil, err
	}

	dc.SetRGBA(1, 1, 1, 1)
	dc.DrawCircle(iconSize/2, iconSize/2, 4)
	if err := dc.Fill(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// wrapICO puts a PNG image into a single-entry ICO container, which the
// Windows shell accepts since Vista.
func wrapICO(pngData []byte, size int) []byte {
	var buf bytes.Buffer
	le := binary.LittleEndian

	// ICONDIR
	_ = binary.Write(&buf, le, [3]uint16{0, 1, 1})

	// ICONDIRENTRY; 0 in the size bytes means 256
	dim := byte(size)
	if size >= 256 {
		dim = 0
	}
	buf.Write([]byte{dim, dim, 0, 0})
	_ = binary.Write(&buf, le, uint16(1))  // planes
	_ = binary.Write(&buf, le, uint16(32)) // bits per pixel
	_ = binary.Write(&buf, le, uint32(len(pngData)))
	_ = binary.Write(&buf, le, uint32(6+16))

	buf.Write(pngData)
	return buf.Bytes()
}

func getIcon(paused bool) []byte {
	data, err := iconPNG(paused)
	if err != nil {
		return nil
	}
	if runtime.GOOS == "windows" {
		return wrapICO(data, iconSize)
	}
	return data
}
