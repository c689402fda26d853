package audio

import (
	"encoding/binary"
	"math"

	"github.com/gopxl/beep"
)

// maxCueSamples caps rendering so a misbehaving streamer cannot grow forever.
const maxCueSamples = 10 * 44100

// RenderPCM16 drains s into interleaved little-endian signed 16-bit stereo
// PCM, the format ebiten's audio players consume.
func RenderPCM16(s beep.Streamer) []byte {
	if s == nil {
		return nil
	}
	buf := make([][2]float64, 512)
	out := make([]byte, 0, 4*4096)
	total := 0
	for total < maxCueSamples {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(buf[i][0])))
			out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(buf[i][1])))
		}
		total += n
		if !ok || n == 0 {
			break
		}
	}
	return out
}

func toInt16(v float64) int16 {
	v = math.Max(-1, math.Min(1, v))
	return int16(v * math.MaxInt16)
}
