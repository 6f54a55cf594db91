package capture

import (
	"encoding/binary"
	"errors"
	"math"
	"time"

	"github.com/smallnest/ringbuffer"

	"github.com/hsbadam/Syn10platform/foundation/dsp"
)

// FrameRing is a bounded queue between the capture tick and the
// analysis loop. When the consumer falls behind, the oldest frames are
// dropped so analysis always sees recent audio.
type FrameRing struct {
	size int
	rb   *ringbuffer.RingBuffer
}

func NewFrameRing(size int) *FrameRing {
	return &FrameRing{
		size: size,
		rb:   ringbuffer.New(size).SetBlocking(false),
	}
}

func (r *FrameRing) Capacity() int {
	return r.size
}

func (r *FrameRing) Len() int {
	return r.rb.Length()
}

func (r *FrameRing) Enqueue(frame dsp.Frame) error {
	data := marshalFrame(frame)
	required := len(data) + 4

	if required > r.rb.Capacity() {
		return errors.New("frame too large for ring")
	}

	for r.rb.Free() < required {
		if !r.dropOldest() {
			r.rb.Reset()
			break
		}
	}

	var sizeBytes [4]byte
	binary.LittleEndian.PutUint32(sizeBytes[:], uint32(len(data)))
	if _, err := r.rb.Write(sizeBytes[:]); err != nil {
		return err
	}

	_, err := r.rb.Write(data)
	return err
}

func (r *FrameRing) Dequeue() (dsp.Frame, bool) {
	if r.rb.IsEmpty() {
		return dsp.Frame{}, false
	}

	var sizeBytes [4]byte
	if n, err := r.rb.Read(sizeBytes[:]); err != nil || n != 4 {
		return dsp.Frame{}, false
	}
	size := int(binary.LittleEndian.Uint32(sizeBytes[:]))

	data := make([]byte, size)
	if n, err := r.rb.Read(data); err != nil || n != size {
		return dsp.Frame{}, false
	}

	frame, ok := unmarshalFrame(data)
	return frame, ok
}

func (r *FrameRing) dropOldest() bool {
	if r.rb.IsEmpty() {
		return false
	}

	var sizeBytes [4]byte
	if n, err := r.rb.Read(sizeBytes[:]); err != nil || n != 4 {
		return false
	}
	size := int(binary.LittleEndian.Uint32(sizeBytes[:]))

	if size > 0 {
		skip := make([]byte, size)
		if n, err := r.rb.Read(skip); err != nil || n != size {
			return false
		}
	}

	return true
}

// Wire format: elapsed(8) + sampleLen(4) + samples + binCount(4) + bins.
func marshalFrame(f dsp.Frame) []byte {
	buf := make([]byte, 8+4+len(f.Samples)+4+8*len(f.Spectrum))

	offset := 0
	binary.LittleEndian.PutUint64(buf[offset:], uint64(f.Elapsed))
	offset += 8

	binary.LittleEndian.PutUint32(buf[offset:], uint32(len(f.Samples)))
	offset += 4
	copy(buf[offset:], f.Samples)
	offset += len(f.Samples)

	binary.LittleEndian.PutUint32(buf[offset:], uint32(len(f.Spectrum)))
	offset += 4
	for _, bin := range f.Spectrum {
		binary.LittleEndian.PutUint64(buf[offset:], math.Float64bits(bin))
		offset += 8
	}

	return buf
}

func unmarshalFrame(data []byte) (dsp.Frame, bool) {
	if len(data) < 16 {
		return dsp.Frame{}, false
	}

	offset := 0
	elapsed := time.Duration(binary.LittleEndian.Uint64(data[offset:]))
	offset += 8

	sampleLen := int(binary.LittleEndian.Uint32(data[offset:]))
	offset += 4
	if len(data[offset:]) < sampleLen+4 {
		return dsp.Frame{}, false
	}
	samples := make([]byte, sampleLen)
	copy(samples, data[offset:offset+sampleLen])
	offset += sampleLen

	binCount := int(binary.LittleEndian.Uint32(data[offset:]))
	offset += 4
	if len(data[offset:]) < 8*binCount {
		return dsp.Frame{}, false
	}
	spectrum := make([]float64, binCount)
	for i := range spectrum {
		spectrum[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[offset:]))
		offset += 8
	}

	return dsp.Frame{Samples: samples, Spectrum: spectrum, Elapsed: elapsed}, true
}
