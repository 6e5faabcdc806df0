package hal

import "sync"

// MemFramebuffer is an RGB565 framebuffer held in memory.
//
// Drawing goes to a back buffer; Present copies it to a front buffer that
// presenters read with Snapshot from any goroutine.
type MemFramebuffer struct {
	width  int
	height int
	stride int
	buf    []byte

	mu     sync.Mutex
	front  []byte
	frames uint64
	onShow func()
}

// NewMemFramebuffer allocates a width x height framebuffer.
func NewMemFramebuffer(width, height int) *MemFramebuffer {
	stride := width * 2
	return &MemFramebuffer{
		width:  width,
		height: height,
		stride: stride,
		buf:    make([]byte, stride*height),
		front:  make([]byte, stride*height),
	}
}

func (f *MemFramebuffer) Width() int          { return f.width }
func (f *MemFramebuffer) Height() int         { return f.height }
func (f *MemFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *MemFramebuffer) StrideBytes() int    { return f.stride }
func (f *MemFramebuffer) Buffer() []byte      { return f.buf }

func (f *MemFramebuffer) ClearRGB(r, g, b uint8) {
	pixel := RGB565(r, g, b)
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	for i := 0; i+1 < len(f.buf); i += 2 {
		f.buf[i] = lo
		f.buf[i+1] = hi
	}
}

func (f *MemFramebuffer) Present() error {
	f.mu.Lock()
	copy(f.front, f.buf)
	f.frames++
	show := f.onShow
	f.mu.Unlock()

	if show != nil {
		show()
	}
	return nil
}

// OnPresent registers fn to run after every Present.
func (f *MemFramebuffer) OnPresent(fn func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onShow = fn
}

// Snapshot copies the last presented frame into dst and returns the
// number of frames presented so far.
func (f *MemFramebuffer) Snapshot(dst []byte) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(dst, f.front)
	return f.frames
}

// Frames returns the number of frames presented so far.
func (f *MemFramebuffer) Frames() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.frames
}
