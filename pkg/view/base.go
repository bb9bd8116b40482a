package view

import (
	"fmt"
	"html"
	"io"

	"github.com/valyala/bytebufferpool"
)

// BufferPool hands out the buffers inner levels and content blocks render
// into.
type BufferPool interface {
	Get() *bytebufferpool.ByteBuffer
	Put(*bytebufferpool.ByteBuffer)
}

var defaultPool bytebufferpool.Pool

// Base is embedded by every generated view. It owns the output stack the
// layered dispatcher redirects, the content slots and the view data.
//
// The zero value is ready to use and writes to io.Discard until a scope is
// opened.
type Base struct {
	// Content holds named slots. ContentSlot carries the output of the
	// previous (inner) level while outer levels render.
	Content map[string]string

	data    map[string]any
	output  io.Writer
	outputs []io.Writer
	pool    BufferPool
	err     error
}

// SetBufferPool overrides the buffer pool. Nil restores the shared default.
func (b *Base) SetBufferPool(pool BufferPool) {
	b.pool = pool
}

func (b *Base) buffers() BufferPool {
	if b.pool == nil {
		return &defaultPool
	}
	return b.pool
}

// Output returns the writer currently receiving output.
func (b *Base) Output() io.Writer {
	if b.output == nil {
		return io.Discard
	}
	return b.output
}

// OutputScope makes w the current output and returns the function restoring
// the previous one. Scopes nest; releasing is idempotent.
func (b *Base) OutputScope(w io.Writer) (release func()) {
	depth := len(b.outputs)
	b.outputs = append(b.outputs, b.output)
	b.output = w

	released := false
	return func() {
		if released {
			return
		}
		released = true
		b.output = b.outputs[depth]
		b.outputs = b.outputs[:depth]
	}
}

// CaptureLevel renders level into a fresh buffer and publishes the captured
// text as the content slot, replacing any previous value. The previous output
// is restored on every exit path, panics included.
func (b *Base) CaptureLevel(slot string, level func() error) error {
	pool := b.buffers()
	buf := pool.Get()
	defer pool.Put(buf)

	if err := b.runScoped(buf, level); err != nil {
		return err
	}
	b.setContent(slot, buf.String())
	return nil
}

// RenderLevel renders level straight into w without buffering.
func (b *Base) RenderLevel(w io.Writer, level func() error) error {
	return b.runScoped(w, level)
}

func (b *Base) runScoped(w io.Writer, level func() error) error {
	defer b.OutputScope(w)()
	if err := level(); err != nil {
		return err
	}
	return b.err
}

// CaptureString renders fn into a buffer and returns the text. Macros use it.
func (b *Base) CaptureString(fn func()) string {
	pool := b.buffers()
	buf := pool.Get()
	defer pool.Put(buf)

	func() {
		defer b.OutputScope(buf)()
		fn()
	}()
	return buf.String()
}

// BeginContent redirects output into a buffer until the returned function is
// called, which appends the captured text to the named slot.
func (b *Base) BeginContent(name string) (end func()) {
	pool := b.buffers()
	buf := pool.Get()
	release := b.OutputScope(buf)

	done := false
	return func() {
		if done {
			return
		}
		done = true
		release()
		b.setContent(name, b.Content[name]+buf.String())
		pool.Put(buf)
	}
}

// UseContent writes the named slot and reports whether it held anything.
func (b *Base) UseContent(name string) bool {
	text, ok := b.Content[name]
	if !ok || text == "" {
		return false
	}
	b.Write(text)
	return true
}

func (b *Base) setContent(name, text string) {
	if b.Content == nil {
		b.Content = make(map[string]string)
	}
	b.Content[name] = text
}

// Write writes literal text. The first write error sticks and is reported by
// Err.
func (b *Base) Write(text string) {
	if b.err != nil || text == "" {
		return
	}
	if _, err := io.WriteString(b.Output(), text); err != nil {
		b.err = fmt.Errorf("view: write output: %w", err)
	}
}

// WriteValue writes the default formatting of value. Nil writes nothing.
func (b *Base) WriteValue(value any) {
	b.Write(format(value))
}

// WriteEscaped writes value HTML-escaped.
func (b *Base) WriteEscaped(value any) {
	b.Write(html.EscapeString(format(value)))
}

// WriteSanitized writes value after stripping unsafe markup.
func (b *Base) WriteSanitized(value any) {
	b.Write(Sanitize(format(value)))
}

// Err returns the first output error encountered.
func (b *Base) Err() error {
	return b.err
}

// SetViewData replaces the data accessors read from.
func (b *Base) SetViewData(data map[string]any) {
	b.data = data
}

// ViewData returns the entry stored under key.
func (b *Base) ViewData(key string) any {
	return b.data[key]
}

func format(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
