package presenter

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
)

// WriterDocument is a document whose single, always-active view is w
type WriterDocument struct {
	w io.Writer
}

func NewWriterDocument(w io.Writer) *WriterDocument {
	return &WriterDocument{w: w}
}

func (d *WriterDocument) HasOpenDocument() bool   { return d.w != nil }
func (d *WriterDocument) HasActiveTextView() bool { return d.w != nil }

func (d *WriterDocument) SetActiveText(text string) error {
	_, err := io.WriteString(d.w, strings.TrimRight(text, "\n")+"\n")
	return err
}

func (d *WriterDocument) OpenTextView(text string) error {
	return d.SetActiveText(text)
}

// FileDocument keeps text views as files. The document is open when the
// directory of path exists; the active view is path itself.
type FileDocument struct {
	path string
}

func NewFileDocument(path string) *FileDocument {
	return &FileDocument{path: path}
}

func (d *FileDocument) HasOpenDocument() bool {
	info, err := os.Stat(filepath.Dir(d.path))
	return err == nil && info.IsDir()
}

func (d *FileDocument) HasActiveTextView() bool {
	info, err := os.Stat(d.path)
	return err == nil && info.Mode().IsRegular()
}

func (d *FileDocument) SetActiveText(text string) error {
	return os.WriteFile(d.path, []byte(text), 0o644)
}

// OpenTextView writes text to path, or to the first free "name-N.ext"
// sibling when path already exists
func (d *FileDocument) OpenTextView(text string) error {
	target := d.path
	if d.HasActiveTextView() {
		ext := filepath.Ext(d.path)
		base := strings.TrimSuffix(d.path, ext)
		for n := 1; ; n++ {
			target = fmt.Sprintf("%s-%d%s", base, n, ext)
			if _, err := os.Stat(target); os.IsNotExist(err) {
				break
			}
		}
	}

	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteString(text)
	return err
}

// BufferConsole collects log output and only prints it when shown
type BufferConsole struct {
	mu  sync.Mutex
	buf bytes.Buffer
	out io.Writer
}

func NewBufferConsole(out io.Writer) *BufferConsole {
	return &BufferConsole{out: out}
}

func (c *BufferConsole) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.Write(p)
}

func (c *BufferConsole) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buf.Reset()
}

func (c *BufferConsole) Show() {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = c.buf.WriteTo(c.out)
}

// SystemBrowser opens links with the desktop's default handler
type SystemBrowser struct{}

func (SystemBrowser) Open(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}
