package host

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nyjc-computing/pseudo9608/internal/types"
)

// OS is the default adapter: process stdin/stdout and the local
// filesystem, with file names resolved as relative paths against dir
// (the process working directory by default), per spec.md §6.
type OS struct {
	in  *bufio.Reader
	out io.Writer
	dir string
}

// NewOS builds the default host adapter over os.Stdin and os.Stdout,
// resolving OPENFILE paths against the process working directory.
func NewOS() *OS {
	return &OS{in: bufio.NewReader(os.Stdin), out: os.Stdout}
}

// NewOSIn is like NewOS but resolves OPENFILE paths against dir instead
// of the process working directory.
func NewOSIn(dir string) *OS {
	return &OS{in: bufio.NewReader(os.Stdin), out: os.Stdout, dir: dir}
}

func (o *OS) resolve(name string) string {
	if o.dir == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(o.dir, name)
}

func (o *OS) ReadLine() (string, error) {
	line, err := o.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return trimTerminator(line), nil
}

func (o *OS) Write(text string) {
	fmt.Fprint(o.out, text)
}

func (o *OS) Open(name string, mode types.FileMode) (File, error) {
	name = o.resolve(name)
	var f *os.File
	var err error
	switch mode {
	case types.ReadMode:
		f, err = os.Open(name)
	case types.WriteMode:
		f, err = os.Create(name)
	case types.AppendMode:
		f, err = os.OpenFile(name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	default:
		return nil, fmt.Errorf("unknown file mode %v", mode)
	}
	if err != nil {
		return nil, err
	}
	of := &osFile{file: f, mode: mode}
	if mode == types.ReadMode {
		of.reader = bufio.NewReader(f)
	}
	return of, nil
}

type osFile struct {
	file   *os.File
	mode   types.FileMode
	reader *bufio.Reader
	atEOF  bool
}

func (f *osFile) ReadLine() (string, bool, error) {
	if f.reader == nil {
		return "", false, fmt.Errorf("file is not open for reading")
	}
	if f.atEOF {
		return "", false, nil
	}
	line, err := f.reader.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			f.atEOF = true
			if line == "" {
				return "", false, nil
			}
			return trimTerminator(line), true, nil
		}
		return "", false, err
	}
	return trimTerminator(line), true, nil
}

func (f *osFile) WriteLine(line string) error {
	if f.mode != types.WriteMode && f.mode != types.AppendMode {
		return fmt.Errorf("file is not open for writing")
	}
	_, err := fmt.Fprintln(f.file, line)
	return err
}

func (f *osFile) EOF() bool {
	if f.reader == nil {
		return true
	}
	if f.atEOF {
		return true
	}
	_, err := f.reader.Peek(1)
	return err != nil
}

func (f *osFile) Close() error {
	return f.file.Close()
}

func trimTerminator(line string) string {
	n := len(line)
	if n > 0 && line[n-1] == '\n' {
		line = line[:n-1]
	}
	n = len(line)
	if n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}
	return line
}
