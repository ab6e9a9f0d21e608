package router

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
)

type outputFile struct {
	file   *os.File
	writer *bufio.Writer
}

func (o *outputFile) Write(p []byte) (int, error) {
	return o.writer.Write(p)
}

func (o *outputFile) close() error {
	err := o.writer.Flush()
	if e := o.file.Close(); err == nil {
		err = e
	}
	return err
}

func openOutputs(dir string, names []string) (map[string]io.Writer,
	func() error, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, nil, err
	}
	files := make([]*outputFile, 0, len(names))
	closeAll := func() error {
		var firstErr error
		for _, f := range files {
			if err := f.close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		return firstErr
	}
	writers := make(map[string]io.Writer, len(names))
	for _, name := range names {
		if _, ok := writers[name]; ok {
			continue
		}
		file, err := os.Create(filepath.Join(dir, name+".log"))
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		f := &outputFile{file: file, writer: bufio.NewWriter(file)}
		files = append(files, f)
		writers[name] = f
	}
	return writers, closeAll, nil
}
