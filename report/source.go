package report

import "context"

// FileSource regenerates the report from the input file on every call,
// so edits to the input show up without a restart
type FileSource struct {
	generator *Generator
	path      string
}

// NewFileSource creates a report source over the JSON document at path
func NewFileSource(g *Generator, path string) *FileSource {
	return &FileSource{
		generator: g,
		path:      path,
	}
}

func (s *FileSource) Report(_ context.Context) (*Report, error) {
	return s.generator.GenerateFile(s.path)
}
