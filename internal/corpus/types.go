package corpus

// File identifies a chapter file discovered during the corpus scan.
type File struct {
	// Path is the slash-separated path relative to the corpus root.
	Path string
	// AbsPath is the absolute filesystem path.
	AbsPath string
	// Book is the name of the book directory containing the file.
	Book string
	// Ordinal is the numeric chapter prefix parsed from the filename.
	Ordinal int
	// Size is the file size in bytes.
	Size int64
}

// Chapter is a parsed chapter. Instances are immutable within a run.
type Chapter struct {
	File
	// Title comes from the front-matter block; empty when missing or malformed.
	Title string
	// Body is the raw file content.
	Body string
	// BodyStart is the 1-based line where content after front matter begins.
	BodyStart int
	// Lines is the total line count of the file.
	Lines int
}

// ID returns the stable chapter identity used in reports.
func (c Chapter) ID() string {
	return c.Path
}
