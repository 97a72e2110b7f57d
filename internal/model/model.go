package model

// Parts maps a file name (extension included) to its rendered HTML.
// A fresh Parts is built for every document build.
type Parts map[string]string

// Page represents a single generated output file.
type Page struct {
	SourceDir  string // absolute document directory
	RelPath    string // document directory relative to the source root
	OutputPath string
	Relative   string // prefix substituted for the relative marker
	PartCount  int
}

// Report holds the outcome of one full generation pass.
type Report struct {
	SourceDir string
	OutputDir string
	Template  string
	Pages     []*Page
}

// Written returns the output paths in the order they were written.
func (r *Report) Written() []string {
	if r == nil {
		return nil
	}
	paths := make([]string, 0, len(r.Pages))
	for _, p := range r.Pages {
		paths = append(paths, p.OutputPath)
	}
	return paths
}
