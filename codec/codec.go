package codec

import "github.com/Marohn-Group/mrfmsim-yaml/symbols"

// New returns a loader/dumper pair bound to reg, wired with the default tag
// and representer tables.
func New(reg *symbols.Registry) (*Loader, *Dumper) {
	return NewLoader(DefaultConstructors(reg)), NewDumper(DefaultRepresenters(reg))
}
