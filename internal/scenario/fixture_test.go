package scenario

import (
	"fmt"
	"strings"
	"testing/fstest"
)

// fixtureFS builds a data directory holding all sixteen result files. Each
// file carries a sentinel in its first cell: onset years + completion millions.
func fixtureFS() fstest.MapFS {
	fsys := fstest.MapFS{}
	files, _ := NewFiles(DefaultPattern)
	for _, k := range All() {
		name, _ := files.Name(k)
		sentinel := k.Onset.Years() + k.Completion.Years()/1_000_000
		var b strings.Builder
		b.WriteString(",in_Cm245,in_Pu241,out_Cm245,out_Pu241\n")
		fmt.Fprintf(&b, "1,%d,0,0,0\n", sentinel)
		b.WriteString("10,0.5,0.25,0.1,0.05\n")
		b.WriteString("100,0.25,0.125,0.2,0.1\n")
		fsys[name] = &fstest.MapFile{Data: []byte(b.String())}
	}
	return fsys
}
