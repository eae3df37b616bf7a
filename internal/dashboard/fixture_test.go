package dashboard

import (
	"fmt"
	"strings"
	"testing/fstest"

	"github.com/san-kum/radwaste/internal/scenario"
)

// dataFS is a complete data directory. Result files have seven columns so
// the split is uneven, and the first cell of each holds a sentinel equal to
// onset years + completion millions.
func dataFS() fstest.MapFS {
	fsys := fstest.MapFS{
		"initial_cond.csv":   {Data: []byte(",Moles\nCm245,12.5\nPu241,0.3\nAm241,4\n")},
		"decay_cte_data.csv": {Data: []byte(",Cte\nCm245,8.2e-05\nPu241,0.0484\nTl205,0\n")},
	}
	files, _ := scenario.NewFiles(scenario.DefaultPattern)
	for _, k := range scenario.All() {
		name, _ := files.Name(k)
		sentinel := k.Onset.Years() + k.Completion.Years()/1_000_000
		var b strings.Builder
		b.WriteString(",a,b,c,d,e,f,g\n")
		fmt.Fprintf(&b, "1,%d,1,1,0,0,0,0\n", sentinel)
		b.WriteString("1000,0.5,0.5,0.5,0.2,0.2,0.2,0.2\n")
		b.WriteString("1000000,0.1,0.1,0.1,0.4,0.4,0.4,0.4\n")
		fsys[name] = &fstest.MapFile{Data: []byte(b.String())}
	}
	return fsys
}
