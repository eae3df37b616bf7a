package nuclide

import (
	"fmt"
	"strings"
)

// Decay is one edge of the decay chain.
type Decay struct {
	Parent   string  `json:"parent"`
	Daughter string  `json:"daughter"`
	Mode     string  `json:"mode"`
	Branch   float64 `json:"branch"`
}

// HalfLife is the tabulated half-life of a chain member, as published by NuDat 3.
type HalfLife struct {
	Nuclide string `json:"nuclide"`
	Decays  string `json:"decays"`
	Value   string `json:"half_life"`
}

// Chain is the Cm-245 decay series down to stable Tl-205. Bi-213 branches
// to Tl-209 (alpha, 0.98) and Po-213 (beta, 0.02); both rejoin at Pb-209.
var Chain = []Decay{
	{"Cm245", "Pu241", "α", 1},
	{"Pu241", "Am241", "β-", 1},
	{"Am241", "Np237", "α", 1},
	{"Np237", "Pa233", "α", 1},
	{"Pa233", "U233", "β-", 1},
	{"U233", "Th229", "α", 1},
	{"Th229", "Ra225", "α", 1},
	{"Ra225", "Ac225", "β-", 1},
	{"Ac225", "Fr221", "α", 1},
	{"Fr221", "At217", "α", 1},
	{"At217", "Bi213", "α", 1},
	{"Bi213", "Tl209", "α", 0.98},
	{"Bi213", "Po213", "β-", 0.02},
	{"Tl209", "Pb209", "β-", 1},
	{"Po213", "Pb209", "α", 1},
	{"Pb209", "Bi209", "β-", 1},
	{"Bi209", "Tl205", "α", 1},
}

var HalfLives = []HalfLife{
	{"Cm245", "α", "8423 yrs"},
	{"Pu241", "β-", "14.32 yrs"},
	{"Am241", "α", "432 yrs"},
	{"Np237", "α", "210000 yrs"},
	{"Pa233", "β-", "647 hrs"},
	{"U233", "α", "159 yrs"},
	{"Th229", "α", "7932 yrs"},
	{"Ra225", "β-", "357 yrs"},
	{"Ac225", "α", "237 yrs"},
	{"Fr221", "α", "4.7 min"},
	{"At217", "α", "32 min"},
	{"Bi213", "α (0.98) + β- (0.02)", "45 min"},
	{"Po213", "α", "3.7 µs"},
	{"Tl209", "β-", "2.1 min"},
	{"Pb209", "β-", "3.2 hrs"},
	{"Bi209", "α", "2.01E19 yrs"},
	{"Tl205", "-", "stable"},
}

// ChainString renders the chain on one line, e.g. "Cm245 -α-> Pu241 ...".
// Branches are written as "(0.98)".
func ChainString() string {
	var b strings.Builder
	for i, d := range Chain {
		if i == 0 || Chain[i-1].Daughter != d.Parent {
			if i > 0 {
				b.WriteString("; ")
			}
			b.WriteString(d.Parent)
		}
		if d.Branch < 1 {
			fmt.Fprintf(&b, " -%s(%.2f)-> %s", d.Mode, d.Branch, d.Daughter)
		} else {
			fmt.Fprintf(&b, " -%s-> %s", d.Mode, d.Daughter)
		}
	}
	return b.String()
}
