package parser

import (
	"github.com/davecgh/go-spew/spew"
)

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Dump renders the full node structure, tokens included.
func Dump(expr Expr) string {
	return dumpConfig.Sdump(expr)
}
