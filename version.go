package xswap

import "fmt"

// Release version, bumped by hand on every tag.
const (
	Maj    = 0
	Min    = 1
	Fix    = 0
	Suffix = "-dev"
)

// GitCommit is set at build time with
// -ldflags "-X github.com/iov-one/xswap.GitCommit=<hash>".
var GitCommit = ""

// Version is printed by xswapd and reported in the ABCI info response.
func Version() string {
	v := fmt.Sprintf("v%d.%d.%d%s", Maj, Min, Fix, Suffix)
	if GitCommit != "" {
		v += " " + GitCommit
	}
	return v
}
