package taxlookup

var (
	// Version of taxlookup.
	Version = "v0.1.0"
	// Build timestamp, set during compilation.
	Build = "n/a"
)
