package types

// DefaultVersion is reported when no build version was stamped in
const DefaultVersion = "dev"

// AppContext holds application-wide values bound into every command's Run
type AppContext struct {
	Version string
}
