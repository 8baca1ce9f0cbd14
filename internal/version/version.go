package version

// Version is the release version, overridable at build time with
// -ldflags "-X reciperoll/internal/version.Version=...".
var Version = "0.1.0"
