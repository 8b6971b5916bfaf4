package version

// AppVersion is the aiup release, overridden at build time with
// -ldflags "-X aiup/internal/version.AppVersion=<v>".
var AppVersion = "0.3.0-dev"
