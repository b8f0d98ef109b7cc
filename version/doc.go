// Package version reports the version of this module, used for the default
// User-Agent of outgoing calls.
//
// The version is taken from -ldflags when set:
//
//	go build -ldflags "-X github.com/kbukum/apicontract/version.Version=1.4.0"
//
// and otherwise from the build info of the binary importing the module.
package version
