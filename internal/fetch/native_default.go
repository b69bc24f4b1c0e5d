//go:build !js || !wasm

package fetch

// Native returns the platform fetch primitive. Regular Go builds have none.
func Native() (Fetcher, bool) {
	return nil, false
}
