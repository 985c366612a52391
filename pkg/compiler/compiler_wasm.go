//go:build (js && wasm) || wasip1

package compiler

// init disables parallel CompileMany on WebAssembly targets. The js/wasm
// runtime is single-threaded and wasip1 has no thread support in the Go
// runtime, so extra goroutines only add scheduling overhead.
func init() {
	defaultConcurrency = false
}
