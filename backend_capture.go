// backend_capture.go - capture-device stream lifecycle, per spec.md §4.10
//
// Enumerating and instantiating real capture hardware is outside this
// component's scope (spec.md §1), exactly like output device selection in
// AudioOutput. captureStream is the seam a host integration hangs a real
// backend off of; it only needs to deliver blocks to Engine.feedCapture.

package main

// captureStream is satisfied by whatever host capture backend a deployment
// wires in; nothing in this repository depends on a concrete capture
// library, matching the no-input-by-default privacy stance in spec.md §4.10.
type captureStream interface {
	start(onBlock func(frame []float64)) error
	stop()
}

// openCaptureStream opens a capture device named by device (empty selects
// the host default) at the given sample rate and buffer size. Host device
// enumeration and instantiation are out of scope; this returns nil so that
// engines running without a wired capture backend simply never receive
// input blocks and tracks reading AudioInput see silence, per the
// InputTransient handling in spec.md §7.
func openCaptureStream(device string, sampleRate, bufferSize int) (captureStream, error) {
	return nil, nil
}
