package capture

import "fmt"

// SizeError is returned when a capture, or an intermediate stage of
// decoding one, has fewer bytes than required.
type SizeError struct {
	Stage string
	Want  int
	Got   int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("capture: %s: need %d bytes, got %d", e.Stage, e.Want, e.Got)
}

// UnknownPlatformError is returned for a platform token or value that does
// not correspond to a supported capture format.
type UnknownPlatformError struct {
	Token string
}

func (e *UnknownPlatformError) Error() string {
	return fmt.Sprintf("capture: unknown platform %q", e.Token)
}
