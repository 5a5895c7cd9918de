/*
Package capture implements a decoder for Phantasy Star Online screenshot
captures as exported from the GameCube and Dreamcast versions of the game.

Both platforms produce a 256 by 192 pixel image stored as big-endian RGB565
samples; 5 bits of red, 6 bits of green and 5 bits of blue.

The GameCube export is text. Every 4 characters from a private 64 character
alphabet encode 3 bytes in the same way as base64. Once decoded, the pixel
data starts 8272 bytes in and is stored as 4 by 4 tiles with each tile row
spread across 4 interlaced sub-rows, one 16-bit sample every 8 bytes.

The Dreamcast export is binary; a fixed 645 byte header followed by the
samples in row-major order.
*/
package capture

const (
	// Width is the width in pixels of every capture
	Width = 256
	// Height is the height in pixels of every capture
	Height = 192

	numPixels = Width * Height

	blockSize   = 4
	sampleBytes = 2

	// GameCubeOffset is where the pixel data starts in a decoded GameCube
	// capture
	GameCubeOffset = 8272
	gameCubeStride = 8
	gameCubePasses = gameCubeStride / sampleBytes

	// DreamcastHeaderSize is the length of the header preceding the pixel
	// data in a Dreamcast capture. Exports have been seen with 643 and 645
	// byte headers; 645 matches the captures uploaded by the game.
	DreamcastHeaderSize = 645
	dreamcastPixelBytes = numPixels * sampleBytes

	// Gamma is the correction applied by the default lookup tables
	Gamma = 1.0
)
