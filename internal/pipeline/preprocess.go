package pipeline

import "github.com/pyrosense/sentinel/internal/model"

// Preprocess maps a raw grayscale frame onto the normalized input vector.
// Bytes become intensities in [0, 1]; short frames are zero-padded and long
// frames are truncated at the vector length. Pure transform.
func Preprocess(raw []byte, dst *[model.InputLen]float32) {
	for i := range dst {
		if i < len(raw) {
			dst[i] = float32(raw[i]) / 255.0
		} else {
			dst[i] = 0.0
		}
	}
}
