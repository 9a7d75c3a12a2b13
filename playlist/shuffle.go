// ABOUTME: One-shot random ordering of the image list
// ABOUTME: Fisher-Yates permutation that leaves the scanned list untouched

package playlist

import (
	"math/rand/v2"
	"slices"
)

// Shuffle returns a uniformly random permutation of images.
// A nil rng uses the auto-seeded global source.
func Shuffle(images ImageList, rng *rand.Rand) ImageList {
	shuffled := slices.Clone(images)

	swap := func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	if rng == nil {
		rand.Shuffle(len(shuffled), swap)
	} else {
		rng.Shuffle(len(shuffled), swap)
	}

	return shuffled
}
