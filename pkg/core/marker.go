// pkg/core/marker.go
package core

import "fmt"

// PlayerStartClass is the editor class path of the Player Start actor.
const PlayerStartClass = "/Script/Engine.PlayerStart"

// LabelPrefix is prepended to the marker index to form its editor label.
const LabelPrefix = "PlayerStart_"

// MarkerLabel returns the label given to the marker spawned at index.
func MarkerLabel(index int) string {
	return fmt.Sprintf("%s%d", LabelPrefix, index)
}
