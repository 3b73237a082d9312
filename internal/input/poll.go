package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// MouseID is the pointer id of the mouse. Touches use their touch id + 1.
const MouseID = 0

// Poll reads the mouse and all touches for the current tick.
func Poll(dst []Pointer) []Pointer {
	dst = dst[:0]

	mx, my := ebiten.CursorPosition()
	dst = append(dst, Pointer{
		ID:           MouseID,
		X:            float64(mx),
		Y:            float64(my),
		Pressed:      ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		JustPressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		JustReleased: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
	})

	for _, id := range ebiten.AppendTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		dst = append(dst, Pointer{
			ID:          int(id) + 1,
			X:           float64(x),
			Y:           float64(y),
			Pressed:     true,
			JustPressed: inpututil.TouchPressDuration(id) == 1,
		})
	}
	for _, id := range inpututil.AppendJustReleasedTouchIDs(nil) {
		x, y := inpututil.TouchPositionInPreviousTick(id)
		dst = append(dst, Pointer{
			ID:           int(id) + 1,
			X:            float64(x),
			Y:            float64(y),
			JustReleased: true,
			Gone:         true,
		})
	}
	return dst
}
