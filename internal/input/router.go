package input

// Rect is an axis aligned hit area in screen coordinates.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && y >= r.Y && x < r.X+r.W && y < r.Y+r.H
}

// Pointer is the state of the mouse or of one touch for the current tick.
type Pointer struct {
	ID           int
	X, Y         float64
	Pressed      bool
	JustPressed  bool
	JustReleased bool
	// Gone is set on the tick a touch ends; the pointer is not seen again.
	Gone bool
}

// Target receives pointer events. Move is given target-local coordinates.
type Target interface {
	Over()
	Out()
	Down()
	Up()
	Move(x, y float64)
}

type Region struct {
	Rect   Rect
	Target Target
}

type pointerKey struct {
	region  int
	pointer int
}

type pos struct{ x, y float64 }

// Router turns per-tick pointer snapshots into over/out/down/up/move
// events for a fixed list of regions.
type Router struct {
	Regions []Region

	inside map[pointerKey]bool
	last   map[int]pos
}

func NewRouter(regions ...Region) *Router {
	return &Router{
		Regions: regions,
		inside:  map[pointerKey]bool{},
		last:    map[int]pos{},
	}
}

// Route dispatches the events for one tick.
func (r *Router) Route(pointers []Pointer) {
	for _, p := range pointers {
		prev, seen := r.last[p.ID]
		moved := !seen || prev.x != p.X || prev.y != p.Y

		for i, reg := range r.Regions {
			key := pointerKey{i, p.ID}
			was := r.inside[key]
			in := !p.Gone && reg.Rect.Contains(p.X, p.Y)

			switch {
			case in && !was:
				reg.Target.Over()
			case !in && was:
				reg.Target.Out()
			}
			if in && p.JustPressed {
				reg.Target.Down()
			}
			if in && (moved || !was) {
				reg.Target.Move(p.X-reg.Rect.X, p.Y-reg.Rect.Y)
			}
			if p.JustReleased {
				reg.Target.Up()
			}

			if in {
				r.inside[key] = true
			} else {
				delete(r.inside, key)
			}
		}

		if p.Gone {
			delete(r.last, p.ID)
		} else {
			r.last[p.ID] = pos{p.X, p.Y}
		}
	}
}
