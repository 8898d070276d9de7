package czml

// CZML packet shapes, reduced to the properties this emitter uses. A
// document is a JSON array of packets; the first packet must be the
// document packet carrying the clock.

// Packet is one CZML entity description.
type Packet struct {
	ID           string      `json:"id"`
	Version      string      `json:"version,omitempty"`
	Availability interface{} `json:"availability,omitempty"` // string or []string
	Clock        *Clock      `json:"clock,omitempty"`
	Position     *Position   `json:"position,omitempty"`
	Billboard    *Billboard  `json:"billboard,omitempty"`
	Path         *Path       `json:"path,omitempty"`
	Polyline     *Polyline   `json:"polyline,omitempty"`
}

// Clock drives the visualisation timeline.
type Clock struct {
	Interval    string  `json:"interval"`
	CurrentTime string  `json:"currentTime"`
	Multiplier  float64 `json:"multiplier"`
	Range       string  `json:"range"`
	Step        string  `json:"step"`
}

// Position is either a time-tagged cartesian track, a fixed cartographic
// point, or a reference list (for polyline endpoints).
type Position struct {
	InterpolationAlgorithm string    `json:"interpolationAlgorithm,omitempty"`
	InterpolationDegree    int       `json:"interpolationDegree,omitempty"`
	ReferenceFrame         string    `json:"referenceFrame,omitempty"`
	Epoch                  string    `json:"epoch,omitempty"`
	Cartesian              []float64 `json:"cartesian,omitempty"`
	CartographicRadians    []float64 `json:"cartographicRadians,omitempty"`
	References             []string  `json:"references,omitempty"`
}

// Billboard is a screen-aligned marker image.
type Billboard struct {
	Image string  `json:"image"`
	Scale float64 `json:"scale"`
	Show  bool    `json:"show"`
	Color *Color  `json:"color,omitempty"`
}

// Color is an RGBA quadruple.
type Color struct {
	RGBA [4]int `json:"rgba"`
}

// Material paints a path or polyline.
type Material struct {
	SolidColor *SolidColor `json:"solidColor,omitempty"`
}

// SolidColor is the single-colour material.
type SolidColor struct {
	Color *Color `json:"color"`
}

// Path traces an entity's motion.
type Path struct {
	Material *Material `json:"material,omitempty"`
	Width    float64   `json:"width,omitempty"`
	Show     bool      `json:"show"`
}

// Polyline joins two referenced positions. Show is either a plain bool or
// a list of per-interval visibility toggles.
type Polyline struct {
	Width         float64     `json:"width,omitempty"`
	FollowSurface bool        `json:"followSurface"`
	Material      *Material   `json:"material,omitempty"`
	Positions     *Position   `json:"positions,omitempty"`
	Show          interface{} `json:"show,omitempty"`
}

// ShowInterval toggles visibility over one time interval.
type ShowInterval struct {
	Interval string `json:"interval"`
	Show     bool   `json:"show"`
}

func solid(rgba [4]int) *Material {
	return &Material{SolidColor: &SolidColor{Color: &Color{RGBA: rgba}}}
}

var (
	colorCurrentRoute  = [4]int{0, 255, 127, 255}
	colorPreviousRoute = [4]int{255, 0, 0, 255}
	colorUserLink      = [4]int{0, 255, 127, 255}
	colorOrbitPath     = [4]int{255, 255, 0, 100}
	colorGlobalRoute   = [4]int{255, 255, 0, 255}
	colorWhite         = [4]int{255, 255, 255, 255}
)

// Marker images, inlined so documents are self-contained.
const (
	satelliteImage = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAABAAAAAQCAYAAAAf8/9hAAAAAXNSR0IArs4c6QAAAARnQU1BAACxjwv8YQUAAAAJcEhZcwAADsMAAA7DAcdvqGQAAADJSURBVDhPnZHRDcMgEEMZjVEYpaNklIzSEfLfD4qNnXAJSFWfhO7w2Zc0Tf9QG2rXrEzSUeZLOGm47WoH95x3Hl3jEgilvDgsOQUTqsNl68ezEwn1vae6lceSEEYvvWNT/Rxc4CXQNGadho1NXoJ+9iaqc2xi2xbt23PJCDIB6TQjOC6Bho/sDy3fBQT8PrVhibU7yBFcEPaRxOoeTwbwByCOYf9VGp1BYI1BA+EeHhmfzKbBoJEQwn1yzUZtyspIQUha85MpkNIXB7GizqDEECsAAAAASUVORK5CYII="
	stationImage   = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAABAAAAAQCAYAAAAf8/9hAAAAAXNSR0IArs4c6QAAAARnQU1BAACxjwv8YQUAAAAJcEhZcwAADsMAAA7DAcdvqGQAAACvSURBVDhPrZDRDcMgDAU9GqN0lIzijw6SUbJJygUeNQgSqepJTyHG91LVVpwDdfxM3T9TSl1EXZvDwii471fivK73cBFFQNTT/d2KoGpfGOpSIkhUpgUMxq9DFEsWv4IXhlyCnhBFnZcFEEuYqbiUlNwWgMTdrZ3JbQFoEVG53rd8ztG9aPJMnBUQf/VFraBJeWnLS0RfjbKyLJA8FkT5seDYS1Qwyv8t0B/5C2ZmH2/eTGNNBgMmAAAAAElFTkSuQmCC"
)
