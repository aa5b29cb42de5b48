package core

// Window is an opaque identifier minted by the X server. The core never
// forges one; every Window it stores is guaranteed by its caller (the event
// driver) to exist at the server at the moment of insertion.
type Window uint32

// NoWindow is the zero value, used where xr3wm historically used window ID 0
// to mean "nothing focused".
const NoWindow Window = 0
