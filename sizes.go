package rf

// Size is a width/height pair. The original C sources alias this through a
// union so display_size.width and display_width/height read the same
// storage; Size replaces that overlay with an explicit value type.
type Size struct {
	Width, Height int
}

// sizes holds the four resolutions the renderer distinguishes:
// display (the physical framebuffer), screen (the logical resolution the
// caller asked for), render (the actual backbuffer the renderer targets)
// and current (the active target, which changes inside BeginTextureMode).
type sizes struct {
	display Size
	screen  Size
	render  Size
	current Size
}
