package font

// rectPacker places glyph rectangles into a fixed-size atlas and reports
// where each one landed. Two strategies exist, matching the two packing
// methods the loader supports: a linear greedy row scan and a shelf packer
// that tracks every open row.
type rectPacker interface {
	insert(w, h int) (x, y int, ok bool)
}

// linearPacker is the greedy method: glyphs are placed left to right on
// rows whose height grows to the tallest glyph seen so far, and a full row
// is never revisited. Optimal when every glyph has the same height (a
// monospace or single-size raster set), which is when packAtlas picks it.
type linearPacker struct {
	atlasW, atlasH int
	pad            int

	penX, penY int
	rowH       int
}

func newLinearPacker(atlasW, atlasH, pad int) *linearPacker {
	return &linearPacker{atlasW: atlasW, atlasH: atlasH, pad: pad}
}

func (p *linearPacker) insert(w, h int) (int, int, bool) {
	if p.penX+w+p.pad > p.atlasW {
		p.penY += p.rowH + p.pad
		p.penX = 0
		p.rowH = 0
	}
	if p.penX+w+p.pad > p.atlasW || p.penY+h+p.pad > p.atlasH {
		return 0, 0, false
	}
	x, y := p.penX, p.penY
	p.penX += w + p.pad
	if h > p.rowH {
		p.rowH = h
	}
	return x, y, true
}

// shelfPacker keeps every row ("shelf") open and fits each glyph onto the
// first shelf at least as tall as it, so mixed glyph heights waste less
// vertical space than the linear scan. New shelves open below the last one
// until the atlas height runs out.
type shelfPacker struct {
	atlasW, atlasH int
	pad            int

	rows []packRow
}

// packRow is one shelf: its top edge, its height, and the next free x.
type packRow struct {
	top, height, nextX int
}

func newShelfPacker(atlasW, atlasH, pad int) *shelfPacker {
	return &shelfPacker{atlasW: atlasW, atlasH: atlasH, pad: pad}
}

func (p *shelfPacker) insert(w, h int) (int, int, bool) {
	for i := range p.rows {
		row := &p.rows[i]
		if h > row.height || row.nextX+w+p.pad > p.atlasW {
			continue
		}
		x := row.nextX
		row.nextX += w + p.pad
		return x, row.top, true
	}

	top := 0
	if n := len(p.rows); n > 0 {
		last := p.rows[n-1]
		top = last.top + last.height + p.pad
	}
	if top+h+p.pad > p.atlasH || w+p.pad > p.atlasW {
		return 0, 0, false
	}
	p.rows = append(p.rows, packRow{top: top, height: h, nextX: w + p.pad})
	return 0, top, true
}
