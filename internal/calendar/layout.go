package calendar

import "sort"

// Block is an item placed in a day column. Units are whatever hourHeight and
// columnWidth were given in (rows and cells in the terminal).
type Block struct {
	Item   Item
	Top    int
	Height int
	Left   int
	Width  int
	Column int
	Lanes  int // columns in the item's overlap group
}

type span struct {
	item       Item
	start, end int // minutes
}

// Layout positions the timed items of one day. Overlapping items are packed
// greedily into the first free column of their overlap group and share the
// column width equally. Untimed items are skipped.
func Layout(items []Item, hourHeight, columnWidth int) []Block {
	if hourHeight < 1 {
		hourHeight = 1
	}

	var spans []span
	for _, it := range items {
		start, ok := it.Start()
		if !ok {
			continue
		}
		spans = append(spans, span{item: it, start: start, end: start + it.minutes()})
	}
	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].start != spans[j].start {
			return spans[i].start < spans[j].start
		}
		return spans[i].end > spans[j].end
	})

	blocks := make([]Block, 0, len(spans))
	for i := 0; i < len(spans); {
		// Collect one overlap group.
		groupEnd := spans[i].end
		j := i + 1
		for j < len(spans) && spans[j].start < groupEnd {
			if spans[j].end > groupEnd {
				groupEnd = spans[j].end
			}
			j++
		}

		group := spans[i:j]
		var colEnds []int
		cols := make([]int, len(group))
		for k, sp := range group {
			placed := false
			for c, end := range colEnds {
				if end <= sp.start {
					colEnds[c] = sp.end
					cols[k] = c
					placed = true
					break
				}
			}
			if !placed {
				cols[k] = len(colEnds)
				colEnds = append(colEnds, sp.end)
			}
		}

		lanes := len(colEnds)
		width := columnWidth / lanes
		if width < 1 {
			width = 1
		}
		for k, sp := range group {
			height := (sp.end - sp.start) * hourHeight / 60
			if height < 1 {
				height = 1
			}
			blocks = append(blocks, Block{
				Item:   sp.item,
				Top:    sp.start * hourHeight / 60,
				Height: height,
				Left:   cols[k] * width,
				Width:  width,
				Column: cols[k],
				Lanes:  lanes,
			})
		}
		i = j
	}
	return blocks
}
