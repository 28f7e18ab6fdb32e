package puzzle

// Shuffle lays out a uniformly random permutation of the tiles. For each
// cell in row-major order a value is drawn from a shrinking pool of
// candidates. The result may be unsolvable; see ShuffleSolvable.
// History is cleared; the move count is kept.
func (b *Board) Shuffle() {
	size := b.geom.GridSize()
	n := size.X * size.Y

	pool := make([]int, n)
	for i := range pool {
		pool[i] = i
	}

	for y := range b.tiles {
		for x := range b.tiles[y] {
			i := b.rng.Intn(len(pool))
			b.tiles[y][x] = pool[i]
			pool[i] = pool[len(pool)-1]
			pool = pool[:len(pool)-1]
		}
	}

	b.history.Reset()
	b.logger.Debug("shuffled", "grid", size)
}

// ShuffleSolvable shuffles and, if the arrangement cannot reach the solved
// board, swaps the first two tiles to flip its parity.
func (b *Board) ShuffleSolvable() {
	b.Shuffle()
	if b.Solvable() {
		return
	}

	var first, second *int
	for y := range b.tiles {
		for x := range b.tiles[y] {
			if b.tiles[y][x] == 0 {
				continue
			}
			switch {
			case first == nil:
				first = &b.tiles[y][x]
			case second == nil:
				second = &b.tiles[y][x]
			}
		}
	}
	*first, *second = *second, *first
}

// Solvable reports whether the solved board is reachable by slides.
//
// With an odd width the inversion count must be even. With an even width,
// inversions plus the empty cell's row counted from the bottom (starting at
// 1) must be odd.
func (b *Board) Solvable() bool {
	size := b.geom.GridSize()
	inv := b.inversions()
	if size.X%2 == 1 {
		return inv%2 == 0
	}

	empty, err := b.EmptyCell()
	if err != nil {
		return false
	}
	fromBottom := size.Y - empty.Y
	return (inv+fromBottom)%2 == 1
}

// inversions counts pairs of tiles, ignoring the empty cell, that appear in
// the wrong row-major order.
func (b *Board) inversions() int {
	flat := make([]int, 0, len(b.tiles)*len(b.tiles[0]))
	for _, row := range b.tiles {
		for _, v := range row {
			if v != 0 {
				flat = append(flat, v)
			}
		}
	}

	count := 0
	for i := range flat {
		for j := i + 1; j < len(flat); j++ {
			if flat[i] > flat[j] {
				count++
			}
		}
	}
	return count
}
