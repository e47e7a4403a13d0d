package raster

import (
	"container/list"

	"github.com/MeKo-Tech/vectra/internal/mempool"
)

// RemoveSpeckles erases 4-connected foreground components whose pixel
// count is below minArea. The sweep runs in row-major order over a single
// visited mask, so every foreground pixel is visited exactly once.
func RemoveSpeckles(src *Bitmap, minArea int) *Bitmap {
	dst := src.Clone()
	if minArea <= 1 {
		return dst
	}
	w, h := dst.Width, dst.Height
	if w == 0 || h == 0 {
		return dst
	}

	visited := mempool.GetBool(w * h)
	defer mempool.PutBool(visited)

	for y := range h {
		for x := range w {
			idx := y*w + x
			if visited[idx] || !dst.IsForeground(x, y) {
				continue
			}
			component := collectComponent(dst, visited, x, y)
			if len(component) < minArea {
				for _, ci := range component {
					dst.setGray(ci*4, Background)
				}
			}
		}
	}
	return dst
}

// collectComponent gathers the pixel indices of the 4-connected foreground
// component seeded at (startX, startY), marking each as visited.
func collectComponent(bm *Bitmap, visited []bool, startX, startY int) []int {
	w, h := bm.Width, bm.Height
	idx := func(x, y int) int { return y*w + x }

	start := idx(startX, startY)
	visited[start] = true
	component := []int{start}

	q := list.New()
	q.PushBack(start)

	dirs := [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	for q.Len() > 0 {
		e := q.Front()
		q.Remove(e)
		ci, ok := e.Value.(int)
		if !ok {
			continue // skip invalid
		}
		cx, cy := ci%w, ci/w
		for _, d := range dirs {
			nx, ny := cx+d[0], cy+d[1]
			if nx < 0 || ny < 0 || nx >= w || ny >= h {
				continue
			}
			ni := idx(nx, ny)
			if visited[ni] || !bm.IsForeground(nx, ny) {
				continue
			}
			visited[ni] = true
			component = append(component, ni)
			q.PushBack(ni)
		}
	}
	return component
}
