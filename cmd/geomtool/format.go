package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Faultbox/midgard-geom/pkg/math"
)

func (t *tool) num(f float32) string {
	s := strconv.FormatFloat(float64(f), 'f', t.cfg.Output.Precision, 32)
	// Avoid printing "-0.0000" for tiny negatives.
	if strings.Trim(s, "-0.") == "" {
		return strings.TrimPrefix(s, "-")
	}
	return s
}

func (t *tool) join(vals ...float32) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = t.num(v)
	}
	return strings.Join(parts, " ")
}

func (t *tool) vec3(v math.Vec3) string {
	return t.join(v.X, v.Y, v.Z)
}

// quat prints w x y z.
func (t *tool) quat(q math.Quat) string {
	return t.join(q.W, q.X, q.Y, q.Z)
}

func (t *tool) matrix(m math.Mat4) {
	r := m.Rows()
	for row := 0; row < 4; row++ {
		fmt.Fprintf(t.out, "  %s\n", t.join(r[row*4:row*4+4]...))
	}
}
