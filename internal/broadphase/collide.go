package broadphase

import (
	"bytes"
	"context"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/midgard-geom/internal/logger"
	"github.com/Faultbox/midgard-geom/pkg/math"
)

// Options configures Collide.
type Options struct {
	CellSize   float32
	Workers    int
	UseSpheres bool
}

// DefaultOptions returns the settings used when nothing is configured.
func DefaultOptions() Options {
	return Options{CellSize: 4, Workers: 4}
}

// Contact is one overlapping pair. A sorts before B by name, then by ID.
type Contact struct {
	A, B     string
	AID, BID uuid.UUID
	Result   math.IntersectData
}

// sphereBox returns the cube enclosing s; spheres reach past their source box.
func sphereBox(s math.BoundingSphere) math.AABB {
	r := math.Vec3{X: s.Radius(), Y: s.Radius(), Z: s.Radius()}
	return math.NewAABB(s.Center().Sub(r), s.Center().Add(r))
}

// checkEvery is how many pairs a worker tests between context checks.
const checkEvery = 256

func bodyLess(a, b *Body) bool {
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return bytes.Compare(a.ID[:], b.ID[:]) < 0
}

// Collide returns every overlapping pair among bodies, sorted by (A, B) with
// body IDs breaking ties between equal names.
// Bodies with NaN or infinite extents are skipped.
func Collide(ctx context.Context, bodies []Body, opts Options) ([]Contact, error) {
	log := logger.Named("broadphase")
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	grid, err := NewGrid(opts.CellSize)
	if err != nil {
		return nil, err
	}
	for i := range bodies {
		if !bodies[i].finite() {
			log.Warn("skipping body with non-finite bounds", zap.String("body", bodies[i].Name))
			continue
		}
		box := bodies[i].Box
		if opts.UseSpheres {
			box = sphereBox(bodies[i].Sphere)
		}
		grid.Insert(i, box)
	}
	pairs := grid.Candidates()

	workers := max(opts.Workers, 1)
	workers = min(workers, max(len(pairs), 1))
	chunk := (len(pairs) + workers - 1) / workers

	results := make([][]Contact, workers)
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := min(lo+chunk, len(pairs))
		if lo >= hi {
			break
		}
		g.Go(func() error {
			var out []Contact
			for n, p := range pairs[lo:hi] {
				if n%checkEvery == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				a, b := &bodies[p.I], &bodies[p.J]
				var res math.IntersectData
				if opts.UseSpheres {
					res = a.Sphere.IntersectBoundingSphere(b.Sphere)
				} else {
					res = a.Box.IntersectAABB(b.Box)
				}
				if !res.DoesIntersect() {
					continue
				}
				if bodyLess(b, a) {
					a, b = b, a
				}
				out = append(out, Contact{A: a.Name, B: b.Name, AID: a.ID, BID: b.ID, Result: res})
			}
			results[w] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var contacts []Contact
	for _, r := range results {
		contacts = append(contacts, r...)
	}
	sort.Slice(contacts, func(i, j int) bool {
		ci, cj := contacts[i], contacts[j]
		if ci.A != cj.A {
			return ci.A < cj.A
		}
		if ci.B != cj.B {
			return ci.B < cj.B
		}
		if c := bytes.Compare(ci.AID[:], cj.AID[:]); c != 0 {
			return c < 0
		}
		return bytes.Compare(ci.BID[:], cj.BID[:]) < 0
	})

	log.Debug("collision pass complete",
		zap.Int("bodies", grid.Len()),
		zap.Int("candidates", len(pairs)),
		zap.Int("contacts", len(contacts)),
		zap.Int("workers", workers))
	return contacts, nil
}
