package material

import (
	"math"
	"math/rand"

	"github.com/DenisKolodin/lustre-go/pkg/core"
)

const perlinPointCount = 256

// perlin generates smooth gradient noise in [-1, 1]. Gradient vectors and
// permutation tables are fixed at construction, so the same seed always
// produces the same field.
type perlin struct {
	randVec [perlinPointCount]core.Vec3
	permX   [perlinPointCount]int
	permY   [perlinPointCount]int
	permZ   [perlinPointCount]int
}

func newPerlin(seed int64) *perlin {
	random := rand.New(rand.NewSource(seed))

	p := &perlin{}
	for i := range p.randVec {
		v := core.NewVec3(
			2*random.Float64()-1,
			2*random.Float64()-1,
			2*random.Float64()-1,
		)
		p.randVec[i] = v.Normalize()
	}

	generatePerm(random, &p.permX)
	generatePerm(random, &p.permY)
	generatePerm(random, &p.permZ)
	return p
}

func generatePerm(random *rand.Rand, perm *[perlinPointCount]int) {
	for i := range perm {
		perm[i] = i
	}
	for i := len(perm) - 1; i > 0; i-- {
		j := random.Intn(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}
}

// noise evaluates the gradient field at a point. Lattice corners contribute
// the dot of their gradient with the offset to the point, blended by a
// Hermite cubic so the field has no grid artifacts.
func (p *perlin) noise(point core.Vec3) float64 {
	u := point.X - math.Floor(point.X)
	v := point.Y - math.Floor(point.Y)
	w := point.Z - math.Floor(point.Z)

	i := int(math.Floor(point.X))
	j := int(math.Floor(point.Y))
	k := int(math.Floor(point.Z))

	var c [2][2][2]core.Vec3
	for di := 0; di < 2; di++ {
		for dj := 0; dj < 2; dj++ {
			for dk := 0; dk < 2; dk++ {
				c[di][dj][dk] = p.randVec[p.permX[(i+di)&255]^p.permY[(j+dj)&255]^p.permZ[(k+dk)&255]]
			}
		}
	}

	uu := u * u * (3 - 2*u)
	vv := v * v * (3 - 2*v)
	ww := w * w * (3 - 2*w)

	accum := 0.0
	for di := 0; di < 2; di++ {
		for dj := 0; dj < 2; dj++ {
			for dk := 0; dk < 2; dk++ {
				fi, fj, fk := float64(di), float64(dj), float64(dk)
				weight := core.NewVec3(u-fi, v-fj, w-fk)
				accum += (fi*uu + (1-fi)*(1-uu)) *
					(fj*vv + (1-fj)*(1-vv)) *
					(fk*ww + (1-fk)*(1-ww)) *
					c[di][dj][dk].Dot(weight)
			}
		}
	}
	return accum
}

// NoiseTexture produces grayscale Perlin noise, remapped from [-1, 1] to
// [0, 1] so the texture never goes negative.
type NoiseTexture struct {
	Scale  float64 // Spatial frequency of the noise
	perlin *perlin
}

// NewNoiseTexture creates a Perlin noise texture. The seed fixes the noise
// field, so renders stay reproducible.
func NewNoiseTexture(scale float64, seed int64) *NoiseTexture {
	return &NoiseTexture{Scale: scale, perlin: newPerlin(seed)}
}

// Evaluate returns the noise value at the scaled world position
func (n *NoiseTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	gray := 0.5 * (1.0 + n.perlin.noise(point.Multiply(n.Scale)))
	return core.NewVec3(gray, gray, gray)
}
